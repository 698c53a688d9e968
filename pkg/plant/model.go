package plant

import "math"

// Step advances the process by dt seconds. It is a pure function: the same
// inputs always produce the same outputs.
func Step(p Params, s State, c Commands, sp Setpoints, dt float64) (State, Actuators) {
	var inflow float64
	if c.PumpOn {
		inflow = clamp(sp.InflowLPS, 0, p.InflowMaxLPS)
	}

	level := clamp(s.LevelCM, 0, p.LevelMaxCM)
	outflow := Outflow(p, level, sp.ValvePct)

	level = clamp(level+(inflow-outflow-p.LeakLPS)*dt*p.VolumeScale, 0, p.LevelMaxCM)

	heater := heaterEnabled(p, s.TempC, c, sp)
	temp := s.TempC
	if heater {
		temp += (sp.TempC-temp)*math.Min(1, dt*p.ApproachRate) + p.HeatGain*dt
	} else {
		temp += (p.AmbientC - temp) * math.Min(1, dt/p.CoolTimeConstantS)
	}

	next := State{
		LevelCM:     level,
		TempC:       temp,
		PressureKPa: Pressure(p, level),
		InflowLPS:   inflow,
		OutflowLPS:  outflow,
	}
	return next.Clamp(p), Actuators{PumpRunning: c.PumpOn, HeaterOn: heater}
}

// Pressure returns the hydrostatic pressure at the given level.
func Pressure(p Params, levelCM float64) float64 {
	return p.AtmKPa + p.PressureGain*levelCM
}

// Derive fills in the flows and pressure implied by the level, the commands
// and the setpoints without advancing time.
func Derive(p Params, s State, c Commands, sp Setpoints) State {
	s.InflowLPS = 0
	if c.PumpOn {
		s.InflowLPS = clamp(sp.InflowLPS, 0, p.InflowMaxLPS)
	}
	level := clamp(s.LevelCM, 0, p.LevelMaxCM)
	s.OutflowLPS = Outflow(p, level, sp.ValvePct)
	s.PressureKPa = Pressure(p, level)
	return s.Clamp(p)
}

// Outflow returns the valve-limited outflow at the given level. The head term
// models valve/head interaction; ValveExponent 0 makes outflow depend on the
// valve alone.
func Outflow(p Params, levelCM, valvePct float64) float64 {
	head := math.Max(levelCM, 1) / p.LevelMaxCM
	q := p.OutflowMaxLPS * clamp(valvePct, 0, 100) / 100 * math.Pow(head, p.ValveExponent)
	return clamp(q, 0, p.OutflowMaxLPS)
}

func heaterEnabled(p Params, tempC float64, c Commands, sp Setpoints) bool {
	if p.HeaterControl == HeaterByCommand || c.ManualMode {
		return c.HeaterOn
	}
	return tempC < sp.TempC+p.HysteresisC
}
