package plant

import (
	"fmt"
	"math"
	"strings"
)

// State is the continuous process state.
type State struct {
	LevelCM     float64 `json:"level_cm"`
	TempC       float64 `json:"temp_c"`
	PressureKPa float64 `json:"pressure_kpa"`
	InflowLPS   float64 `json:"inflow_lps"`
	OutflowLPS  float64 `json:"outflow_lps"`
}

// Clamp returns s with every quantity inside its physical domain.
func (s State) Clamp(p Params) State {
	s.LevelCM = clamp(s.LevelCM, 0, p.LevelMaxCM)
	s.TempC = clamp(s.TempC, p.TempMinC, p.TempMaxC)
	s.PressureKPa = math.Max(0, s.PressureKPa)
	s.InflowLPS = clamp(s.InflowLPS, 0, p.InflowMaxLPS)
	s.OutflowLPS = clamp(s.OutflowLPS, 0, p.OutflowMaxLPS)
	return s
}

// Commands are the operator command bits.
type Commands struct {
	PumpOn     bool `json:"pump_on"`
	HeaterOn   bool `json:"heater_on"`
	ManualMode bool `json:"manual_mode"`
	FaultReset bool `json:"fault_reset"`
}

// Setpoints are the operator setpoints.
type Setpoints struct {
	InflowLPS    float64   `json:"inflow_lps"`
	ValvePct     float64   `json:"valve_pct"`
	TempC        float64   `json:"temp_c"`
	NoiseEnabled bool      `json:"noise_enabled"`
	FaultMask    FaultMask `json:"fault_mask"`
}

// Clamp returns sp with every field inside its domain.
func (sp Setpoints) Clamp(p Params) Setpoints {
	sp.InflowLPS = clamp(sp.InflowLPS, 0, p.InflowMaxLPS)
	sp.ValvePct = clamp(sp.ValvePct, 0, 100)
	sp.TempC = clamp(sp.TempC, p.TempMinC, p.TempMaxC)
	return sp
}

// FaultMask selects synthetic faults.
type FaultMask uint16

// Fault mask bits.
const (
	// FaultFreezeLevel holds the level constant and reports a sensor failure.
	FaultFreezeLevel FaultMask = 1 << iota

	// FaultSpikeTemp adds random positive spikes to the temperature reading.
	FaultSpikeTemp

	// FaultOffsetPressure adds a fixed offset to the pressure reading.
	FaultOffsetPressure

	// FaultValveClosed forces the outlet valve shut.
	FaultValveClosed

	// FaultMaskAll covers every defined bit.
	FaultMaskAll = FaultFreezeLevel | FaultSpikeTemp | FaultOffsetPressure | FaultValveClosed
)

// Has returns true if all bits of f are set.
func (m FaultMask) Has(f FaultMask) bool { return m&f == f }

// String returns the set fault names joined by "|".
func (m FaultMask) String() string {
	if m == 0 {
		return "none"
	}
	var names []string
	if m.Has(FaultFreezeLevel) {
		names = append(names, "freeze_level")
	}
	if m.Has(FaultSpikeTemp) {
		names = append(names, "spike_temp")
	}
	if m.Has(FaultOffsetPressure) {
		names = append(names, "offset_pressure")
	}
	if m.Has(FaultValveClosed) {
		names = append(names, "valve_closed")
	}
	if rest := m &^ FaultMaskAll; rest != 0 {
		names = append(names, fmt.Sprintf("0x%04X", uint16(rest)))
	}
	return strings.Join(names, "|")
}

// FaultFlags are latched until an operator reset.
type FaultFlags struct {
	Active     bool `json:"fault_active"`
	SensorFail bool `json:"sensor_fail"`
}

// Alarms are recomputed every cycle.
type Alarms struct {
	HighLevel bool `json:"high_level"`
	HighTemp  bool `json:"high_temp"`
}

// Actuators reports what the model actually drove during a step.
type Actuators struct {
	PumpRunning bool `json:"pump_running"`
	HeaterOn    bool `json:"heater_on"`
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
