package plant

import "math/rand/v2"

// FaultInjector applies the fault mask and latches the fault flags.
//
// Flags latch on the first cycle a mask bit implies them and stay set until
// Reset, even after the bit is cleared.
type FaultInjector struct {
	params Params
	rng    *rand.Rand
	flags  FaultFlags
}

// NewFaultInjector creates a fault injector. Temperature spikes draw from rng.
func NewFaultInjector(p Params, rng *rand.Rand) *FaultInjector {
	return &FaultInjector{params: p, rng: rng}
}

// Override applies input faults to the setpoints before the model runs.
func (f *FaultInjector) Override(sp Setpoints) Setpoints {
	if sp.FaultMask.Has(FaultValveClosed) {
		sp.ValvePct = 0
		f.flags.Active = true
	}
	return sp
}

// Apply applies output faults to the model result. It returns the plant state
// to carry into the next cycle and the reading to publish. A frozen level
// also holds the pressure at the frozen head; sensor faults then act on the
// reading only.
func (f *FaultInjector) Apply(prev, next State, mask FaultMask) (plant, reading State) {
	if mask.Has(FaultFreezeLevel) {
		next.LevelCM = prev.LevelCM
		next.PressureKPa = Pressure(f.params, next.LevelCM)
		f.flags.Active = true
		f.flags.SensorFail = true
	}

	reading = next
	if mask.Has(FaultSpikeTemp) {
		reading.TempC += f.rng.Float64() * f.params.Faults.TempSpikeC
		f.flags.Active = true
	}
	if mask.Has(FaultOffsetPressure) {
		reading.PressureKPa += f.params.Faults.PressureOffsetKPa
		f.flags.Active = true
	}

	return next, reading.Clamp(f.params)
}

// Flags returns the latched flags.
func (f *FaultInjector) Flags() FaultFlags {
	return f.flags
}

// Reset clears the latched flags.
func (f *FaultInjector) Reset() {
	f.flags = FaultFlags{}
}
