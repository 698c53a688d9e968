// Package plant implements the tank process model.
//
// # Model
//
// A single open tank is fed by a pump and drained through a valve. Each scan
// cycle the model integrates, over the elapsed time dt:
//
//	inflow   = InflowSetpoint if the pump is on, else 0
//	outflow  = OutflowMax * valve/100 * (max(level,1)/LevelMax)^ValveExponent
//	level'   = level + (inflow - outflow - Leak) * dt * VolumeScale
//	pressure = Atm + PressureGain * level'
//
// Temperature approaches the setpoint while the heater is enabled and decays
// toward ambient otherwise. Every constant lives in Params; presets reproduce
// the parameter sets used by existing training setups.
//
// # Pipeline Stages
//
// Step is pure. The stateful stages around it are:
//   - FaultInjector: applies the fault mask and latches fault flags
//   - NoiseInjector: perturbs the reading when noise is enabled
//
// EvaluateAlarms and EncodeStatus derive the discrete outputs from the final
// reading.
//
// # Plant State vs Reading
//
// Physical faults (frozen level, stuck valve) change the plant itself and are
// carried into the next cycle. Sensor faults (temperature spikes, pressure
// offset) and noise only change the reading that gets published.
package plant
