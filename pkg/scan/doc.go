// Package scan runs the tank simulator's scan cycle.
//
// One cycle reads the operator commands and setpoints from the register
// store, steps the plant model, applies fault and noise injection, evaluates
// alarms, encodes the status word and publishes telemetry back to the store.
// The Engine owns the retained plant state and runs single cycles; the
// Scheduler repeats them at a fixed cadence with jitter correction.
//
// Clients of the register store run concurrently with the scan loop. The
// store makes each call atomic; nothing here adds cross-call atomicity, so a
// client reading telemetry mid-publish may see a torn block.
package scan
