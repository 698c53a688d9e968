package log

import (
	"time"

	"github.com/tanksim/tanksim-go/pkg/plant"
)

// Event records one scan cycle. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the cycle started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint" json:"timestamp"`

	// RunID identifies the simulator process (UUID).
	RunID string `cbor:"2,keyasint,omitempty" json:"run_id,omitempty"`

	// Cycle is the 1-based cycle counter.
	Cycle uint64 `cbor:"3,keyasint" json:"cycle"`

	// Dt is the clamped step length in seconds.
	Dt float64 `cbor:"4,keyasint" json:"dt"`

	// Duration is the wall time the cycle took.
	Duration time.Duration `cbor:"5,keyasint" json:"duration"`

	Commands  plant.Commands   `cbor:"6,keyasint" json:"commands"`
	Setpoints plant.Setpoints  `cbor:"7,keyasint" json:"setpoints"`
	Reading   plant.State      `cbor:"8,keyasint" json:"reading"`
	State     plant.State      `cbor:"9,keyasint" json:"state"`
	Faults    plant.FaultFlags `cbor:"10,keyasint" json:"faults"`
	Alarms    plant.Alarms     `cbor:"11,keyasint" json:"alarms"`
	Actuators plant.Actuators  `cbor:"12,keyasint" json:"actuators"`
	Status    plant.Status     `cbor:"13,keyasint" json:"status"`

	// Error is set when the cycle failed. Only the fields filled before the
	// failing stage are meaningful.
	Error *ErrorEventData `cbor:"14,keyasint,omitempty" json:"error,omitempty"`
}

// HasFault returns true if any fault flag is latched or a fault bit is
// requested.
func (e Event) HasFault() bool {
	return e.Faults.Active || e.Faults.SensorFail || e.Setpoints.FaultMask != 0
}

// HasAlarm returns true if any alarm bit is set.
func (e Event) HasAlarm() bool {
	return e.Alarms.HighLevel || e.Alarms.HighTemp
}

// Stage is the cycle step an error occurred in.
type Stage uint8

const (
	// StageRead is the command and setpoint read.
	StageRead Stage = 0
	// StageStep is the model step.
	StageStep Stage = 1
	// StagePublish is the telemetry and alarm write.
	StagePublish Stage = 2
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageRead:
		return "READ"
	case StageStep:
		return "STEP"
	case StagePublish:
		return "PUBLISH"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a failed cycle.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint" json:"stage"`

	// Message is the error message.
	Message string `cbor:"2,keyasint" json:"message"`
}
