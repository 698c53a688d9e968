package plant

// Status is the packed status word.
type Status uint16

// Status word bits.
const (
	StatusManual      Status = 1 << 0
	StatusFaultActive Status = 1 << 1
	StatusSensorFail  Status = 1 << 2
)

// EncodeStatus packs the mode and fault flags.
func EncodeStatus(manual bool, flags FaultFlags) Status {
	var s Status
	if manual {
		s |= StatusManual
	}
	if flags.Active {
		s |= StatusFaultActive
	}
	if flags.SensorFail {
		s |= StatusSensorFail
	}
	return s
}

// Manual reports the manual-mode bit.
func (s Status) Manual() bool { return s&StatusManual != 0 }

// FaultActive reports the fault-active bit.
func (s Status) FaultActive() bool { return s&StatusFaultActive != 0 }

// SensorFail reports the sensor-failure bit.
func (s Status) SensorFail() bool { return s&StatusSensorFail != 0 }
