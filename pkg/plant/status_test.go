package plant

import "testing"

func TestEncodeStatus(t *testing.T) {
	tests := []struct {
		manual bool
		flags  FaultFlags
		want   Status
	}{
		{false, FaultFlags{}, 0},
		{true, FaultFlags{}, 1},
		{true, FaultFlags{Active: true}, 0b011},
		{false, FaultFlags{Active: true, SensorFail: true}, 0b110},
		{true, FaultFlags{Active: true, SensorFail: true}, 0b111},
	}

	for _, tt := range tests {
		got := EncodeStatus(tt.manual, tt.flags)
		if got != tt.want {
			t.Errorf("EncodeStatus(%v, %+v) = %03b, want %03b", tt.manual, tt.flags, got, tt.want)
		}
		if got.Manual() != tt.manual || got.FaultActive() != tt.flags.Active || got.SensorFail() != tt.flags.SensorFail {
			t.Errorf("Status(%03b) decode mismatch", got)
		}
	}
}
