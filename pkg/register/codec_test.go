package register

import (
	"math"
	"testing"
)

func TestClampUint16(t *testing.T) {
	tests := []struct {
		in   float64
		want uint16
	}{
		{0, 0},
		{-5, 0},
		{0.49, 0},
		{0.5, 1},
		{600.4, 600},
		{65535, 65535},
		{65535.4, 65535},
		{70000, 65535},
		{math.Inf(1), 65535},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ClampUint16(tt.in); got != tt.want {
			t.Errorf("ClampUint16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFixedPoint(t *testing.T) {
	if got := FixedPoint(50.04, TemperatureScale); got != 500 {
		t.Errorf("FixedPoint(50.04) = %d, want 500", got)
	}
	if got := FixedPoint(-3, TemperatureScale); got != 0 {
		t.Errorf("FixedPoint(-3) = %d, want 0", got)
	}
	if got := FromFixedPoint(755, TemperatureScale); got != 75.5 {
		t.Errorf("FromFixedPoint(755) = %v, want 75.5", got)
	}
}

func TestBoolCells(t *testing.T) {
	if FromBool(true) != 1 || FromBool(false) != 0 {
		t.Error("FromBool mismatch")
	}
	if !ToBool(0xFF00) || ToBool(0) {
		t.Error("ToBool mismatch")
	}
}
