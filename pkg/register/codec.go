package register

import "math"

// FromBool encodes a bit cell.
func FromBool(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// ToBool decodes a bit cell or boolean holding register; any non-zero value
// is true.
func ToBool(v uint16) bool {
	return v != 0
}

// ClampUint16 rounds v to the nearest integer and clamps it to the register
// width. NaN maps to 0.
func ClampUint16(v float64) uint16 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	r := math.Round(v)
	if r >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(r)
}

// FixedPoint encodes v in units of 1/scale (e.g. scale 10 for 0.1 °C) and
// clamps the result to the register width.
func FixedPoint(v float64, scale float64) uint16 {
	return ClampUint16(v * scale)
}

// FromFixedPoint decodes a fixed-point register.
func FromFixedPoint(raw uint16, scale float64) float64 {
	return float64(raw) / scale
}
