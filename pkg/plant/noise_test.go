package plant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseBoundedWithFixedSeed(t *testing.T) {
	p := DefaultParams()
	n := NewNoiseInjector(p, NewRand(42))
	base := State{LevelCM: 500, TempC: 50, PressureKPa: 150, InflowLPS: 40, OutflowLPS: 30}

	for i := 0; i < 1000; i++ {
		got := n.Apply(base, true)
		checkBound(t, "level", got.LevelCM, base.LevelCM, p.Noise.LevelCM)
		checkBound(t, "temp", got.TempC, base.TempC, p.Noise.TempC)
		checkBound(t, "pressure", got.PressureKPa, base.PressureKPa, p.Noise.PressureKPa)
		checkBound(t, "inflow", got.InflowLPS, base.InflowLPS, p.Noise.InflowLPS)
		checkBound(t, "outflow", got.OutflowLPS, base.OutflowLPS, p.Noise.OutflowLPS)
	}
}

func TestNoiseReproducible(t *testing.T) {
	p := DefaultParams()
	base := State{LevelCM: 500, TempC: 50, PressureKPa: 150, InflowLPS: 40, OutflowLPS: 30}

	a := NewNoiseInjector(p, NewRand(5))
	b := NewNoiseInjector(p, NewRand(5))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Apply(base, true), b.Apply(base, true))
	}
}

func TestNoiseDisabledIsIdentity(t *testing.T) {
	n := NewNoiseInjector(DefaultParams(), NewRand(1))
	base := State{LevelCM: 1, TempC: 2, PressureKPa: 3, InflowLPS: 4, OutflowLPS: 5}
	assert.Equal(t, base, n.Apply(base, false))
}

func TestNoiseReclampsAtBounds(t *testing.T) {
	p := DefaultParams()
	n := NewNoiseInjector(p, NewRand(11))
	edge := State{LevelCM: 0, TempC: p.TempMaxC, PressureKPa: 0, InflowLPS: p.InflowMaxLPS, OutflowLPS: 0}

	for i := 0; i < 500; i++ {
		got := n.Apply(edge, true)
		assert.GreaterOrEqual(t, got.LevelCM, 0.0)
		assert.LessOrEqual(t, got.TempC, p.TempMaxC)
		assert.GreaterOrEqual(t, got.PressureKPa, 0.0)
		assert.LessOrEqual(t, got.InflowLPS, p.InflowMaxLPS)
		assert.GreaterOrEqual(t, got.OutflowLPS, 0.0)
	}
}

func checkBound(t *testing.T, name string, got, base, bound float64) {
	t.Helper()
	if math.Abs(got-base) > bound {
		t.Fatalf("%s: |%v - %v| exceeds bound %v", name, got, base, bound)
	}
}
