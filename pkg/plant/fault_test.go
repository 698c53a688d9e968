package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezeLevelHoldsAcrossTicks(t *testing.T) {
	p := DefaultParams()
	f := NewFaultInjector(p, NewRand(1))
	s := State{LevelCM: 420, TempC: 30}
	sp := Setpoints{InflowLPS: 100, ValvePct: 0, FaultMask: FaultFreezeLevel}

	for i := 0; i < 50; i++ {
		cmds := Commands{PumpOn: i%2 == 0}
		next, _ := Step(p, s, cmds, f.Override(sp), 1)
		var reading State
		s, reading = f.Apply(s, next, sp.FaultMask)
		require.Equal(t, 420.0, s.LevelCM, "tick %d", i)
		require.Equal(t, 420.0, reading.LevelCM, "tick %d", i)
	}

	assert.Equal(t, FaultFlags{Active: true, SensorFail: true}, f.Flags())
}

func TestFreezeLevelPressureFollowsFrozenHead(t *testing.T) {
	p := DefaultParams()
	f := NewFaultInjector(p, NewRand(1))
	s := State{LevelCM: 600, TempC: 50}
	sp := Setpoints{InflowLPS: 100, ValvePct: 50, FaultMask: FaultFreezeLevel}
	cmds := Commands{PumpOn: true}

	for i := 0; i < 20; i++ {
		next, _ := Step(p, s, cmds, f.Override(sp), 5)
		require.Greater(t, next.LevelCM, 600.0, "the unfaulted model keeps filling")

		var reading State
		s, reading = f.Apply(s, next, sp.FaultMask)
		want := p.AtmKPa + p.PressureGain*600
		require.InDelta(t, want, s.PressureKPa, 1e-9, "tick %d", i)
		require.InDelta(t, want, reading.PressureKPa, 1e-9, "tick %d", i)
	}
}

func TestSpikeTempOnlyTouchesReading(t *testing.T) {
	p := DefaultParams()
	f := NewFaultInjector(p, NewRand(3))
	next := State{LevelCM: 300, TempC: 40, PressureKPa: 130}

	for i := 0; i < 200; i++ {
		plantState, reading := f.Apply(next, next, FaultSpikeTemp)
		assert.Equal(t, next, plantState)
		assert.GreaterOrEqual(t, reading.TempC, 40.0)
		assert.LessOrEqual(t, reading.TempC, 40+p.Faults.TempSpikeC)
		assert.Equal(t, next.PressureKPa, reading.PressureKPa)
	}
	assert.Equal(t, FaultFlags{Active: true}, f.Flags())
}

func TestOffsetPressure(t *testing.T) {
	p := DefaultParams()
	f := NewFaultInjector(p, NewRand(3))
	next := State{LevelCM: 300, TempC: 40, PressureKPa: 130}

	plantState, reading := f.Apply(next, next, FaultOffsetPressure)

	assert.Equal(t, 130.0, plantState.PressureKPa)
	assert.Equal(t, 130+p.Faults.PressureOffsetKPa, reading.PressureKPa)
	assert.Equal(t, FaultFlags{Active: true}, f.Flags())
}

func TestValveClosedOverride(t *testing.T) {
	f := NewFaultInjector(DefaultParams(), NewRand(1))

	sp := f.Override(Setpoints{ValvePct: 80, FaultMask: FaultValveClosed})
	assert.Zero(t, sp.ValvePct)
	assert.True(t, f.Flags().Active)
	assert.False(t, f.Flags().SensorFail)
}

func TestFaultFlagsLatchUntilReset(t *testing.T) {
	f := NewFaultInjector(DefaultParams(), NewRand(1))
	s := State{LevelCM: 100}

	f.Apply(s, s, 0)
	assert.Equal(t, FaultFlags{}, f.Flags(), "no mask bit, no flags")

	f.Apply(s, s, FaultFreezeLevel)
	f.Apply(s, s, 0)
	assert.Equal(t, FaultFlags{Active: true, SensorFail: true}, f.Flags(), "flags stay latched after the bit clears")

	f.Reset()
	assert.Equal(t, FaultFlags{}, f.Flags())
}

// Combined bits compose: the pressure offset applies on top of the frozen
// head.
func TestFaultBitsCompose(t *testing.T) {
	p := DefaultParams()
	prev := State{LevelCM: 200, TempC: 40, PressureKPa: 120}
	next := State{LevelCM: 210, TempC: 41, PressureKPa: 121}

	_, offsetOnly := NewFaultInjector(p, NewRand(9)).Apply(prev, next, FaultOffsetPressure)
	_, freezeOnly := NewFaultInjector(p, NewRand(9)).Apply(prev, next, FaultFreezeLevel)
	_, both := NewFaultInjector(p, NewRand(9)).Apply(prev, next, FaultFreezeLevel|FaultOffsetPressure)

	assert.Equal(t, freezeOnly.LevelCM, both.LevelCM)
	assert.Equal(t, next.PressureKPa+p.Faults.PressureOffsetKPa, offsetOnly.PressureKPa)
	assert.InDelta(t, freezeOnly.PressureKPa+p.Faults.PressureOffsetKPa, both.PressureKPa, 1e-9)
	assert.Equal(t, next.TempC, both.TempC)
}

func TestFaultMaskString(t *testing.T) {
	assert.Equal(t, "none", FaultMask(0).String())
	assert.Equal(t, "freeze_level|offset_pressure", (FaultFreezeLevel | FaultOffsetPressure).String())
	assert.Equal(t, "valve_closed|0x0100", (FaultValveClosed | 0x100).String())
}
