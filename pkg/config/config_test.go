package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, plant.PresetDefault, cfg.Preset)
	assert.Equal(t, 5020, cfg.Port)
	assert.Equal(t, uint8(1), cfg.UnitID)
	assert.Equal(t, time.Second, cfg.Cadence)
	assert.Equal(t, 0.1, cfg.DtMin)
	assert.Equal(t, 5.0, cfg.DtMax)
	assert.Equal(t, register.DefaultLayout(), cfg.Layout())
	assert.Equal(t, plant.DefaultParams(), cfg.Params)
}

func TestInitialConversions(t *testing.T) {
	i := Default().Initial

	assert.Equal(t, plant.Commands{PumpOn: true}, i.Commands())
	assert.Equal(t, plant.Setpoints{
		InflowLPS:    60,
		ValvePct:     50,
		TempC:        50,
		NoiseEnabled: true,
	}, i.Setpoints())
	assert.Equal(t, plant.State{LevelCM: 600, TempC: 50}, i.State())

	i.FaultMask = 5
	assert.Equal(t, plant.FaultFreezeLevel|plant.FaultOffsetPressure, i.Setpoints().FaultMask)
}

func TestSetPreset(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetPreset(plant.PresetLegacy))
	legacy, err := plant.Preset(plant.PresetLegacy)
	require.NoError(t, err)
	assert.Equal(t, legacy, cfg.Params)
	assert.Equal(t, plant.PresetLegacy, cfg.Preset)

	err = cfg.SetPreset("nope")
	assert.ErrorIs(t, err, plant.ErrUnknownPreset)
	assert.Equal(t, plant.PresetLegacy, cfg.Preset)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"unit zero", func(c *Config) { c.UnitID = 0 }},
		{"unit broadcast range", func(c *Config) { c.UnitID = 250 }},
		{"cadence zero", func(c *Config) { c.Cadence = 0 }},
		{"dt min zero", func(c *Config) { c.DtMin = 0 }},
		{"dt max below min", func(c *Config) { c.DtMax = 0.05 }},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"http address", func(c *Config) { c.HTTP = "not an address" }},
		{"valve above 100", func(c *Config) { c.Initial.ValvePct = 101 }},
		{"negative level", func(c *Config) { c.Initial.LevelCM = -1 }},
		{"unknown preset", func(c *Config) { c.Preset = "nope" }},
		{"empty preset", func(c *Config) { c.Preset = "" }},
		{"base past end", func(c *Config) { c.Base = 65500 }},
		{"params volume scale", func(c *Config) { c.Params.VolumeScale = 0 }},
		{"params temp bounds", func(c *Config) { c.Params.TempMaxC = c.Params.TempMinC }},
		{"params heater control", func(c *Config) { c.Params.HeaterControl = "magic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := Default()
	cfg.HTTP = ":8080"
	cfg.Base = 2000
	cfg.UnitID = 247
	assert.NoError(t, cfg.Validate())

	cfg.HTTP = "127.0.0.1:9000"
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	t.Run("empty keeps defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := Parse([]byte(`
port: 1502
unit: 7
base: 2000
cadence: 500ms
seed: 99
http: ":8080"
initial:
  valve_pct: 80
`))
		require.NoError(t, err)
		assert.Equal(t, 1502, cfg.Port)
		assert.Equal(t, uint8(7), cfg.UnitID)
		assert.Equal(t, uint16(2000), cfg.Base)
		assert.Equal(t, 500*time.Millisecond, cfg.Cadence)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.Equal(t, ":8080", cfg.HTTP)
		assert.Equal(t, 80.0, cfg.Initial.ValvePct)
		assert.Equal(t, 60.0, cfg.Initial.InflowLPS)
		assert.True(t, cfg.Initial.Pump)
		require.NoError(t, cfg.Validate())
	})

	t.Run("params override the file preset", func(t *testing.T) {
		cfg, err := Parse([]byte(`
preset: legacy
params:
  level_alarm_cm: 750
`))
		require.NoError(t, err)

		want, err := plant.Preset(plant.PresetLegacy)
		require.NoError(t, err)
		want.LevelAlarmCM = 750
		assert.Equal(t, plant.PresetLegacy, cfg.Preset)
		assert.Equal(t, want, cfg.Params)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := Parse([]byte("preset: nope\n"))
		assert.ErrorIs(t, err, plant.ErrUnknownPreset)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Parse([]byte("port: [1, 2"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tanksim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: training\nport: 1502\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, plant.PresetTraining, cfg.Preset)
	assert.Equal(t, 1502, cfg.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
