package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
	"github.com/tanksim/tanksim-go/pkg/scan"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete simulator configuration.
type Config struct {
	// Preset names the parameter set Params started from.
	Preset string `yaml:"preset" validate:"required"`

	// Modbus endpoint.
	Host   string `yaml:"host"`
	Port   int    `yaml:"port" validate:"gte=1,lte=65535"`
	UnitID uint8  `yaml:"unit" validate:"gte=1,lte=247"`

	// Base is the telemetry base address; setpoints sit 100 registers above.
	Base uint16 `yaml:"base" validate:"lte=65431"`

	// Scan timing.
	Cadence time.Duration `yaml:"cadence" validate:"gt=0"`
	DtMin   float64       `yaml:"dt_min_s" validate:"gt=0"`
	DtMax   float64       `yaml:"dt_max_s" validate:"gtefield=DtMin"`

	// Seed seeds the noise and spike generator. 0 seeds from the time.
	Seed uint64 `yaml:"seed"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// CycleLog is a capture file path. Empty disables capture.
	CycleLog string `yaml:"cycle_log"`

	// HTTP is the status API listen address. Empty disables the API.
	HTTP string `yaml:"http" validate:"omitempty,hostname_port"`

	MDNS        bool `yaml:"mdns"`
	Interactive bool `yaml:"interactive"`

	Initial Initial      `yaml:"initial"`
	Params  plant.Params `yaml:"params"`

	// paramsYAML is the params mapping of the loaded file. SetPreset decodes
	// it over the new preset so file keys survive a later preset switch.
	paramsYAML *yaml.Node
}

// Initial holds the register and plant values written before the first
// cycle.
type Initial struct {
	Pump   bool `yaml:"pump"`
	Heater bool `yaml:"heater"`
	Manual bool `yaml:"manual"`

	InflowLPS float64 `yaml:"inflow_lps" validate:"gte=0"`
	ValvePct  float64 `yaml:"valve_pct" validate:"gte=0,lte=100"`
	TempSPC   float64 `yaml:"temp_sp_c"`
	Noise     bool    `yaml:"noise"`
	FaultMask uint16  `yaml:"fault_mask"`

	LevelCM float64 `yaml:"level_cm" validate:"gte=0"`
	TempC   float64 `yaml:"temp_c"`
}

// Default returns the built-in configuration with the default preset.
func Default() Config {
	return Config{
		Preset:   plant.PresetDefault,
		Port:     5020,
		UnitID:   1,
		Base:     register.DefaultTelemetryBase,
		Cadence:  scan.DefaultCadence,
		DtMin:    scan.DefaultDtMin,
		DtMax:    scan.DefaultDtMax,
		LogLevel: "info",
		Initial: Initial{
			Pump:      true,
			InflowLPS: 60,
			ValvePct:  50,
			TempSPC:   50,
			Noise:     true,
			LevelCM:   600,
			TempC:     50,
		},
		Params: plant.DefaultParams(),
	}
}

// SetPreset switches to the named preset. Params keys from a loaded YAML
// file are applied on top of it.
func (c *Config) SetPreset(name string) error {
	p, err := plant.Preset(name)
	if err != nil {
		return err
	}
	if c.paramsYAML != nil {
		if err := c.paramsYAML.Decode(&p); err != nil {
			return fmt.Errorf("params: %w", err)
		}
	}
	c.Preset = name
	c.Params = p
	return nil
}

// Layout returns the register layout for Base.
func (c Config) Layout() register.Layout {
	return register.LayoutAt(c.Base)
}

// Commands returns the initial command bits.
func (i Initial) Commands() plant.Commands {
	return plant.Commands{
		PumpOn:     i.Pump,
		HeaterOn:   i.Heater,
		ManualMode: i.Manual,
	}
}

// Setpoints returns the initial setpoints.
func (i Initial) Setpoints() plant.Setpoints {
	return plant.Setpoints{
		InflowLPS:    i.InflowLPS,
		ValvePct:     i.ValvePct,
		TempC:        i.TempSPC,
		NoiseEnabled: i.Noise,
		FaultMask:    plant.FaultMask(i.FaultMask),
	}
}

// State returns the initial plant state.
func (i Initial) State() plant.State {
	return plant.State{LevelCM: i.LevelCM, TempC: i.TempC}
}

var validate = validator.New()

// Validate checks field constraints and the register layout.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := plant.Preset(c.Preset); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: base %d: %w", ErrInvalid, c.Base, err)
	}
	return nil
}
