package plant

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Preset names.
const (
	PresetDefault  = "default"
	PresetLegacy   = "legacy"
	PresetTraining = "training"
)

// ErrUnknownPreset is returned for an unregistered preset name.
var ErrUnknownPreset = errors.New("unknown preset")

var presets = map[string]func() Params{
	PresetDefault:  DefaultParams,
	PresetLegacy:   legacyParams,
	PresetTraining: trainingParams,
}

// Preset returns the named parameter set.
func Preset(name string) (Params, error) {
	build, ok := presets[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// legacyParams reproduces the first classroom simulator: outflow follows the
// valve only, no leak, pressure straight from head, the heater obeys its
// command in every mode and the temperature alarm tracks the setpoint.
func legacyParams() Params {
	p := DefaultParams()
	p.LeakLPS = 0
	p.ValveExponent = 0
	p.HeatGain = 0
	p.HeaterControl = HeaterByCommand
	p.AtmKPa = 0
	p.PressureGain = 0.2
	p.TempAlarmMode = TempAlarmSetpoint
	p.TempAlarmOffsetC = 3
	p.Noise.PressureKPa = 0
	return p
}

// trainingParams is a livelier tank for exercises: larger leak, faster
// heating and a wider setpoint-relative temperature band.
func trainingParams() Params {
	p := DefaultParams()
	p.LeakLPS = 0.5
	p.ApproachRate = 0.1
	p.HeatGain = 0.05
	p.CoolTimeConstantS = 120
	p.HysteresisC = 2
	p.LevelAlarmCM = 900
	p.TempAlarmMode = TempAlarmSetpoint
	p.TempAlarmOffsetC = 5
	return p
}
