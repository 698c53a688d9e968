package plant

// HeaterControl selects how the heater command is interpreted.
type HeaterControl string

const (
	// HeaterByMode runs a hysteresis thermostat in automatic mode and follows
	// the heater command in manual mode.
	HeaterByMode HeaterControl = "mode"

	// HeaterByCommand follows the heater command in both modes.
	HeaterByCommand HeaterControl = "command"
)

// TempAlarmMode selects how the high-temperature threshold is derived.
type TempAlarmMode string

const (
	// TempAlarmAbsolute compares against TempAlarmC.
	TempAlarmAbsolute TempAlarmMode = "absolute"

	// TempAlarmSetpoint compares against the setpoint plus TempAlarmOffsetC.
	TempAlarmSetpoint TempAlarmMode = "setpoint"
)

// Params holds every tunable of the process model.
type Params struct {
	// Bounds.
	LevelMaxCM    float64 `yaml:"level_max_cm" json:"level_max_cm" validate:"gt=0"`
	InflowMaxLPS  float64 `yaml:"inflow_max_lps" json:"inflow_max_lps" validate:"gt=0"`
	OutflowMaxLPS float64 `yaml:"outflow_max_lps" json:"outflow_max_lps" validate:"gt=0"`
	TempMinC      float64 `yaml:"temp_min_c" json:"temp_min_c"`
	TempMaxC      float64 `yaml:"temp_max_c" json:"temp_max_c" validate:"gtfield=TempMinC"`

	// Hydraulics.
	LeakLPS       float64 `yaml:"leak_lps" json:"leak_lps" validate:"gte=0"`
	VolumeScale   float64 `yaml:"volume_scale" json:"volume_scale" validate:"gt=0"`
	ValveExponent float64 `yaml:"valve_exponent" json:"valve_exponent" validate:"gte=0"`

	// Thermal.
	AmbientC          float64       `yaml:"ambient_c" json:"ambient_c"`
	ApproachRate      float64       `yaml:"approach_rate" json:"approach_rate" validate:"gte=0"`
	HeatGain          float64       `yaml:"heat_gain" json:"heat_gain" validate:"gte=0"`
	CoolTimeConstantS float64       `yaml:"cool_time_constant_s" json:"cool_time_constant_s" validate:"gt=0"`
	HysteresisC       float64       `yaml:"hysteresis_c" json:"hysteresis_c" validate:"gte=0"`
	HeaterControl     HeaterControl `yaml:"heater_control" json:"heater_control" validate:"oneof=mode command"`

	// Pressure from head.
	AtmKPa       float64 `yaml:"atm_kpa" json:"atm_kpa" validate:"gte=0"`
	PressureGain float64 `yaml:"pressure_gain" json:"pressure_gain" validate:"gte=0"`

	// Alarms.
	LevelAlarmCM     float64       `yaml:"level_alarm_cm" json:"level_alarm_cm"`
	TempAlarmMode    TempAlarmMode `yaml:"temp_alarm_mode" json:"temp_alarm_mode" validate:"oneof=absolute setpoint"`
	TempAlarmC       float64       `yaml:"temp_alarm_c" json:"temp_alarm_c"`
	TempAlarmOffsetC float64       `yaml:"temp_alarm_offset_c" json:"temp_alarm_offset_c"`

	Faults FaultParams `yaml:"faults" json:"faults"`
	Noise  NoiseParams `yaml:"noise" json:"noise"`
}

// FaultParams sizes the synthetic faults.
type FaultParams struct {
	TempSpikeC        float64 `yaml:"temp_spike_c" json:"temp_spike_c" validate:"gte=0"`
	PressureOffsetKPa float64 `yaml:"pressure_offset_kpa" json:"pressure_offset_kpa"`
}

// NoiseParams holds the half-width of the uniform noise per channel.
type NoiseParams struct {
	LevelCM     float64 `yaml:"level_cm" json:"level_cm" validate:"gte=0"`
	TempC       float64 `yaml:"temp_c" json:"temp_c" validate:"gte=0"`
	PressureKPa float64 `yaml:"pressure_kpa" json:"pressure_kpa" validate:"gte=0"`
	InflowLPS   float64 `yaml:"inflow_lps" json:"inflow_lps" validate:"gte=0"`
	OutflowLPS  float64 `yaml:"outflow_lps" json:"outflow_lps" validate:"gte=0"`
}

// DefaultParams returns the default parameter set: square-root valve
// characteristic, small leak, hydrostatic pressure over atmosphere and an
// absolute temperature alarm.
func DefaultParams() Params {
	return Params{
		LevelMaxCM:    1000,
		InflowMaxLPS:  100,
		OutflowMaxLPS: 80,
		TempMinC:      0,
		TempMaxC:      120,

		LeakLPS:       0.2,
		VolumeScale:   0.5,
		ValveExponent: 0.5,

		AmbientC:          22,
		ApproachRate:      0.05,
		HeatGain:          0.02,
		CoolTimeConstantS: 200,
		HysteresisC:       1,
		HeaterControl:     HeaterByMode,

		AtmKPa:       101.3,
		PressureGain: 0.0981,

		LevelAlarmCM:     800,
		TempAlarmMode:    TempAlarmAbsolute,
		TempAlarmC:       80,
		TempAlarmOffsetC: 3,

		Faults: FaultParams{
			TempSpikeC:        5,
			PressureOffsetKPa: 25,
		},
		Noise: NoiseParams{
			LevelCM:     0.5,
			TempC:       0.1,
			PressureKPa: 0.2,
			InflowLPS:   0.5,
			OutflowLPS:  0.5,
		},
	}
}
