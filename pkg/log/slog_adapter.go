package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes one line per cycle to an slog.Logger: the commands that
// were read and the sensors that were published.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a new SlogAdapter that writes successful cycles at
// Info level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelInfo}
}

// WithLevel sets the level used for successful cycles. Failed cycles are
// always logged at Error.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	a.level = level
	return a
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.Uint64("cycle", event.Cycle),
		slog.Float64("dt", event.Dt),
	}

	if event.Error != nil {
		attrs = append(attrs,
			slog.String("stage", event.Error.Stage.String()),
			slog.String("error", event.Error.Message),
		)
		a.logger.LogAttrs(context.Background(), slog.LevelError, "cycle failed", attrs...)
		return
	}

	c, sp, r := event.Commands, event.Setpoints, event.Reading
	attrs = append(attrs,
		slog.Bool("pump", c.PumpOn),
		slog.Bool("heater", event.Actuators.HeaterOn),
		slog.Bool("manual", c.ManualMode),
		slog.Float64("inflow_sp", sp.InflowLPS),
		slog.Float64("valve", sp.ValvePct),
		slog.Float64("temp_sp", sp.TempC),
		slog.Float64("level_cm", r.LevelCM),
		slog.Float64("temp_c", r.TempC),
		slog.Float64("pressure_kpa", r.PressureKPa),
		slog.Float64("q_in", r.InflowLPS),
		slog.Float64("q_out", r.OutflowLPS),
		slog.Uint64("status", uint64(event.Status)),
	)
	if sp.FaultMask != 0 {
		attrs = append(attrs, slog.String("faults", sp.FaultMask.String()))
	}
	if event.HasAlarm() {
		attrs = append(attrs,
			slog.Bool("high_level", event.Alarms.HighLevel),
			slog.Bool("high_temp", event.Alarms.HighTemp),
		)
	}

	a.logger.LogAttrs(context.Background(), a.level, "cycle", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
