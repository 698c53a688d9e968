// Package commands implements the tanksim-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/tanksim/tanksim-go/pkg/log"
)

// RunView prints one line per matching cycle event.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z"

// formatEvent writes a one-line summary of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)

	if event.Error != nil {
		fmt.Fprintf(w, "%s #%-6d ERROR %s: %s\n", ts, event.Cycle, event.Error.Stage, event.Error.Message)
		return
	}

	r := event.Reading
	fmt.Fprintf(w, "%s #%-6d dt=%.2f L=%.1fcm T=%.1fC P=%.1fkPa Qin=%.1f Qout=%.1f pump=%s heater=%s %s status=%d",
		ts, event.Cycle, event.Dt,
		r.LevelCM, r.TempC, r.PressureKPa, r.InflowLPS, r.OutflowLPS,
		onOff(event.Actuators.PumpRunning), onOff(event.Actuators.HeaterOn),
		mode(event.Commands.ManualMode), event.Status)

	var tags []string
	if event.Alarms.HighLevel {
		tags = append(tags, "HIGH_LEVEL")
	}
	if event.Alarms.HighTemp {
		tags = append(tags, "HIGH_TEMP")
	}
	if event.Setpoints.FaultMask != 0 {
		tags = append(tags, "FAULT "+event.Setpoints.FaultMask.String())
	}
	if event.Faults.SensorFail {
		tags = append(tags, "SENSOR_FAIL")
	}
	for _, tag := range tags {
		fmt.Fprintf(w, " [%s]", tag)
	}
	fmt.Fprintln(w)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func mode(manual bool) string {
	if manual {
		return "manual"
	}
	return "auto"
}
