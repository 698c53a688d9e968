package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/plant"
)

var testStart = time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

// createTestLogFile writes events to a capture file in a temp dir.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.tlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// cycle returns a successful cycle event n seconds after testStart.
func cycle(n int) log.Event {
	return log.Event{
		Timestamp: testStart.Add(time.Duration(n) * time.Second),
		RunID:     "run-a",
		Cycle:     uint64(n),
		Dt:        1,
		Duration:  200 * time.Microsecond,
		Commands:  plant.Commands{PumpOn: true},
		Setpoints: plant.Setpoints{InflowLPS: 20, ValvePct: 30, TempC: 50},
		Reading: plant.State{
			LevelCM: 400 + float64(n), TempC: 30.5, PressureKPa: 140.6,
			InflowLPS: 20, OutflowLPS: 15.2,
		},
		Actuators: plant.Actuators{PumpRunning: true},
	}
}

// sampleEvents is a capture of five cycles: plain, high level alarm,
// fault, failed read, plain.
func sampleEvents() []log.Event {
	events := []log.Event{cycle(1), cycle(2), cycle(3), cycle(4), cycle(5)}

	events[1].Alarms.HighLevel = true
	events[1].Reading.LevelCM = 812

	events[2].Setpoints.FaultMask = plant.FaultFreezeLevel
	events[2].Faults = plant.FaultFlags{Active: true, SensorFail: true}
	events[2].Status = plant.StatusFaultActive | plant.StatusSensorFail

	events[3] = log.Event{
		Timestamp: events[3].Timestamp,
		RunID:     "run-a",
		Cycle:     4,
		Error:     &log.ErrorEventData{Stage: log.StageRead, Message: "read commands: store down"},
	}

	events[4].Dt = 0.5
	events[4].Duration = 400 * time.Microsecond
	return events
}
