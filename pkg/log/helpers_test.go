package log

import (
	"time"

	"github.com/tanksim/tanksim-go/pkg/plant"
)

func sampleEvent(cycle uint64) Event {
	return Event{
		Timestamp: time.Date(2026, 3, 1, 8, 0, int(cycle), 0, time.UTC),
		RunID:     "run-1",
		Cycle:     cycle,
		Dt:        1,
		Duration:  3 * time.Millisecond,
		Commands:  plant.Commands{PumpOn: true},
		Setpoints: plant.Setpoints{InflowLPS: 60, ValvePct: 50, TempC: 50, NoiseEnabled: true},
		Reading:   plant.State{LevelCM: 601.5, TempC: 50.2, PressureKPa: 160.3, InflowLPS: 60.1, OutflowLPS: 39.9},
		State:     plant.State{LevelCM: 601.2, TempC: 50.1, PressureKPa: 160.2, InflowLPS: 60, OutflowLPS: 40},
		Actuators: plant.Actuators{PumpRunning: true, HeaterOn: true},
	}
}
