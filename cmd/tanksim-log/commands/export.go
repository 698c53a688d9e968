package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tanksim/tanksim-go/pkg/log"
)

// RunExport exports the log file to the specified format. An empty output
// writes to stdout.
func RunExport(path, format, output string, stdout io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

var csvHeader = []string{
	"timestamp", "run_id", "cycle", "dt", "duration_us",
	"level_cm", "temp_c", "pressure_kpa", "inflow_lps", "outflow_lps",
	"pump", "heater", "manual", "status", "fault_mask",
	"high_level", "high_temp", "error",
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	b := func(v bool) string {
		if v {
			return "1"
		}
		return "0"
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		errText := ""
		if event.Error != nil {
			errText = event.Error.Stage.String() + ": " + event.Error.Message
		}

		r := event.Reading
		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.RunID,
			strconv.FormatUint(event.Cycle, 10),
			f(event.Dt),
			strconv.FormatInt(event.Duration.Microseconds(), 10),
			f(r.LevelCM), f(r.TempC), f(r.PressureKPa), f(r.InflowLPS), f(r.OutflowLPS),
			b(event.Actuators.PumpRunning),
			b(event.Actuators.HeaterOn),
			b(event.Commands.ManualMode),
			strconv.Itoa(int(event.Status)),
			strconv.Itoa(int(event.Setpoints.FaultMask)),
			b(event.Alarms.HighLevel),
			b(event.Alarms.HighTemp),
			errText,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
