package commands

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tanksim/tanksim-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	Cycles        int
	Errors        int
	ErrorsByStage map[log.Stage]int
	Runs          map[string]int
	FaultCycles   int
	SensorFail    int
	HighLevel     int
	HighTemp      int
	Dt            Summary
	CycleDuration Summary
	TimeRange     struct {
		Start time.Time
		End   time.Time
	}
}

// Summary accumulates min, max and mean of a series.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Sum   float64
}

// Add records v.
func (s *Summary) Add(v float64) {
	if s.Count == 0 {
		s.Min, s.Max = v, v
	}
	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)
	s.Sum += v
	s.Count++
}

// Mean returns the average, or 0 for an empty summary.
func (s Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Collect reads every event of the capture file.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		ErrorsByStage: make(map[log.Stage]int),
		Runs:          make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.Cycles++
		stats.Runs[event.RunID]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
			stats.ErrorsByStage[event.Error.Stage]++
			continue
		}

		stats.Dt.Add(event.Dt)
		stats.CycleDuration.Add(event.Duration.Seconds())

		if event.HasFault() {
			stats.FaultCycles++
		}
		if event.Faults.SensorFail {
			stats.SensorFail++
		}
		if event.Alarms.HighLevel {
			stats.HighLevel++
		}
		if event.Alarms.HighTemp {
			stats.HighTemp++
		}
	}

	return stats, nil
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Tank Simulator Cycle Statistics ===")
	fmt.Fprintln(w)

	if stats.Cycles > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Cycles: %d\n", stats.Cycles)
	fmt.Fprintf(w, "Runs:   %d\n", len(stats.Runs))
	fmt.Fprintln(w)

	if stats.Dt.Count > 0 {
		fmt.Fprintln(w, "Step (s):")
		fmt.Fprintf(w, "  min %.3f  mean %.3f  max %.3f\n", stats.Dt.Min, stats.Dt.Mean(), stats.Dt.Max)
		fmt.Fprintln(w, "Cycle time:")
		fmt.Fprintf(w, "  min %s  mean %s  max %s\n",
			seconds(stats.CycleDuration.Min), seconds(stats.CycleDuration.Mean()), seconds(stats.CycleDuration.Max))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Cycles with:")
	fmt.Fprintf(w, "  %-14s %d\n", "faults:", stats.FaultCycles)
	fmt.Fprintf(w, "  %-14s %d\n", "sensor fail:", stats.SensorFail)
	fmt.Fprintf(w, "  %-14s %d\n", "high level:", stats.HighLevel)
	fmt.Fprintf(w, "  %-14s %d\n", "high temp:", stats.HighTemp)

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
		for _, stage := range []log.Stage{log.StageRead, log.StageStep, log.StagePublish} {
			if count := stats.ErrorsByStage[stage]; count > 0 {
				fmt.Fprintf(w, "  %-14s %d\n", stage.String()+":", count)
			}
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond)
}
