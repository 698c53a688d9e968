package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tanksim/tanksim-go/pkg/log"
)

func readCycles(t *testing.T, path string) []uint64 {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var cycles []uint64
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return cycles
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		cycles = append(cycles, event.Cycle)
	}
}

func TestFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	tests := []struct {
		name string
		opts FilterOptions
		want []uint64
	}{
		{"faults", FilterOptions{FaultsOnly: true}, []uint64{3}},
		{"alarms", FilterOptions{AlarmsOnly: true}, []uint64{2}},
		{"errors", FilterOptions{ErrorsOnly: true}, []uint64{4}},
		{"time range", FilterOptions{TimeStart: "2026-01-28T10:00:02Z", TimeEnd: "2026-01-28T10:00:04Z"}, []uint64{2, 3}},
		{"run", FilterOptions{RunID: "run-a"}, []uint64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "filtered.tlog")

			var buf bytes.Buffer
			if err := RunFilter(path, tt.opts, &buf); err != nil {
				t.Fatalf("RunFilter failed: %v", err)
			}

			got := readCycles(t, tt.opts.Output)
			if len(got) != len(tt.want) {
				t.Fatalf("cycles = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cycles = %v, want %v", got, tt.want)
					break
				}
			}
			if !strings.Contains(buf.String(), "Filtered") {
				t.Errorf("expected summary line, got %q", buf.String())
			}
		})
	}
}

func TestFilterInvalidTime(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	for _, opts := range []FilterOptions{
		{TimeStart: "yesterday"},
		{TimeEnd: "2026-01-28"},
	} {
		opts.Output = filepath.Join(t.TempDir(), "out.tlog")
		if err := RunFilter(path, opts, io.Discard); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
