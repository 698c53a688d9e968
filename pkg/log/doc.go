// Package log provides structured cycle logging for the tank simulator.
//
// Every scan cycle produces one Event describing what the engine read, what
// the plant did and what was published. It is separate from operational
// logging (slog): the cycle trace is a complete machine-readable record for
// debugging a run after the fact.
//
// # Basic Usage
//
// The engine takes a Logger:
//
//	// Console: one line per cycle via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// Capture file for tanksim-log
//	fileLogger, _ := log.NewFileLogger("/tmp/run.tlog")
//
//	// Both, plus the status API's latest snapshot
//	logger = log.NewMultiLogger(logger, fileLogger, latest)
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events using integer keys,
// conventionally with a .tlog extension. The tanksim-log tool views and
// summarizes them.
package log
