// Package register implements the tank simulator's register store.
//
// # Tables
//
// The store holds four tables of 16-bit cells, mirroring the Modbus data
// model:
//
//	Coils             single-bit, read/write (operator commands)
//	DiscreteInputs    single-bit, read-only for clients (alarms)
//	HoldingRegisters  16-bit, read/write (telemetry and setpoints)
//	InputRegisters    16-bit, read-only for clients
//
// Bit tables store 0 or 1 per cell; any non-zero write is normalized to 1.
//
// # Atomicity
//
// Every GetValues and SetValues call is atomic and safe for concurrent use.
// There is no atomicity across calls: a client reading a block while the
// scan engine publishes may observe values from two different cycles.
//
// # Layout
//
// A Layout places the simulator's four logical blocks (commands, alarms,
// telemetry, setpoints) at base addresses inside the tables. Offsets inside a
// block are fixed; base addresses are configuration.
package register
