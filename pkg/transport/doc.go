// Package transport exposes the register store over Modbus TCP.
//
// Handler maps Modbus requests onto a register.Store and register.Layout:
//
//	coils               read/write   command block and any other coil
//	discrete inputs     read         alarm block
//	holding registers   read/write   telemetry (read-only) and setpoints
//	input registers     read         mirror of the telemetry block
//
// Writes that touch a read-only block are refused with "illegal data
// address". Requests for another unit id are answered with "gateway target
// failed to respond"; unit id 0 is accepted as an alias.
//
// Framing, sessions and client limits are handled by
// github.com/simonvetter/modbus.
package transport
