package register

import "errors"

// Store errors.
var (
	ErrUnknownTable      = errors.New("unknown register table")
	ErrAddressOutOfRange = errors.New("register address out of range")
	ErrInvalidCount      = errors.New("invalid register count")
	ErrReadOnly          = errors.New("register block is read-only")
)

// Store is an addressable, table-partitioned array of 16-bit cells.
//
// Implementations must make each call atomic and safe for concurrent use.
// No ordering or atomicity is promised across calls.
type Store interface {
	// GetValues returns count cells starting at addr.
	GetValues(table Table, addr uint16, count int) ([]uint16, error)

	// SetValues writes values starting at addr.
	SetValues(table Table, addr uint16, values []uint16) error
}
