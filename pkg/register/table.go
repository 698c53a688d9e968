package register

import (
	"fmt"
	"strings"
)

// Table identifies one of the four register tables.
type Table uint8

const (
	// TableCoils holds read/write single-bit cells.
	TableCoils Table = iota + 1

	// TableDiscreteInputs holds single-bit cells that clients can only read.
	TableDiscreteInputs

	// TableHoldingRegisters holds read/write 16-bit cells.
	TableHoldingRegisters

	// TableInputRegisters holds 16-bit cells that clients can only read.
	TableInputRegisters
)

// Tables lists all tables in address-map order.
var Tables = []Table{TableCoils, TableDiscreteInputs, TableHoldingRegisters, TableInputRegisters}

// String returns the table name.
func (t Table) String() string {
	switch t {
	case TableCoils:
		return "coils"
	case TableDiscreteInputs:
		return "discrete-inputs"
	case TableHoldingRegisters:
		return "holding-registers"
	case TableInputRegisters:
		return "input-registers"
	default:
		return "unknown"
	}
}

// IsBit returns true for the single-bit tables.
func (t Table) IsBit() bool {
	return t == TableCoils || t == TableDiscreteInputs
}

// ClientAccess returns what remote clients may do with the table.
func (t Table) ClientAccess() Access {
	switch t {
	case TableCoils, TableHoldingRegisters:
		return AccessReadWrite
	case TableDiscreteInputs, TableInputRegisters:
		return AccessRead
	default:
		return 0
	}
}

// ParseTable parses a table name. Short forms (co, di, hr, ir) are accepted.
func ParseTable(s string) (Table, error) {
	switch strings.ToLower(s) {
	case "coils", "coil", "co":
		return TableCoils, nil
	case "discrete-inputs", "discrete", "di":
		return TableDiscreteInputs, nil
	case "holding-registers", "holding", "hr":
		return TableHoldingRegisters, nil
	case "input-registers", "input", "ir":
		return TableInputRegisters, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, s)
	}
}

// Access flags for a table or block.
type Access uint8

const (
	// AccessRead allows reading.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing.
	AccessWrite

	// AccessReadWrite is read and write.
	AccessReadWrite = AccessRead | AccessWrite
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if s == "" {
		return "-"
	}
	return s
}
