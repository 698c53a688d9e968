package register

import (
	"fmt"
	"sync"
)

// MaxTableSize is the size of a full 16-bit address space.
const MaxTableSize = 1 << 16

// DefaultSizes returns table sizes covering the full address space.
func DefaultSizes() map[Table]int {
	return map[Table]int{
		TableCoils:            MaxTableSize,
		TableDiscreteInputs:   MaxTableSize,
		TableHoldingRegisters: MaxTableSize,
		TableInputRegisters:   MaxTableSize,
	}
}

// MemoryStore is an in-memory implementation of the Store interface.
// A single RWMutex guards all tables, so every call sees a consistent view.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[Table][]uint16
}

// NewMemoryStore creates a store with the given table sizes. Tables missing
// from sizes are not addressable; sizes above MaxTableSize are capped.
func NewMemoryStore(sizes map[Table]int) *MemoryStore {
	tables := make(map[Table][]uint16, len(sizes))
	for t, n := range sizes {
		if n > MaxTableSize {
			n = MaxTableSize
		}
		if n < 0 {
			n = 0
		}
		tables[t] = make([]uint16, n)
	}
	return &MemoryStore{tables: tables}
}

// GetValues returns a copy of count cells starting at addr.
func (s *MemoryStore) GetValues(table Table, addr uint16, count int) ([]uint16, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells, err := s.span(table, addr, count)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	copy(out, cells)
	return out, nil
}

// SetValues writes values starting at addr. Bit tables store 1 for any
// non-zero value.
func (s *MemoryStore) SetValues(table Table, addr uint16, values []uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells, err := s.span(table, addr, len(values))
	if err != nil {
		return err
	}
	if table.IsBit() {
		for i, v := range values {
			cells[i] = FromBool(v != 0)
		}
		return nil
	}
	copy(cells, values)
	return nil
}

// Size returns the number of cells in a table (0 if it does not exist).
func (s *MemoryStore) Size(table Table) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

// span returns the backing slice for [addr, addr+count). Callers hold mu.
func (s *MemoryStore) span(table Table, addr uint16, count int) ([]uint16, error) {
	cells, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, table)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	end := int(addr) + count
	if end > len(cells) {
		return nil, fmt.Errorf("%w: %s[%d:%d] exceeds size %d", ErrAddressOutOfRange, table, addr, end, len(cells))
	}
	return cells[addr:end], nil
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
