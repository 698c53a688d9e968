package testutil

import (
	"testing"

	"github.com/tanksim/tanksim-go/pkg/register"
)

// NewStore returns a full-size memory store.
func NewStore() *register.MemoryStore {
	return register.NewMemoryStore(register.DefaultSizes())
}

// MustGet reads count values or fails the test.
func MustGet(t testing.TB, s register.Store, table register.Table, addr uint16, count int) []uint16 {
	t.Helper()
	v, err := s.GetValues(table, addr, count)
	if err != nil {
		t.Fatalf("GetValues(%s, %d, %d): %v", table, addr, count, err)
	}
	return v
}

// MustSet writes values or fails the test.
func MustSet(t testing.TB, s register.Store, table register.Table, addr uint16, values ...uint16) {
	t.Helper()
	if err := s.SetValues(table, addr, values); err != nil {
		t.Fatalf("SetValues(%s, %d): %v", table, addr, err)
	}
}
