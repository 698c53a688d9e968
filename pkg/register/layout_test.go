package register

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, TableCoils, l.Commands.Table)
	assert.Equal(t, uint16(0), l.Commands.Base)
	assert.Equal(t, TableDiscreteInputs, l.Alarms.Table)
	assert.Equal(t, uint16(1000), l.Telemetry.Base)
	assert.Equal(t, uint16(1100), l.Setpoints.Base)
	assert.Equal(t, uint16(1104), l.Setpoints.Addr(SpFaultMask))
	require.NoError(t, l.Validate())
}

func TestLayoutAtShiftsHoldingBlocks(t *testing.T) {
	l := LayoutAt(40000)

	assert.Equal(t, uint16(40000), l.Telemetry.Base)
	assert.Equal(t, uint16(40100), l.Setpoints.Base)
	assert.Equal(t, DefaultCommandBase, l.Commands.Base)
	require.NoError(t, l.Validate())
}

func TestLayoutValidate(t *testing.T) {
	t.Run("overlap", func(t *testing.T) {
		l := NewLayout(0, 0, 1000, 1003)
		err := l.Validate()
		assert.True(t, errors.Is(err, ErrLayoutOverlap), "got %v", err)
	})

	t.Run("bit blocks may share addresses across tables", func(t *testing.T) {
		l := NewLayout(10, 10, 0, 10)
		assert.NoError(t, l.Validate())
	})

	t.Run("past address space", func(t *testing.T) {
		l := NewLayout(0, 0, 65533, 100)
		err := l.Validate()
		assert.True(t, errors.Is(err, ErrAddressOutOfRange), "got %v", err)
	})
}

func TestLayoutCheckClientWrite(t *testing.T) {
	l := DefaultLayout()

	tests := []struct {
		name  string
		table Table
		addr  uint16
		count int
		ok    bool
	}{
		{"setpoint block", TableHoldingRegisters, 1100, 5, true},
		{"commands", TableCoils, 0, 4, true},
		{"telemetry block", TableHoldingRegisters, 1002, 1, false},
		{"span ending inside telemetry", TableHoldingRegisters, 990, 11, false},
		{"span just below telemetry", TableHoldingRegisters, 990, 10, true},
		{"discrete inputs", TableDiscreteInputs, 100, 1, false},
		{"input registers", TableInputRegisters, 0, 1, false},
		{"unmapped holding", TableHoldingRegisters, 5000, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.CheckClientWrite(tt.table, tt.addr, tt.count)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrReadOnly)
			}
		})
	}
}

func TestParseNames(t *testing.T) {
	for _, tbl := range Tables {
		got, err := ParseTable(tbl.String())
		require.NoError(t, err)
		assert.Equal(t, tbl, got)
	}
	_, err := ParseTable("bogus")
	assert.ErrorIs(t, err, ErrUnknownTable)

	for _, s := range DefaultLayout().Blocks() {
		got, err := ParseBlock(s.Block.String())
		require.NoError(t, err)
		assert.Equal(t, s.Block, got)
		assert.Len(t, FieldNames(s.Block), s.Size)
	}
}
