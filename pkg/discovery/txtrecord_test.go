package discovery

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTXT(t *testing.T) {
	info := &ServiceInfo{
		UnitID:        3,
		TelemetryBase: 2000,
		SetpointBase:  2100,
		Cadence:       500 * time.Millisecond,
		RunID:         "8d7c1c9e-0000-4000-8000-000000000001",
		Version:       "0.1.0",
		MapVersion:    "1.0",
	}

	txt := EncodeTXT(info)
	assert.Equal(t, TXTRecordMap{
		"unit": "3", "tb": "2000", "sb": "2100", "cad": "500",
		"run": "8d7c1c9e-0000-4000-8000-000000000001", "ver": "0.1.0",
		"map": "1.0",
	}, txt)
}

func TestEncodeTXTOmitsEmptyOptional(t *testing.T) {
	txt := EncodeTXT(&ServiceInfo{UnitID: 1, TelemetryBase: 1000, SetpointBase: 1100, Cadence: time.Second})
	assert.NotContains(t, txt, TXTKeyRunID)
	assert.NotContains(t, txt, TXTKeyVersion)
	assert.NotContains(t, txt, TXTKeyMapVersion)
}

func TestTXTStrings(t *testing.T) {
	strs := TXTRecordsToStrings(TXTRecordMap{"unit": "1", "cad": "1000", "tb": "1000"})
	assert.Equal(t, []string{"cad=1000", "tb=1000", "unit=1"}, strs)
}

func TestInstanceName(t *testing.T) {
	info := &ServiceInfo{UnitID: 17}
	assert.Equal(t, "tanksim-17", info.InstanceName())
	assert.NoError(t, ValidateInstanceName(info.InstanceName()))

	assert.Error(t, ValidateInstanceName(""))
	assert.ErrorIs(t, ValidateInstanceName(strings.Repeat("x", 64)), ErrInstanceNameTooLong)
}
