package discovery

import (
	"errors"
	"fmt"
	"time"
)

// Service constants.
const (
	// ServiceType is the DNS-SD service type for Modbus TCP.
	ServiceType = "_modbus._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// InstancePrefix prefixes the unit id in the instance name.
	InstancePrefix = "tanksim-"
)

// TXT record keys.
const (
	TXTKeyUnit          = "unit" // Modbus unit id
	TXTKeyTelemetryBase = "tb"   // Telemetry block base address
	TXTKeySetpointBase  = "sb"   // Setpoint block base address
	TXTKeyCadence       = "cad"  // Scan cadence in milliseconds
	TXTKeyRunID         = "run"  // Run id (optional)
	TXTKeyVersion       = "ver"  // Simulator version (optional)
	TXTKeyMapVersion    = "map"  // Register map version (optional)
)

// MaxInstanceNameLen is the DNS label limit.
const MaxInstanceNameLen = 63

// Errors.
var (
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
)

// ServiceInfo describes one simulator instance.
type ServiceInfo struct {
	// Port is the Modbus TCP port.
	Port uint16

	UnitID        uint8
	TelemetryBase uint16
	SetpointBase  uint16
	Cadence       time.Duration

	RunID      string
	Version    string
	MapVersion string
}

// InstanceName returns "tanksim-<unit>".
func (i *ServiceInfo) InstanceName() string {
	return fmt.Sprintf("%s%d", InstancePrefix, i.UnitID)
}
