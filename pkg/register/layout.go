package register

import (
	"errors"
	"fmt"
	"strings"
)

// Block identifies one of the simulator's logical register blocks.
type Block uint8

const (
	// BlockCommands holds the operator command bits.
	BlockCommands Block = iota + 1

	// BlockAlarms holds the alarm and actuator feedback bits.
	BlockAlarms

	// BlockTelemetry holds the published process values.
	BlockTelemetry

	// BlockSetpoints holds operator setpoints.
	BlockSetpoints
)

// String returns the block name.
func (b Block) String() string {
	switch b {
	case BlockCommands:
		return "commands"
	case BlockAlarms:
		return "alarms"
	case BlockTelemetry:
		return "telemetry"
	case BlockSetpoints:
		return "setpoints"
	default:
		return "unknown"
	}
}

// ParseBlock parses a block name.
func ParseBlock(s string) (Block, error) {
	switch strings.ToLower(s) {
	case "commands", "cmd":
		return BlockCommands, nil
	case "alarms", "alarm":
		return BlockAlarms, nil
	case "telemetry", "tel":
		return BlockTelemetry, nil
	case "setpoints", "sp":
		return BlockSetpoints, nil
	default:
		return 0, fmt.Errorf("unknown block %q", s)
	}
}

// Command bit offsets.
const (
	CmdPump = iota
	CmdHeater
	CmdManualMode
	CmdFaultReset

	CommandCount
)

// Alarm bit offsets.
const (
	AlarmPumpRunning = iota
	AlarmHeaterOn
	AlarmHighLevel
	AlarmHighTemp

	AlarmCount
)

// Telemetry register offsets.
const (
	TelLevel = iota
	TelInflow
	TelOutflow
	TelTemperature
	TelPressure
	TelStatus

	TelemetryCount
)

// Setpoint register offsets.
const (
	SpInflow = iota
	SpValve
	SpTemperature
	SpNoiseEnable
	SpFaultMask

	SetpointCount
)

// TemperatureScale is the fixed-point scale of temperature registers (0.1 °C).
const TemperatureScale = 10

// Default base addresses.
const (
	DefaultCommandBase   uint16 = 0
	DefaultAlarmBase     uint16 = 0
	DefaultTelemetryBase uint16 = 1000

	// SetpointGap is the distance between the telemetry and setpoint bases.
	SetpointGap uint16 = 100
)

var fieldNames = map[Block][]string{
	BlockCommands:  {"pump", "heater", "manual", "fault_reset"},
	BlockAlarms:    {"pump_running", "heater_on", "high_level", "high_temp"},
	BlockTelemetry: {"level_cm", "inflow_lps", "outflow_lps", "temp_x10c", "pressure_kpa", "status"},
	BlockSetpoints: {"inflow_sp_lps", "valve_pct", "temp_sp_x10c", "noise_enable", "fault_mask"},
}

// FieldNames returns the names of the cells in a block, in offset order.
func FieldNames(b Block) []string {
	return fieldNames[b]
}

// ErrLayoutOverlap is returned when two blocks share cells.
var ErrLayoutOverlap = errors.New("register blocks overlap")

// BlockSpec places a logical block in a table.
type BlockSpec struct {
	Block  Block
	Table  Table
	Base   uint16
	Size   int
	Access Access // client access
}

// Addr returns the absolute address of the cell at offset.
func (s BlockSpec) Addr(offset int) uint16 {
	return s.Base + uint16(offset)
}

// End returns one past the last absolute address of the block.
func (s BlockSpec) End() int {
	return int(s.Base) + s.Size
}

// Overlaps returns true if [addr, addr+count) in table shares cells with the block.
func (s BlockSpec) Overlaps(table Table, addr uint16, count int) bool {
	if table != s.Table || count <= 0 {
		return false
	}
	return int(addr) < s.End() && int(addr)+count > int(s.Base)
}

// Layout maps the four logical blocks to tables and base addresses.
type Layout struct {
	Commands  BlockSpec
	Alarms    BlockSpec
	Telemetry BlockSpec
	Setpoints BlockSpec
}

// NewLayout creates a layout with explicit base addresses.
func NewLayout(commandBase, alarmBase, telemetryBase, setpointBase uint16) Layout {
	return Layout{
		Commands: BlockSpec{
			Block: BlockCommands, Table: TableCoils,
			Base: commandBase, Size: CommandCount, Access: AccessReadWrite,
		},
		Alarms: BlockSpec{
			Block: BlockAlarms, Table: TableDiscreteInputs,
			Base: alarmBase, Size: AlarmCount, Access: AccessRead,
		},
		Telemetry: BlockSpec{
			Block: BlockTelemetry, Table: TableHoldingRegisters,
			Base: telemetryBase, Size: TelemetryCount, Access: AccessRead,
		},
		Setpoints: BlockSpec{
			Block: BlockSetpoints, Table: TableHoldingRegisters,
			Base: setpointBase, Size: SetpointCount, Access: AccessReadWrite,
		},
	}
}

// LayoutAt places telemetry at base and setpoints SetpointGap registers above
// it. Bit blocks stay at their default addresses.
func LayoutAt(base uint16) Layout {
	return NewLayout(DefaultCommandBase, DefaultAlarmBase, base, base+SetpointGap)
}

// DefaultLayout returns the classic address map: coils 0, discrete inputs 0,
// telemetry at holding 1000 and setpoints at holding 1100.
func DefaultLayout() Layout {
	return LayoutAt(DefaultTelemetryBase)
}

// Blocks returns all block specs.
func (l Layout) Blocks() []BlockSpec {
	return []BlockSpec{l.Commands, l.Alarms, l.Telemetry, l.Setpoints}
}

// Spec returns the spec of a block.
func (l Layout) Spec(b Block) (BlockSpec, bool) {
	for _, s := range l.Blocks() {
		if s.Block == b {
			return s, true
		}
	}
	return BlockSpec{}, false
}

// Validate checks that every block fits in the address space and that no two
// blocks share cells.
func (l Layout) Validate() error {
	blocks := l.Blocks()
	for i, a := range blocks {
		if a.End() > MaxTableSize {
			return fmt.Errorf("%w: %s ends at %d", ErrAddressOutOfRange, a.Block, a.End())
		}
		for _, b := range blocks[i+1:] {
			if a.Overlaps(b.Table, b.Base, b.Size) {
				return fmt.Errorf("%w: %s and %s", ErrLayoutOverlap, a.Block, b.Block)
			}
		}
	}
	return nil
}

// CheckClientWrite returns ErrReadOnly if a client write to [addr, addr+count)
// touches a read-only table or block.
func (l Layout) CheckClientWrite(table Table, addr uint16, count int) error {
	if !table.ClientAccess().CanWrite() {
		return fmt.Errorf("%w: %s", ErrReadOnly, table)
	}
	for _, s := range l.Blocks() {
		if !s.Access.CanWrite() && s.Overlaps(table, addr, count) {
			return fmt.Errorf("%w: %s", ErrReadOnly, s.Block)
		}
	}
	return nil
}
