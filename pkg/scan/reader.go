package scan

import (
	"fmt"

	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

// Reader reads the command and setpoint blocks once per cycle.
type Reader struct {
	store  register.Store
	layout register.Layout
	params plant.Params
	faults *plant.FaultInjector
}

// NewReader creates a Reader. A fault reset clears the latched flags of
// faults.
func NewReader(store register.Store, layout register.Layout, params plant.Params, faults *plant.FaultInjector) *Reader {
	return &Reader{store: store, layout: layout, params: params, faults: faults}
}

// Read returns the current commands and clamped setpoints, one bulk store
// read per block.
//
// When the fault-reset coil is set, Read clears the fault mask register, the
// reset coil and the latched fault flags, and returns a zero fault mask.
func (r *Reader) Read() (plant.Commands, plant.Setpoints, error) {
	cmdSpec := r.layout.Commands
	coils, err := r.store.GetValues(cmdSpec.Table, cmdSpec.Base, cmdSpec.Size)
	if err != nil {
		return plant.Commands{}, plant.Setpoints{}, fmt.Errorf("read commands: %w", err)
	}

	spSpec := r.layout.Setpoints
	regs, err := r.store.GetValues(spSpec.Table, spSpec.Base, spSpec.Size)
	if err != nil {
		return plant.Commands{}, plant.Setpoints{}, fmt.Errorf("read setpoints: %w", err)
	}

	cmds := DecodeCommands(coils)
	sp := DecodeSetpoints(regs).Clamp(r.params)

	if cmds.FaultReset {
		if err := r.reset(); err != nil {
			return plant.Commands{}, plant.Setpoints{}, err
		}
		sp.FaultMask = 0
	}
	return cmds, sp, nil
}

func (r *Reader) reset() error {
	spSpec := r.layout.Setpoints
	if err := r.store.SetValues(spSpec.Table, spSpec.Addr(register.SpFaultMask), []uint16{0}); err != nil {
		return fmt.Errorf("clear fault mask: %w", err)
	}
	cmdSpec := r.layout.Commands
	if err := r.store.SetValues(cmdSpec.Table, cmdSpec.Addr(register.CmdFaultReset), []uint16{0}); err != nil {
		return fmt.Errorf("clear reset coil: %w", err)
	}
	r.faults.Reset()
	return nil
}

// DecodeCommands decodes the command block. Missing cells read as false.
func DecodeCommands(cells []uint16) plant.Commands {
	bit := func(i int) bool { return i < len(cells) && register.ToBool(cells[i]) }
	return plant.Commands{
		PumpOn:     bit(register.CmdPump),
		HeaterOn:   bit(register.CmdHeater),
		ManualMode: bit(register.CmdManualMode),
		FaultReset: bit(register.CmdFaultReset),
	}
}

// DecodeSetpoints decodes the setpoint block without clamping. Missing cells
// read as zero.
func DecodeSetpoints(regs []uint16) plant.Setpoints {
	reg := func(i int) uint16 {
		if i < len(regs) {
			return regs[i]
		}
		return 0
	}
	return plant.Setpoints{
		InflowLPS:    float64(reg(register.SpInflow)),
		ValvePct:     float64(reg(register.SpValve)),
		TempC:        register.FromFixedPoint(reg(register.SpTemperature), register.TemperatureScale),
		NoiseEnabled: register.ToBool(reg(register.SpNoiseEnable)),
		FaultMask:    plant.FaultMask(reg(register.SpFaultMask)),
	}
}

// EncodeCommands encodes commands as a command block.
func EncodeCommands(c plant.Commands) []uint16 {
	cells := make([]uint16, register.CommandCount)
	cells[register.CmdPump] = register.FromBool(c.PumpOn)
	cells[register.CmdHeater] = register.FromBool(c.HeaterOn)
	cells[register.CmdManualMode] = register.FromBool(c.ManualMode)
	cells[register.CmdFaultReset] = register.FromBool(c.FaultReset)
	return cells
}

// EncodeSetpoints encodes setpoints as a setpoint block.
func EncodeSetpoints(sp plant.Setpoints) []uint16 {
	regs := make([]uint16, register.SetpointCount)
	regs[register.SpInflow] = register.ClampUint16(sp.InflowLPS)
	regs[register.SpValve] = register.ClampUint16(sp.ValvePct)
	regs[register.SpTemperature] = register.FixedPoint(sp.TempC, register.TemperatureScale)
	regs[register.SpNoiseEnable] = register.FromBool(sp.NoiseEnabled)
	regs[register.SpFaultMask] = uint16(sp.FaultMask)
	return regs
}
