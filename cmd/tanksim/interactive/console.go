// Package interactive provides the operator console of the tanksim binary.
// Every write goes through the register store, exactly as a Modbus client
// write would, and takes effect on the next scan cycle.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

// lineReader is the part of *readline.Instance the console uses.
type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
	Close() error
}

// Console handles interactive mode for tanksim.
type Console struct {
	store  register.Store
	layout register.Layout
	latest *log.Latest
	out    io.Writer

	rl        lineReader
	closeOnce sync.Once
	closeErr  error
}

// New creates a console reading from the terminal.
func New(store register.Store, layout register.Layout, latest *log.Latest) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tanksim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := NewConsole(store, layout, latest, rl.Stdout())
	c.rl = rl
	return c, nil
}

// NewConsole creates a console without a terminal. Commands are passed to
// Exec and output goes to out.
func NewConsole(store register.Store, layout register.Layout, latest *log.Latest, out io.Writer) *Console {
	return &Console{
		store:  store,
		layout: layout,
		latest: latest,
		out:    out,
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	if c.rl != nil {
		return c.rl.Stdout()
	}
	return c.out
}

// Close releases the terminal and unblocks a pending read. It is safe to
// call more than once and from any goroutine.
func (c *Console) Close() error {
	if c.rl == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.closeErr = c.rl.Close()
	})
	return c.closeErr
}

// Run starts the interactive command loop. It calls cancel when the
// operator quits or closes the input, and returns once ctx is done.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.Close()
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.Exec(line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the operator asked to
// quit.
func (c *Console) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		c.printHelp()

	case "status", "s":
		c.cmdStatus()

	case "pump":
		err = c.setCoil(register.CmdPump, args)
	case "heater":
		err = c.setCoil(register.CmdHeater, args)
	case "manual":
		err = c.setCoil(register.CmdManualMode, args)

	case "reset":
		err = c.writeCommand(register.CmdFaultReset, true)

	case "inflow":
		err = c.setNumber(register.SpInflow, args, 1)
	case "valve":
		err = c.setNumber(register.SpValve, args, 1)
	case "temp":
		err = c.setNumber(register.SpTemperature, args, register.TemperatureScale)

	case "noise":
		var on bool
		if on, err = parseOnOff(args); err == nil {
			err = c.writeSetpoint(register.SpNoiseEnable, register.FromBool(on))
		}

	case "fault":
		err = c.cmdFault(args)

	case "read", "r":
		err = c.cmdRead(args)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Tank Simulator Commands:
  Commands (coils):
    pump on|off        - Start or stop the inlet pump
    heater on|off      - Switch the heater command
    manual on|off      - Select manual or automatic mode
    reset              - Pulse fault reset

  Setpoints (holding registers):
    inflow <lps>       - Inflow setpoint (L/s)
    valve <pct>        - Outlet valve opening (0-100 %)
    temp <c>           - Temperature setpoint (°C, 0.1 resolution)
    noise on|off       - Enable measurement noise
    fault <mask>       - Fault mask (1 freeze level, 2 temp spike,
                         4 pressure offset, 8 valve stuck closed)

  Inspection:
    status             - Show the last scan cycle
    read <block>       - Dump a register block (commands, alarms,
                         telemetry, setpoints)

  Other:
    help               - Show this help
    quit               - Stop the simulator`)
}

func (c *Console) cmdStatus() {
	ev, ok := c.latest.Get()
	if !ok {
		fmt.Fprintln(c.out, "No scan cycle has completed yet.")
		return
	}

	r := ev.Reading
	fmt.Fprintf(c.out, "Cycle %d  dt=%.2fs  took=%s\n", ev.Cycle, ev.Dt, ev.Duration)
	fmt.Fprintf(c.out, "  Level:       %7.1f cm\n", r.LevelCM)
	fmt.Fprintf(c.out, "  Temperature: %7.1f °C (setpoint %.1f)\n", r.TempC, ev.Setpoints.TempC)
	fmt.Fprintf(c.out, "  Pressure:    %7.1f kPa\n", r.PressureKPa)
	fmt.Fprintf(c.out, "  Inflow:      %7.1f L/s (setpoint %.0f)\n", r.InflowLPS, ev.Setpoints.InflowLPS)
	fmt.Fprintf(c.out, "  Outflow:     %7.1f L/s (valve %.0f%%)\n", r.OutflowLPS, ev.Setpoints.ValvePct)
	fmt.Fprintf(c.out, "  Pump: %s  Heater: %s  Mode: %s\n",
		onOff(ev.Actuators.PumpRunning), onOff(ev.Actuators.HeaterOn), mode(ev.Commands.ManualMode))
	fmt.Fprintf(c.out, "  Alarms: high level %s, high temp %s\n",
		onOff(ev.Alarms.HighLevel), onOff(ev.Alarms.HighTemp))
	fmt.Fprintf(c.out, "  Faults: mask %s, active %t, sensor fail %t  (status %d)\n",
		ev.Setpoints.FaultMask, ev.Faults.Active, ev.Faults.SensorFail, ev.Status)
}

func (c *Console) cmdFault(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fault <mask>")
	}
	v, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		return fmt.Errorf("invalid mask %q", args[0])
	}
	if plant.FaultMask(v)&^plant.FaultMaskAll != 0 {
		fmt.Fprintf(c.out, "Note: bits outside %#x are ignored\n", uint16(plant.FaultMaskAll))
	}
	return c.writeSetpoint(register.SpFaultMask, uint16(v))
}

func (c *Console) cmdRead(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: read <block>")
	}
	block, err := register.ParseBlock(args[0])
	if err != nil {
		return err
	}
	spec, _ := c.layout.Spec(block)

	values, err := c.store.GetValues(spec.Table, spec.Base, spec.Size)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s (%s @ %d)\n", block, spec.Table, spec.Base)
	names := register.FieldNames(block)
	for i, v := range values {
		fmt.Fprintf(c.out, "  %5d  %-14s %d\n", spec.Addr(i), names[i], v)
	}
	return nil
}

func (c *Console) setCoil(offset int, args []string) error {
	on, err := parseOnOff(args)
	if err != nil {
		return err
	}
	return c.writeCommand(offset, on)
}

func (c *Console) setNumber(offset int, args []string, scale float64) error {
	if len(args) != 1 {
		return errors.New("expected one numeric argument")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v < 0 {
		return fmt.Errorf("invalid value %q", args[0])
	}
	return c.writeSetpoint(offset, register.FixedPoint(v, scale))
}

func (c *Console) writeCommand(offset int, on bool) error {
	s := c.layout.Commands
	if err := c.store.SetValues(s.Table, s.Addr(offset), []uint16{register.FromBool(on)}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s = %s\n", register.FieldNames(register.BlockCommands)[offset], onOff(on))
	return nil
}

func (c *Console) writeSetpoint(offset int, raw uint16) error {
	s := c.layout.Setpoints
	if err := c.store.SetValues(s.Table, s.Addr(offset), []uint16{raw}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s = %d\n", register.FieldNames(register.BlockSetpoints)[offset], raw)
	return nil
}

func parseOnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", args[0])
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func mode(manual bool) string {
	if manual {
		return "manual"
	}
	return "auto"
}

func completer() *readline.PrefixCompleter {
	onOffItems := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}
	}
	blocks := make([]readline.PrefixCompleterInterface, 0, 4)
	for _, b := range []register.Block{register.BlockCommands, register.BlockAlarms, register.BlockTelemetry, register.BlockSetpoints} {
		blocks = append(blocks, readline.PcItem(b.String()))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("status"),
		readline.PcItem("pump", onOffItems()...),
		readline.PcItem("heater", onOffItems()...),
		readline.PcItem("manual", onOffItems()...),
		readline.PcItem("noise", onOffItems()...),
		readline.PcItem("inflow"),
		readline.PcItem("valve"),
		readline.PcItem("temp"),
		readline.PcItem("fault"),
		readline.PcItem("reset"),
		readline.PcItem("read", blocks...),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
