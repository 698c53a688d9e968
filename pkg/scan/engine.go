package scan

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

// ErrInvalidStep is returned by Cycle for a non-positive or non-finite dt.
var ErrInvalidStep = errors.New("invalid step length")

// EngineConfig configures an Engine.
type EngineConfig struct {
	Store  register.Store
	Layout register.Layout
	Params plant.Params

	// Initial is the plant state before the first cycle.
	Initial plant.State

	// Seed seeds the fault spike and noise generator. 0 seeds from the time.
	Seed uint64

	// Logger receives one event per cycle. Nil disables logging.
	Logger log.Logger

	// RunID is copied into every event.
	RunID string

	// Clock timestamps events. Nil uses the system clock.
	Clock Clock
}

// Engine runs scan cycles. It owns the retained plant state and is not safe
// for concurrent use; only the scheduler goroutine calls it.
type Engine struct {
	params    plant.Params
	store     register.Store
	layout    register.Layout
	reader    *Reader
	publisher *Publisher
	faults    *plant.FaultInjector
	noise     *plant.NoiseInjector
	logger    log.Logger
	clock     Clock
	runID     string

	state plant.State
	cycle uint64
}

// NewEngine creates an Engine.
func NewEngine(cfg EngineConfig) *Engine {
	rng := plant.NewRand(cfg.Seed)
	faults := plant.NewFaultInjector(cfg.Params, rng)

	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	return &Engine{
		params:    cfg.Params,
		store:     cfg.Store,
		layout:    cfg.Layout,
		reader:    NewReader(cfg.Store, cfg.Layout, cfg.Params, faults),
		publisher: NewPublisher(cfg.Store, cfg.Layout),
		faults:    faults,
		noise:     plant.NewNoiseInjector(cfg.Params, rng),
		logger:    logger,
		clock:     clock,
		runID:     cfg.RunID,
		state:     cfg.Initial.Clamp(cfg.Params),
	}
}

// Seed writes the initial commands and setpoints to the store and publishes
// the initial state, with flows and pressure derived from the seeded level,
// so clients see sensible values before the first cycle.
func (e *Engine) Seed(cmds plant.Commands, sp plant.Setpoints) error {
	c := e.layout.Commands
	if err := e.store.SetValues(c.Table, c.Base, EncodeCommands(cmds)); err != nil {
		return fmt.Errorf("seed commands: %w", err)
	}
	s := e.layout.Setpoints
	if err := e.store.SetValues(s.Table, s.Base, EncodeSetpoints(sp)); err != nil {
		return fmt.Errorf("seed setpoints: %w", err)
	}

	e.state = plant.Derive(e.params, e.state, cmds, sp)

	return e.publisher.Publish(Output{
		Reading:   e.state,
		Status:    plant.EncodeStatus(cmds.ManualMode, e.faults.Flags()),
		Actuators: plant.Actuators{PumpRunning: cmds.PumpOn, HeaterOn: cmds.HeaterOn},
		Alarms:    plant.EvaluateAlarms(e.params, e.state, sp),
	})
}

// Cycle runs one scan cycle with step length dt seconds and returns its
// event. On error the plant state is left unchanged and the returned event
// carries the failing stage.
func (e *Engine) Cycle(dt float64) (log.Event, error) {
	start := e.clock.Now()
	ev := log.Event{
		Timestamp: start,
		RunID:     e.runID,
		Cycle:     e.cycle + 1,
		Dt:        dt,
		State:     e.state,
	}

	cmds, sp, err := e.reader.Read()
	if err != nil {
		return e.fail(ev, log.StageRead, err)
	}
	ev.Commands, ev.Setpoints = cmds, sp

	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return e.fail(ev, log.StageStep, fmt.Errorf("%w: %v", ErrInvalidStep, dt))
	}

	next, act := plant.Step(e.params, e.state, cmds, e.faults.Override(sp), dt)
	retained, reading := e.faults.Apply(e.state, next, sp.FaultMask)
	reading = e.noise.Apply(reading, sp.NoiseEnabled)

	out := Output{
		Reading:   reading,
		Status:    plant.EncodeStatus(cmds.ManualMode, e.faults.Flags()),
		Actuators: act,
		Alarms:    plant.EvaluateAlarms(e.params, reading, sp),
	}
	ev.Reading, ev.State, ev.Faults = reading, retained, e.faults.Flags()
	ev.Actuators, ev.Alarms, ev.Status = out.Actuators, out.Alarms, out.Status

	if err := e.publisher.Publish(out); err != nil {
		return e.fail(ev, log.StagePublish, err)
	}

	e.state = retained
	e.cycle++
	ev.Duration = e.clock.Now().Sub(start)
	e.logger.Log(ev)
	return ev, nil
}

func (e *Engine) fail(ev log.Event, stage log.Stage, err error) (log.Event, error) {
	ev.Duration = e.clock.Now().Sub(ev.Timestamp)
	ev.Error = &log.ErrorEventData{Stage: stage, Message: err.Error()}
	e.logger.Log(ev)
	return ev, err
}

// State returns the retained plant state.
func (e *Engine) State() plant.State {
	return e.state
}

// Cycles returns the number of completed cycles.
func (e *Engine) Cycles() uint64 {
	return e.cycle
}

// Faults returns the latched fault flags.
func (e *Engine) Faults() plant.FaultFlags {
	return e.faults.Flags()
}
