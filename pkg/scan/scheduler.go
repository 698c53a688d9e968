package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanksim/tanksim-go/pkg/log"
)

// Scheduler defaults.
const (
	// DefaultCadence is the target cycle period.
	DefaultCadence = time.Second

	// DefaultDtMin and DefaultDtMax bound the step length in seconds.
	DefaultDtMin = 0.1
	DefaultDtMax = 5.0

	// DefaultMinSleep is the shortest sleep between cycles, even when a
	// cycle overran the cadence.
	DefaultMinSleep = 10 * time.Millisecond
)

// ErrCycleFailed wraps the error of the cycle that stopped the scheduler.
var ErrCycleFailed = errors.New("scan cycle failed")

// Cycler runs one cycle. *Engine implements it.
type Cycler interface {
	Cycle(dt float64) (log.Event, error)
}

// SchedulerConfig configures a Scheduler. Zero fields take the defaults.
type SchedulerConfig struct {
	Cadence  time.Duration
	DtMin    float64
	DtMax    float64
	MinSleep time.Duration
	Clock    Clock
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.Cadence <= 0 {
		c.Cadence = DefaultCadence
	}
	if c.DtMin <= 0 {
		c.DtMin = DefaultDtMin
	}
	if c.DtMax <= 0 {
		c.DtMax = DefaultDtMax
	}
	if c.DtMax < c.DtMin {
		c.DtMax = c.DtMin
	}
	if c.MinSleep <= 0 {
		c.MinSleep = DefaultMinSleep
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	return c
}

// Scheduler repeats cycles at a fixed cadence. The step length of each cycle
// is the wall time since the previous tick, clamped to [DtMin, DtMax]; the
// sleep after a cycle is the cadence minus the time the cycle took.
type Scheduler struct {
	cycler Cycler
	cfg    SchedulerConfig
	last   time.Time
}

// NewScheduler creates a Scheduler.
func NewScheduler(cycler Cycler, cfg SchedulerConfig) *Scheduler {
	cfg = cfg.withDefaults()
	return &Scheduler{
		cycler: cycler,
		cfg:    cfg,
		last:   cfg.Clock.Now(),
	}
}

// Run loops until ctx is done or a cycle fails. Cancellation returns nil; a
// cycle failure is returned wrapped in ErrCycleFailed and is never retried.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		took, err := s.Tick()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCycleFailed, err)
		}

		if err := s.cfg.Clock.Sleep(ctx, s.SleepFor(took)); err != nil {
			return nil
		}
	}
}

// Tick runs one cycle and returns how long it took.
func (s *Scheduler) Tick() (time.Duration, error) {
	now := s.cfg.Clock.Now()
	dt := s.ClampDt(now.Sub(s.last))
	s.last = now

	_, err := s.cycler.Cycle(dt)
	return s.cfg.Clock.Now().Sub(now), err
}

// ClampDt converts elapsed wall time to a step length in seconds.
func (s *Scheduler) ClampDt(elapsed time.Duration) float64 {
	dt := elapsed.Seconds()
	if dt < s.cfg.DtMin {
		return s.cfg.DtMin
	}
	if dt > s.cfg.DtMax {
		return s.cfg.DtMax
	}
	return dt
}

// SleepFor returns the sleep after a cycle that took took.
func (s *Scheduler) SleepFor(took time.Duration) time.Duration {
	return max(s.cfg.MinSleep, s.cfg.Cadence-took)
}

// Cadence returns the effective cadence.
func (s *Scheduler) Cadence() time.Duration {
	return s.cfg.Cadence
}
