package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/tanksim/tanksim-go/cmd/tanksim/interactive"
	"github.com/tanksim/tanksim-go/pkg/api"
	"github.com/tanksim/tanksim-go/pkg/config"
	"github.com/tanksim/tanksim-go/pkg/discovery"
	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/metrics"
	"github.com/tanksim/tanksim-go/pkg/register"
	"github.com/tanksim/tanksim-go/pkg/scan"
	"github.com/tanksim/tanksim-go/pkg/transport"
	"github.com/tanksim/tanksim-go/pkg/version"
)

// app holds the wired simulator.
type app struct {
	cfg    config.Config
	runID  string
	logger *slog.Logger
	store  register.Store
	layout register.Layout
	latest *log.Latest

	capture   *log.FileLogger
	engine    *scan.Engine
	scheduler *scan.Scheduler
	server    *transport.Server
	api       *api.Server
	console   *interactive.Console
}

func newApp(cfg config.Config, store register.Store, stderr io.Writer) (*app, error) {
	a := &app{
		cfg:    cfg,
		runID:  uuid.NewString(),
		store:  store,
		layout: cfg.Layout(),
		latest: log.NewLatest(),
	}

	// The console owns the terminal; logs must go through its writer.
	out := stderr
	if cfg.Interactive {
		console, err := interactive.New(store, a.layout, a.latest)
		if err != nil {
			return nil, err
		}
		a.console = console
		out = console.Stdout()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})).
		With(slog.String("run", a.runID))

	loggers := []log.Logger{log.NewSlogAdapter(a.logger), a.latest}

	var observer transport.Observer
	var registry *prometheus.Registry
	if cfg.HTTP != "" {
		registry = prometheus.NewRegistry()
		collector := metrics.NewCollector(registry)
		loggers = append(loggers, collector)
		observer = collector
	}

	if cfg.CycleLog != "" {
		capture, err := log.NewFileLogger(cfg.CycleLog)
		if err != nil {
			return nil, err
		}
		a.capture = capture
		loggers = append(loggers, capture)
	}

	a.engine = scan.NewEngine(scan.EngineConfig{
		Store:   store,
		Layout:  a.layout,
		Params:  cfg.Params,
		Initial: cfg.Initial.State(),
		Seed:    cfg.Seed,
		Logger:  log.NewMultiLogger(loggers...),
		RunID:   a.runID,
	})
	a.scheduler = scan.NewScheduler(a.engine, scan.SchedulerConfig{
		Cadence: cfg.Cadence,
		DtMin:   cfg.DtMin,
		DtMax:   cfg.DtMax,
	})

	server, err := transport.NewServer(store, a.layout, transport.ServerConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UnitID:   cfg.UnitID,
		Logger:   a.logger,
		Observer: observer,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.server = server

	if cfg.HTTP != "" {
		a.api = api.NewServer(store, a.layout, a.latest, api.Config{
			Addr:     cfg.HTTP,
			Version:  version.Build,
			RunID:    a.runID,
			Gatherer: registry,
			Logger:   a.logger,
		})
	}

	return a, nil
}

// serviceInfo describes the Modbus endpoint for discovery.
func (a *app) serviceInfo() *discovery.ServiceInfo {
	return &discovery.ServiceInfo{
		Port:          uint16(a.cfg.Port),
		UnitID:        a.cfg.UnitID,
		TelemetryBase: a.layout.Telemetry.Base,
		SetpointBase:  a.layout.Setpoints.Base,
		Cadence:       a.cfg.Cadence,
		RunID:         a.runID,
		Version:       version.Build,
		MapVersion:    version.RegisterMap,
	}
}

// run seeds the registers, starts the Modbus server and runs the scan loop
// together with the optional components until ctx is done or a component
// fails.
func (a *app) run(ctx context.Context) error {
	defer a.close()

	a.logger.Info("tank simulator starting",
		slog.String("version", version.Build),
		slog.String("preset", a.cfg.Preset),
		slog.Int("telemetry_base", int(a.layout.Telemetry.Base)),
		slog.Int("setpoint_base", int(a.layout.Setpoints.Base)),
		slog.Duration("cadence", a.cfg.Cadence))

	if err := a.engine.Seed(a.cfg.Initial.Commands(), a.cfg.Initial.Setpoints()); err != nil {
		return err
	}
	if err := a.server.Start(); err != nil {
		return err
	}
	defer a.server.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.scheduler.Run(gctx)
	})

	if a.api != nil {
		g.Go(func() error {
			return a.api.Serve(gctx)
		})
	}

	if a.cfg.MDNS {
		g.Go(func() error {
			adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
			if err := discovery.Announce(gctx, adv, a.serviceInfo()); err != nil {
				a.logger.Warn("mDNS advertising failed", slog.Any("error", err))
			}
			return nil
		})
	}

	// Readline blocks outside of ctx, so the console is not part of the
	// group; it closes its reader once gctx is done.
	if a.console != nil {
		go a.console.Run(gctx, cancel)
	}

	err := g.Wait()
	if err != nil {
		a.logger.Error("tank simulator stopped", slog.Any("error", err))
	} else {
		a.logger.Info("tank simulator stopped", slog.Uint64("cycles", a.engine.Cycles()))
	}
	return err
}

func (a *app) close() {
	if a.console != nil {
		if err := a.console.Close(); err != nil && a.logger != nil {
			a.logger.Warn("closing console", slog.Any("error", err))
		}
	}
	if a.capture == nil {
		return
	}
	written, failed := a.capture.Stats()
	if err := a.capture.Close(); err != nil {
		a.logger.Warn("closing cycle log", slog.Any("error", err))
	}
	if a.logger != nil {
		a.logger.Info("cycle log closed",
			slog.String("path", a.cfg.CycleLog),
			slog.Uint64("written", written),
			slog.Uint64("failed", failed))
	}
}
