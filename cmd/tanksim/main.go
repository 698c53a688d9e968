// Command tanksim runs the tank simulator: a scan-synchronized process model
// served over Modbus TCP.
//
// Usage:
//
//	tanksim [flags]
//
// Flags:
//
//	-config string      YAML configuration file
//	-env string         .env file with TANKSIM_* variables (default ".env")
//	-preset string      Parameter preset: default, legacy, training
//	-host string        Modbus listen host (default all interfaces)
//	-port int           Modbus listen port (default 5020)
//	-unit int           Modbus unit id (default 1)
//	-base int           Telemetry base address; setpoints at base+100 (default 1000)
//	-cadence duration   Scan cadence (default 1s)
//	-noise              Initial noise enable
//	-fault-mask int     Initial fault mask
//	-seed int           Noise and spike seed (0 seeds from the time)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-cycle-log string   Write every scan cycle to a capture file
//	-http string        Status API listen address, e.g. :8080
//	-mdns               Advertise the Modbus endpoint over mDNS
//	-interactive        Start the operator console
//
// Examples:
//
//	# Classic behaviour on the default port
//	tanksim -preset legacy
//
//	# Quiet plant on a custom address map with capture and status API
//	tanksim -base 2000 -noise=false -cycle-log run.tlog -http :8080
//
//	# Operator console with a stuck valve from the start
//	tanksim -interactive -fault-mask 8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tanksim/tanksim-go/pkg/config"
	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

// options holds the raw flag values. Only flags given on the command line
// override the configuration.
type options struct {
	configPath  string
	envFile     string
	preset      string
	host        string
	port        int
	unit        uint
	base        uint
	cadence     time.Duration
	noise       bool
	faultMask   uint
	seed        uint64
	logLevel    string
	cycleLog    string
	http        string
	mdns        bool
	interactive bool
}

func registerFlags(fs *flag.FlagSet) *options {
	def := config.Default()
	o := &options{}

	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.envFile, "env", ".env", ".env file with TANKSIM_* variables")
	fs.StringVar(&o.preset, "preset", def.Preset, "Parameter preset: "+strings.Join(plant.PresetNames(), ", "))
	fs.StringVar(&o.host, "host", def.Host, "Modbus listen host (empty binds all interfaces)")
	fs.IntVar(&o.port, "port", def.Port, "Modbus listen port")
	fs.UintVar(&o.unit, "unit", uint(def.UnitID), "Modbus unit id")
	fs.UintVar(&o.base, "base", uint(def.Base), "Telemetry base address; setpoints at base+100")
	fs.DurationVar(&o.cadence, "cadence", def.Cadence, "Scan cadence")
	fs.BoolVar(&o.noise, "noise", def.Initial.Noise, "Initial noise enable")
	fs.UintVar(&o.faultMask, "fault-mask", uint(def.Initial.FaultMask), "Initial fault mask")
	fs.Uint64Var(&o.seed, "seed", def.Seed, "Noise and spike seed (0 seeds from the time)")
	fs.StringVar(&o.logLevel, "log-level", def.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&o.cycleLog, "cycle-log", "", "Write every scan cycle to a capture file")
	fs.StringVar(&o.http, "http", "", "Status API listen address, e.g. :8080")
	fs.BoolVar(&o.mdns, "mdns", false, "Advertise the Modbus endpoint over mDNS")
	fs.BoolVar(&o.interactive, "interactive", false, "Start the operator console")
	return o
}

// loadConfig layers defaults, the YAML file, the environment and the flags
// that were set, then validates the result.
func loadConfig(fs *flag.FlagSet, o *options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := config.LoadEnv(&cfg, o.envFile); err != nil {
		return config.Config{}, err
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "preset":
			err = cfg.SetPreset(o.preset)
		case "host":
			cfg.Host = o.host
		case "port":
			cfg.Port = o.port
		case "unit":
			if o.unit > 255 {
				err = fmt.Errorf("unit %d out of range", o.unit)
			}
			cfg.UnitID = uint8(o.unit)
		case "base":
			if o.base > register.MaxTableSize-1 {
				err = fmt.Errorf("base %d out of range", o.base)
			}
			cfg.Base = uint16(o.base)
		case "cadence":
			cfg.Cadence = o.cadence
		case "noise":
			cfg.Initial.Noise = o.noise
		case "fault-mask":
			if o.faultMask > 0xFFFF {
				err = fmt.Errorf("fault mask %#x out of range", o.faultMask)
			}
			cfg.Initial.FaultMask = uint16(o.faultMask)
		case "seed":
			cfg.Seed = o.seed
		case "log-level":
			cfg.LogLevel = o.logLevel
		case "cycle-log":
			cfg.CycleLog = o.cycleLog
		case "http":
			cfg.HTTP = o.http
		case "mdns":
			cfg.MDNS = o.mdns
		case "interactive":
			cfg.Interactive = o.interactive
		}
	})
	if err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// run parses args, builds the simulator and runs it until ctx is done or the
// scan loop fails.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tanksim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	o := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, o)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, register.NewMemoryStore(register.DefaultSizes()), stderr)
	if err != nil {
		return err
	}
	return a.run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "tanksim: %v\n", err)
		os.Exit(1)
	}
}
