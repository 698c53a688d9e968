package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the simulator reads.
const EnvPrefix = "TANKSIM_"

// LoadEnv applies a .env file and the process environment to cfg. A missing
// .env file is ignored. Process variables win over the file.
func LoadEnv(cfg *Config, dotenvPath string) error {
	env := map[string]string{}
	if dotenvPath != "" {
		fileEnv, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return ApplyEnv(cfg, env)
}

// ApplyEnv applies TANKSIM_* entries of env to cfg. Unknown keys are ignored.
func ApplyEnv(cfg *Config, env map[string]string) error {
	// Preset first so the remaining keys land on the new preset.
	if v, ok := env[EnvPrefix+"PRESET"]; ok {
		if err := cfg.SetPreset(v); err != nil {
			return envError("PRESET", err)
		}
	}

	for key, raw := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok || name == "PRESET" {
			continue
		}
		if err := applyOne(cfg, name, raw); err != nil {
			return envError(name, err)
		}
	}
	return nil
}

func applyOne(cfg *Config, name, raw string) error {
	var err error
	switch name {
	case "HOST":
		cfg.Host = raw
	case "PORT":
		cfg.Port, err = strconv.Atoi(raw)
	case "UNIT":
		var v uint64
		v, err = strconv.ParseUint(raw, 10, 8)
		cfg.UnitID = uint8(v)
	case "BASE":
		var v uint64
		v, err = strconv.ParseUint(raw, 10, 16)
		cfg.Base = uint16(v)
	case "CADENCE":
		cfg.Cadence, err = time.ParseDuration(raw)
	case "SEED":
		cfg.Seed, err = strconv.ParseUint(raw, 10, 64)
	case "LOG_LEVEL":
		cfg.LogLevel = strings.ToLower(raw)
	case "CYCLE_LOG":
		cfg.CycleLog = raw
	case "HTTP":
		cfg.HTTP = raw
	case "MDNS":
		cfg.MDNS, err = strconv.ParseBool(raw)
	case "NOISE":
		cfg.Initial.Noise, err = strconv.ParseBool(raw)
	case "FAULT_MASK":
		var v uint64
		v, err = strconv.ParseUint(raw, 0, 16)
		cfg.Initial.FaultMask = uint16(v)
	}
	return err
}

func envError(name string, err error) error {
	return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
}
