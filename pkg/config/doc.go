// Package config holds the simulator configuration and loads it from its
// sources.
//
// Sources apply lowest to highest precedence:
//
//  1. Built-in defaults (Default).
//  2. The parameter preset named by Preset.
//  3. A YAML file (Load). Only keys present in the file override.
//  4. A .env file and TANKSIM_* environment variables (LoadEnv).
//  5. Command-line flags, applied by the binary.
//
// Validate checks the merged result with struct tags and the register
// layout rules.
package config
