package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file over the defaults. The file's preset, if any, is
// applied first so that keys under params override that preset. They keep
// overriding it when the environment or a flag picks another preset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var head struct {
		Preset string    `yaml:"preset"`
		Params yaml.Node `yaml:"params"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if head.Params.Kind == yaml.MappingNode {
		cfg.paramsYAML = &head.Params
	}
	if head.Preset != "" {
		if err := cfg.SetPreset(head.Preset); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
