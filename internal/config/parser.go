package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a configuration file from disk, applies it over the named
// preset, validates the result, and returns it. An empty path returns the
// default preset.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, reweaveerrors.NewParseError(path, 0, err)
	}

	// Overrides are applied on top of the preset so partial files work.
	var probe struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, reweaveerrors.NewParseError(path, extractLine(err), err)
	}

	cfg, ok := Preset(probe.Preset)
	if !ok {
		return Config{}, reweaveerrors.NewValidationError("preset", fmt.Sprintf("unknown preset %q", probe.Preset), nil)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, reweaveerrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
