// Package sample defines the raw observation bundle handed to the analysis
// pipeline by the extraction layer. Samples are ephemeral: they are consumed
// once per run and discarded after normalization.
package sample

import (
	"os"

	"gopkg.in/yaml.v3"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

// ColorSample is a raw color observation in any common textual form (hex,
// functional rgb/hsl) with an optional usage hint.
type ColorSample struct {
	Value string `yaml:"value"`
	// Hint describes where the color was observed, e.g. "text",
	// "background", "border", "accent". Optional.
	Hint string `yaml:"hint,omitempty"`
}

// FontSample is a raw typography observation.
type FontSample struct {
	Size   float64 `yaml:"size"`
	Family string  `yaml:"family,omitempty"`
	Weight int     `yaml:"weight,omitempty"`
}

// Pattern is an externally detected UI pattern with a confidence level.
type Pattern struct {
	Type       string         `yaml:"type"`
	Confidence float64        `yaml:"confidence"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Bundle is the complete raw observation set for one site analysis.
type Bundle struct {
	Colors  []ColorSample `yaml:"colors,omitempty"`
	Fonts   []FontSample  `yaml:"fonts,omitempty"`
	Spacing []float64     `yaml:"spacing,omitempty"`
	// Widths are observed full-bleed container widths used for breakpoint
	// inference.
	Widths   []float64 `yaml:"widths,omitempty"`
	Patterns []Pattern `yaml:"patterns,omitempty"`
}

// LoadBundle reads a YAML bundle from disk.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reweaveerrors.NewParseError(path, 0, err)
	}

	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, reweaveerrors.NewParseError(path, 0, err)
	}

	return &bundle, nil
}
