package config

// Config carries every tunable the analysis stages consume. It is resolved
// once, validated, and then threaded by value into each stage so alternate
// presets can run side by side without interference.
type Config struct {
	Preset     string           `yaml:"preset,omitempty" validate:"omitempty,oneof=default strict"`
	Cluster    ClusterSettings  `yaml:"cluster,omitempty"`
	Contrast   ContrastSettings `yaml:"contrast,omitempty"`
	Typography TypeSettings     `yaml:"typography,omitempty"`
	Spacing    SpacingSettings  `yaml:"spacing,omitempty"`
	Weights    Weights          `yaml:"weights,omitempty"`
}

// ClusterSettings controls color clustering.
type ClusterSettings struct {
	// Tolerance is the maximum weighted HSL distance at which two samples
	// merge into one group.
	Tolerance float64 `yaml:"tolerance" validate:"gt=0,lte=0.25"`
	// MaxGroups caps the number of color groups after clustering.
	MaxGroups int `yaml:"max_groups" validate:"min=4,max=32"`
}

// ContrastSettings selects WCAG conformance thresholds.
type ContrastSettings struct {
	// Level is the conformance target; it determines the default thresholds.
	Level string `yaml:"level" validate:"oneof=AA AAA"`
	// NormalText is the minimum ratio for body-size text.
	NormalText float64 `yaml:"normal_text" validate:"gte=1,lte=21"`
	// LargeText is the minimum ratio for large text and UI components.
	LargeText float64 `yaml:"large_text" validate:"gte=1,lte=21"`
}

// TypeSettings controls type-scale inference and accessibility floors.
type TypeSettings struct {
	MinBodySize   float64 `yaml:"min_body_size" validate:"gte=12,lte=24"`
	MinSmallSize  float64 `yaml:"min_small_size" validate:"gte=10,lte=16"`
	MinLineHeight float64 `yaml:"min_line_height" validate:"gte=1,lte=2"`
	MaxLineHeight float64 `yaml:"max_line_height" validate:"gte=1,lte=2"`
	// DefaultRatio is used when too few distinct sizes are observed to infer
	// a ratio. Must be one of the candidate ratios.
	DefaultRatio float64 `yaml:"default_ratio" validate:"ratio_candidate"`
	MaxFontStacks int    `yaml:"max_font_stacks" validate:"min=1,max=6"`
}

// SpacingSettings controls spacing scale inference.
type SpacingSettings struct {
	MaxScaleEntries int `yaml:"max_scale_entries" validate:"min=4,max=32"`
}

// Weights are the quality scorer category weights. They must sum to 1.0;
// the scorer treats any other total as a defect and panics.
type Weights struct {
	ColorConsistency        float64 `yaml:"color_consistency" validate:"gte=0,lte=1"`
	TypographyHierarchy     float64 `yaml:"typography_hierarchy" validate:"gte=0,lte=1"`
	SpacingRegularity       float64 `yaml:"spacing_regularity" validate:"gte=0,lte=1"`
	AccessibilityCompliance float64 `yaml:"accessibility_compliance" validate:"gte=0,lte=1"`
	PatternConsistency      float64 `yaml:"pattern_consistency" validate:"gte=0,lte=1"`
	PerformanceOptimization float64 `yaml:"performance_optimization" validate:"gte=0,lte=1"`
	Modernity               float64 `yaml:"modernity" validate:"gte=0,lte=1"`
}

// Sum returns the total of all category weights.
func (w Weights) Sum() float64 {
	return w.ColorConsistency +
		w.TypographyHierarchy +
		w.SpacingRegularity +
		w.AccessibilityCompliance +
		w.PatternConsistency +
		w.PerformanceOptimization +
		w.Modernity
}
