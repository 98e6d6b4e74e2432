package config

// CandidateRatios is the fixed modular ratio candidate set shared by the
// typography analyzer and configuration validation.
var CandidateRatios = []float64{1.125, 1.2, 1.25, 1.333, 1.414}

// Default returns the standard AA preset.
func Default() Config {
	return Config{
		Preset: "default",
		Cluster: ClusterSettings{
			Tolerance: 0.05,
			MaxGroups: 12,
		},
		Contrast: ContrastSettings{
			Level:      "AA",
			NormalText: 4.5,
			LargeText:  3.0,
		},
		Typography: TypeSettings{
			MinBodySize:   14,
			MinSmallSize:  12,
			MinLineHeight: 1.2,
			MaxLineHeight: 1.6,
			DefaultRatio:  1.25,
			MaxFontStacks: 3,
		},
		Spacing: SpacingSettings{
			MaxScaleEntries: 16,
		},
		Weights: Weights{
			ColorConsistency:        0.15,
			TypographyHierarchy:     0.15,
			SpacingRegularity:       0.15,
			AccessibilityCompliance: 0.25,
			PatternConsistency:      0.10,
			PerformanceOptimization: 0.10,
			Modernity:               0.10,
		},
	}
}

// Strict returns the AAA preset: same weights, tighter contrast thresholds.
func Strict() Config {
	cfg := Default()
	cfg.Preset = "strict"
	cfg.Contrast = ContrastSettings{
		Level:      "AAA",
		NormalText: 7.0,
		LargeText:  4.5,
	}
	return cfg
}

// Preset resolves a preset by name.
func Preset(name string) (Config, bool) {
	switch name {
	case "", "default":
		return Default(), true
	case "strict":
		return Strict(), true
	default:
		return Config{}, false
	}
}
