// Package score combines the normalized token system's signals into one
// weighted, explainable quality score with ranked recommendations.
package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/internal/wcag"
)

// Category names one scored quality dimension.
type Category string

const (
	ColorConsistency        Category = "colorConsistency"
	TypographyHierarchy     Category = "typographyHierarchy"
	SpacingRegularity       Category = "spacingRegularity"
	AccessibilityCompliance Category = "accessibilityCompliance"
	PatternConsistency      Category = "patternConsistency"
	PerformanceOptimization Category = "performanceOptimization"
	Modernity               Category = "modernityScore"
)

// Categories is the fixed evaluation order; recommendation ties resolve by
// this order so output is reproducible.
var Categories = []Category{
	ColorConsistency,
	TypographyHierarchy,
	SpacingRegularity,
	AccessibilityCompliance,
	PatternConsistency,
	PerformanceOptimization,
	Modernity,
}

// goodThreshold is the sub-score level below which a recommendation is
// emitted.
const goodThreshold = 0.8

// patternInclusionThreshold filters low-confidence pattern detections out
// of the patternConsistency mean.
const patternInclusionThreshold = 0.7

// weightTolerance bounds acceptable floating-point drift in the weight sum.
const weightTolerance = 1e-9

// recommendations are the fixed per-category remediation strings.
var recommendations = map[Category]string{
	ColorConsistency:        "Consolidate near-duplicate colors into named tokens and reuse semantic aliases instead of repeating raw values",
	TypographyHierarchy:     "Align font sizes to a single modular ratio and keep body text at or above the minimum size",
	SpacingRegularity:       "Snap margins and paddings to multiples of the base spacing unit",
	AccessibilityCompliance: "Raise contrast between text and background tokens to meet the WCAG thresholds",
	PatternConsistency:      "Apply recognized UI patterns consistently so components read as one system",
	PerformanceOptimization: "Reduce the token count and font stacks to keep generated stylesheets lean",
	Modernity:               "Adopt motion tokens and fluid breakpoints to modernize the token set",
}

// Inputs are the signals the scorer consumes. All fields are produced by
// earlier pipeline stages; the scorer itself reads nothing else, which is
// what makes its output reproducible.
type Inputs struct {
	// ColorGroups is the number of distinct color groups after clustering.
	ColorGroups int
	// NamingWarnings counts unresolved semantic-naming duplicates.
	NamingWarnings int

	// TypeDeviation is the normalized RMS deviation from the selected
	// modular ratio.
	TypeDeviation float64
	// FloorAdjustments counts type sizes raised to meet accessibility
	// floors.
	FloorAdjustments int

	// SpacingRegularity is the fraction of spacing samples on or near the
	// final scale.
	SpacingRegularity float64

	// Contrast holds the required-pair contrast results.
	Contrast []wcag.PairResult

	Patterns []sample.Pattern

	TokenCount       int
	MotionTokens     bool
	RadiusTokens     bool
	ShadowTokens     bool
	FluidBreakpoints bool
}

// Score is the complete quality assessment. It is recomputed from scratch
// on every call and never mutated incrementally.
type Score struct {
	Overall         float64
	Breakdown       map[Category]float64
	Recommendations []string
}

// Compute derives the quality score from the collected inputs. Weights not
// summing to 1.0 and sub-scores escaping [0,1] are defects in the caller or
// this package, so both panic.
func Compute(in Inputs, cfg config.Config) *Score {
	if math.Abs(cfg.Weights.Sum()-1.0) > weightTolerance {
		panic(fmt.Sprintf("score: weights sum to %.12f, want 1.0", cfg.Weights.Sum()))
	}

	breakdown := map[Category]float64{
		ColorConsistency:        colorConsistency(in, cfg),
		TypographyHierarchy:     typographyHierarchy(in),
		SpacingRegularity:       clamp01(in.SpacingRegularity),
		AccessibilityCompliance: accessibilityCompliance(in),
		PatternConsistency:      patternConsistency(in),
		PerformanceOptimization: performanceOptimization(in),
		Modernity:               modernity(in),
	}

	weights := map[Category]float64{
		ColorConsistency:        cfg.Weights.ColorConsistency,
		TypographyHierarchy:     cfg.Weights.TypographyHierarchy,
		SpacingRegularity:       cfg.Weights.SpacingRegularity,
		AccessibilityCompliance: cfg.Weights.AccessibilityCompliance,
		PatternConsistency:      cfg.Weights.PatternConsistency,
		PerformanceOptimization: cfg.Weights.PerformanceOptimization,
		Modernity:               cfg.Weights.Modernity,
	}

	var overall float64
	for _, cat := range Categories {
		s := breakdown[cat]
		if s < 0 || s > 1 {
			panic(fmt.Sprintf("score: %s sub-score %v outside [0,1]", cat, s))
		}
		overall += s * weights[cat]
	}

	return &Score{
		Overall:         overall,
		Breakdown:       breakdown,
		Recommendations: recommend(breakdown),
	}
}

// colorConsistency rewards small, well-used palettes: the fewer distinct
// groups relative to the cap, the higher the score, minus a penalty per
// unresolved naming duplicate.
func colorConsistency(in Inputs, cfg config.Config) float64 {
	s := 1.0
	if in.ColorGroups > 1 && cfg.Cluster.MaxGroups > 1 {
		s = 1.0 - 0.5*float64(in.ColorGroups-1)/float64(cfg.Cluster.MaxGroups-1)
	}
	s -= 0.05 * float64(in.NamingWarnings)
	return clamp01(s)
}

func typographyHierarchy(in Inputs) float64 {
	s := 1.0 - math.Min(1, in.TypeDeviation)
	s -= 0.05 * float64(in.FloorAdjustments)
	return clamp01(s)
}

// accessibilityCompliance is the fraction of required contrast pairs that
// met their threshold. No measurable pairs means nothing failed.
func accessibilityCompliance(in Inputs) float64 {
	if len(in.Contrast) == 0 {
		return 1
	}
	passed := 0
	for _, r := range in.Contrast {
		if r.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(in.Contrast))
}

// patternConsistency is the mean confidence of detections above the
// inclusion threshold. No usable detections yields a neutral 0.5.
func patternConsistency(in Inputs) float64 {
	var sum float64
	n := 0
	for _, p := range in.Patterns {
		if p.Confidence >= patternInclusionThreshold {
			sum += p.Confidence
			n++
		}
	}
	if n == 0 {
		return 0.5
	}
	return clamp01(sum / float64(n))
}

// performanceOptimization is a fixed heuristic over the emitted token
// count: lean token sets generate lean stylesheets.
func performanceOptimization(in Inputs) float64 {
	switch {
	case in.TokenCount <= 64:
		return 1.0
	case in.TokenCount <= 96:
		return 0.9
	case in.TokenCount <= 128:
		return 0.75
	default:
		return 0.6
	}
}

// modernity checks for modern primitives in the token set.
func modernity(in Inputs) float64 {
	s := 0.2
	if in.MotionTokens {
		s += 0.2
	}
	if in.RadiusTokens {
		s += 0.2
	}
	if in.ShadowTokens {
		s += 0.2
	}
	if in.FluidBreakpoints {
		s += 0.2
	}
	return clamp01(s)
}

// recommend emits the fixed remediation string for every category below the
// good threshold, worst score first. Equal scores keep the fixed category
// order.
func recommend(breakdown map[Category]float64) []string {
	type entry struct {
		order int
		cat   Category
		score float64
	}

	var entries []entry
	for i, cat := range Categories {
		if breakdown[cat] < goodThreshold {
			entries = append(entries, entry{order: i, cat: cat, score: breakdown[cat]})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score < entries[j].score
		}
		return entries[i].order < entries[j].order
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = recommendations[e.cat]
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
