// Package typeset infers a modular type scale, accessible line heights, and
// a capped font-stack set from raw typography observations.
package typeset

import (
	"math"
	"sort"
	"strings"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
)

// Level names one slot of the type hierarchy.
type Level string

const (
	LevelH1    Level = "h1"
	LevelH2    Level = "h2"
	LevelH3    Level = "h3"
	LevelH4    Level = "h4"
	LevelH5    Level = "h5"
	LevelH6    Level = "h6"
	LevelBody  Level = "body"
	LevelSmall Level = "small"
)

// Levels is the hierarchy in descending size order.
var Levels = []Level{LevelH1, LevelH2, LevelH3, LevelH4, LevelH5, LevelH6, LevelBody, LevelSmall}

// Style is the resolved triple for one hierarchy level.
type Style struct {
	Size       float64
	LineHeight float64
	Weight     int
}

// Scale is the inferred modular type scale.
type Scale struct {
	Ratio  float64
	Levels map[Level]Style
	// Stacks are the deduplicated font-family stacks, most used first.
	Stacks []string

	// Deviation is the normalized RMS deviation of observed size quotients
	// from the selected ratio; the quality scorer consumes it.
	Deviation float64
	// FloorAdjustments counts sizes that had to be raised to meet the
	// accessibility floors.
	FloorAdjustments int
	// DistinctSizes is the number of distinct observed sizes.
	DistinctSizes int
}

const (
	defaultBodyWeight    = 400
	defaultHeadingWeight = 700

	// defaultFontStack backs the scale when no families were observed, so
	// the result always carries at least one stack.
	defaultFontStack = "system-ui, sans-serif"
)

// Analyze infers the type scale from raw samples. Fewer than two distinct
// observed sizes fall back to the default ratio; the result always carries
// all eight hierarchy levels.
func Analyze(samples []sample.FontSample, cfg config.TypeSettings) *Scale {
	sizes := distinctSizes(samples)

	scale := &Scale{
		Levels:        make(map[Level]Style, len(Levels)),
		DistinctSizes: len(sizes),
	}

	if len(sizes) < 2 {
		scale.Ratio = cfg.DefaultRatio
	} else {
		scale.Ratio, scale.Deviation = bestRatio(sizes)
	}

	body := pickBodySize(sizes, cfg)
	if body < cfg.MinBodySize {
		body = cfg.MinBodySize
		scale.FloorAdjustments++
	}

	small := math.Round(body / scale.Ratio)
	if small < cfg.MinSmallSize {
		small = cfg.MinSmallSize
		scale.FloorAdjustments++
	}

	bodyWeight, headingWeight := pickWeights(samples)

	scale.Levels[LevelBody] = Style{Size: body, LineHeight: lineHeightFor(body, cfg), Weight: bodyWeight}
	scale.Levels[LevelSmall] = Style{Size: small, LineHeight: lineHeightFor(small, cfg), Weight: bodyWeight}

	// Headings climb the ratio ladder from the body size: h6 is one step
	// up, h1 six steps.
	for i, level := range []Level{LevelH6, LevelH5, LevelH4, LevelH3, LevelH2, LevelH1} {
		size := math.Round(body * math.Pow(scale.Ratio, float64(i+1)))
		scale.Levels[level] = Style{Size: size, LineHeight: lineHeightFor(size, cfg), Weight: headingWeight}
	}

	scale.Stacks = fontStacks(samples, cfg.MaxFontStacks)
	if len(scale.Stacks) == 0 {
		scale.Stacks = []string{defaultFontStack}
	}
	return scale
}

func distinctSizes(samples []sample.FontSample) []float64 {
	seen := make(map[float64]struct{})
	var sizes []float64
	for _, s := range samples {
		if s.Size <= 0 {
			continue
		}
		if _, ok := seen[s.Size]; ok {
			continue
		}
		seen[s.Size] = struct{}{}
		sizes = append(sizes, s.Size)
	}
	sort.Float64s(sizes)
	return sizes
}

// bestRatio fits each candidate ratio against the quotients of adjacent
// observed sizes and picks the one with minimum RMS deviation.
func bestRatio(sizes []float64) (ratio, deviation float64) {
	quotients := make([]float64, 0, len(sizes)-1)
	for i := 1; i < len(sizes); i++ {
		quotients = append(quotients, sizes[i]/sizes[i-1])
	}

	best := config.CandidateRatios[0]
	bestDev := math.Inf(1)
	for _, candidate := range config.CandidateRatios {
		var sum float64
		for _, q := range quotients {
			d := q - candidate
			sum += d * d
		}
		dev := math.Sqrt(sum / float64(len(quotients)))
		if dev < bestDev {
			bestDev = dev
			best = candidate
		}
	}
	return best, bestDev
}

// pickBodySize selects the smallest observed size at or above the body
// floor, so headings keep their place at the top of the hierarchy.
func pickBodySize(sizes []float64, cfg config.TypeSettings) float64 {
	for _, s := range sizes {
		if s >= cfg.MinBodySize {
			return s
		}
	}
	if len(sizes) > 0 {
		// Everything observed is below the floor; the caller raises it.
		return sizes[len(sizes)-1]
	}
	return 16
}

// lineHeightFor computes the accessible line height: generous for body
// sizes, tightening as headings grow, clamped to the configured range.
func lineHeightFor(size float64, cfg config.TypeSettings) float64 {
	lh := cfg.MaxLineHeight
	if size >= 18 {
		lh = cfg.MaxLineHeight - 0.01*(size-18)
	}
	if lh < cfg.MinLineHeight {
		lh = cfg.MinLineHeight
	}
	if lh > cfg.MaxLineHeight {
		lh = cfg.MaxLineHeight
	}
	return math.Round(lh*100) / 100
}

func pickWeights(samples []sample.FontSample) (body, heading int) {
	bodyCounts := make(map[int]int)
	headingCounts := make(map[int]int)
	for _, s := range samples {
		if s.Weight < 100 || s.Weight > 900 {
			continue
		}
		if s.Weight >= 600 {
			headingCounts[s.Weight]++
		} else {
			bodyCounts[s.Weight]++
		}
	}
	return mostCommon(bodyCounts, defaultBodyWeight), mostCommon(headingCounts, defaultHeadingWeight)
}

func mostCommon(counts map[int]int, fallback int) int {
	best := fallback
	bestCount := 0
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			bestCount = counts[k]
			best = k
		}
	}
	return best
}

// fontStacks deduplicates observed family stacks by their normalized form
// and returns the most used, capped at max.
func fontStacks(samples []sample.FontSample, max int) []string {
	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string

	for _, s := range samples {
		family := strings.TrimSpace(s.Family)
		if family == "" {
			continue
		}
		key := normalizeStack(family)
		if _, seen := counts[key]; !seen {
			display[key] = family
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	if len(order) > max {
		order = order[:max]
	}

	stacks := make([]string, len(order))
	for i, key := range order {
		stacks[i] = display[key]
	}
	return stacks
}

func normalizeStack(family string) string {
	parts := strings.Split(strings.ToLower(family), ",")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `'"`)
	}
	return strings.Join(parts, ",")
}
