// Package spacing infers the base spacing unit and scale implied by raw
// margin/padding observations, plus canonical container breakpoints.
package spacing

import (
	"math"
	"sort"

	"github.com/reweave/reweave/internal/config"
)

// baseCandidates are the grid units tested for best fit.
var baseCandidates = []int{4, 8}

// Breakpoint is one canonical container width.
type Breakpoint struct {
	Name  string
	Width float64
	// Observed marks breakpoints backed by an actual width observation.
	Observed bool
}

// canonicalBreakpoints is the fixed breakpoint set observations snap to.
var canonicalBreakpoints = []Breakpoint{
	{Name: "mobile", Width: 375},
	{Name: "tablet", Width: 768},
	{Name: "desktop", Width: 1280},
	{Name: "wide", Width: 1536},
}

// Scale is the inferred spacing system.
type Scale struct {
	// BaseUnit is the inferred grid unit; every scale value is an exact
	// integer multiple of it.
	BaseUnit int
	Values   []float64
	// Regularity is the fraction of raw samples that sat on or near the
	// final scale, used by the quality scorer.
	Regularity  float64
	Breakpoints []Breakpoint
}

// Detect infers the spacing scale. Non-positive samples are skipped; empty
// input produces a default ladder on the preferred base unit.
func Detect(samples []float64, widths []float64, cfg config.SpacingSettings) *Scale {
	cleaned := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s > 0 {
			cleaned = append(cleaned, s)
		}
	}

	base := bestBaseUnit(cleaned)

	counts := make(map[float64]int)
	for _, s := range cleaned {
		v := math.Round(s/float64(base)) * float64(base)
		if v > 0 {
			counts[v]++
		}
	}

	values := make([]float64, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Float64s(values)

	if len(values) == 0 {
		values = defaultLadder(base)
	}

	for len(values) > cfg.MaxScaleEntries {
		values = mergeClosest(values, counts)
	}

	return &Scale{
		BaseUnit:    base,
		Values:      values,
		Regularity:  regularity(cleaned, values),
		Breakpoints: snapBreakpoints(widths),
	}
}

// bestBaseUnit picks the candidate minimizing total rounding error across
// samples, preferring the coarser grid on ties.
func bestBaseUnit(samples []float64) int {
	best := baseCandidates[len(baseCandidates)-1]
	bestErr := math.Inf(1)
	for i := len(baseCandidates) - 1; i >= 0; i-- {
		b := baseCandidates[i]
		var total float64
		for _, s := range samples {
			total += math.Abs(s - math.Round(s/float64(b))*float64(b))
		}
		if total < bestErr {
			bestErr = total
			best = b
		}
	}
	return best
}

func defaultLadder(base int) []float64 {
	multiples := []int{1, 2, 3, 4, 6, 8, 12, 16}
	values := make([]float64, len(multiples))
	for i, m := range multiples {
		values[i] = float64(base * m)
	}
	return values
}

// mergeClosest removes one entry of the closest adjacent pair, keeping the
// better-used value.
func mergeClosest(values []float64, counts map[float64]int) []float64 {
	bestIdx := 0
	bestGap := math.Inf(1)
	for i := 0; i < len(values)-1; i++ {
		if gap := values[i+1] - values[i]; gap < bestGap {
			bestGap = gap
			bestIdx = i
		}
	}

	drop := bestIdx
	if counts[values[bestIdx]] >= counts[values[bestIdx+1]] {
		drop = bestIdx + 1
	}
	return append(values[:drop], values[drop+1:]...)
}

// regularity grants full credit for samples landing exactly on the final
// scale and partial credit for near misses.
func regularity(samples, values []float64) float64 {
	if len(samples) == 0 {
		return 1
	}

	var credit float64
	for _, s := range samples {
		d := math.Inf(1)
		for _, v := range values {
			if dist := math.Abs(s - v); dist < d {
				d = dist
			}
		}
		switch {
		case d == 0:
			credit += 1
		case d <= 2:
			credit += 0.5
		}
	}
	return credit / float64(len(samples))
}

// snapBreakpoints maps the largest observed full-bleed widths onto the
// canonical breakpoint set by nearest match. Unmatched canonical entries
// keep their default widths.
func snapBreakpoints(widths []float64) []Breakpoint {
	out := make([]Breakpoint, len(canonicalBreakpoints))
	copy(out, canonicalBreakpoints)

	for _, w := range widths {
		if w < 320 {
			continue
		}
		bestIdx := 0
		bestDist := math.Inf(1)
		for i, bp := range canonicalBreakpoints {
			if d := math.Abs(w - bp.Width); d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		out[bestIdx].Observed = true
	}
	return out
}
