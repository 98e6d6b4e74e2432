package palette

import (
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
)

// Group is a cluster of near-duplicate color samples. Its representative is
// the running centroid in HSL space.
type Group struct {
	Count int
	Hints map[string]int

	// Circular hue accumulator plus linear saturation/lightness sums.
	sumSin, sumCos   float64
	sumSat, sumLight float64
}

// Centroid returns the group's representative in HSL.
func (g *Group) Centroid() (h, s, l float64) {
	if g.Count == 0 {
		return 0, 0, 0
	}
	h = math.Atan2(g.sumSin, g.sumCos) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h, g.sumSat / float64(g.Count), g.sumLight / float64(g.Count)
}

// Color returns the representative as a color value.
func (g *Group) Color() colorful.Color {
	h, s, l := g.Centroid()
	return colorful.Hsl(h, s, l).Clamped()
}

// Hex returns the representative as an uppercase hex string.
func (g *Group) Hex() string {
	return strings.ToUpper(g.Color().Hex())
}

func (g *Group) absorb(h, s, l float64, hint string) {
	rad := h * math.Pi / 180
	g.sumSin += math.Sin(rad)
	g.sumCos += math.Cos(rad)
	g.sumSat += s
	g.sumLight += l
	g.Count++
	if hint != "" {
		if g.Hints == nil {
			g.Hints = make(map[string]int)
		}
		g.Hints[hint]++
	}
}

func (g *Group) merge(other *Group) {
	g.sumSin += other.sumSin
	g.sumCos += other.sumCos
	g.sumSat += other.sumSat
	g.sumLight += other.sumLight
	g.Count += other.Count
	for hint, n := range other.Hints {
		if g.Hints == nil {
			g.Hints = make(map[string]int)
		}
		g.Hints[hint] += n
	}
}

// hueDistance is the shortest angular distance between two hues in degrees.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// distance is the perceptual HSL distance used for cluster membership. Hue
// carries half the weight since it dominates perceived difference; the
// remaining half is split between saturation and lightness. The result is
// comparable against the per-channel tolerance.
func distance(h1, s1, l1, h2, s2, l2 float64) float64 {
	return 0.5*hueDistance(h1, h2)/360 + 0.25*math.Abs(s1-s2) + 0.25*math.Abs(l1-l2)
}

type parsedSample struct {
	h, s, l float64
	hex     string
	hint    string
}

// Cluster groups color samples whose pairwise HSL distance is within the
// configured tolerance. The pass is greedy over samples pre-sorted by a
// stable composite key (hue, lightness, saturation, hex), which makes the
// result independent of input ordering for a given sample multiset. A
// consolidation pass afterwards merges any groups whose centroids drifted
// within tolerance of each other, so final representatives are pairwise
// distinct.
func Cluster(samples []sample.ColorSample, cfg config.ClusterSettings) []*Group {
	parsed := make([]parsedSample, 0, len(samples))
	for _, cs := range samples {
		c, ok := ParseColor(cs.Value)
		if !ok {
			continue
		}
		h, s, l := c.Hsl()
		parsed = append(parsed, parsedSample{h: h, s: s, l: l, hex: c.Hex(), hint: cs.Hint})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		a, b := parsed[i], parsed[j]
		if a.h != b.h {
			return a.h < b.h
		}
		if a.l != b.l {
			return a.l < b.l
		}
		if a.s != b.s {
			return a.s < b.s
		}
		return a.hex < b.hex
	})

	var groups []*Group
	for _, p := range parsed {
		var best *Group
		bestDist := math.Inf(1)
		for _, g := range groups {
			h, s, l := g.Centroid()
			d := distance(p.h, p.s, p.l, h, s, l)
			if d <= cfg.Tolerance && d < bestDist {
				best = g
				bestDist = d
			}
		}
		if best != nil {
			best.absorb(p.h, p.s, p.l, p.hint)
			continue
		}
		g := &Group{}
		g.absorb(p.h, p.s, p.l, p.hint)
		groups = append(groups, g)
	}

	groups = consolidate(groups, cfg.Tolerance)

	for len(groups) > cfg.MaxGroups {
		groups = mergeClosestAdjacent(groups)
	}

	sortByHue(groups)
	return groups
}

// consolidate repeatedly merges group pairs whose centroids fall within
// tolerance until all representatives are pairwise distinct.
func consolidate(groups []*Group, tolerance float64) []*Group {
	for {
		merged := false
		for i := 0; i < len(groups) && !merged; i++ {
			for j := i + 1; j < len(groups); j++ {
				hi, si, li := groups[i].Centroid()
				hj, sj, lj := groups[j].Centroid()
				if distance(hi, si, li, hj, sj, lj) <= tolerance {
					groups[i].merge(groups[j])
					groups = append(groups[:j], groups[j+1:]...)
					merged = true
					break
				}
			}
		}
		if !merged {
			return groups
		}
	}
}

// mergeClosestAdjacent merges the least-distinct adjacent pair in hue order.
func mergeClosestAdjacent(groups []*Group) []*Group {
	sortByHue(groups)

	bestIdx := 0
	bestDist := math.Inf(1)
	for i := 0; i < len(groups)-1; i++ {
		hi, si, li := groups[i].Centroid()
		hj, sj, lj := groups[i+1].Centroid()
		if d := distance(hi, si, li, hj, sj, lj); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	groups[bestIdx].merge(groups[bestIdx+1])
	return append(groups[:bestIdx+1], groups[bestIdx+2:]...)
}

func sortByHue(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		hi, si, li := groups[i].Centroid()
		hj, sj, lj := groups[j].Centroid()
		if hi != hj {
			return hi < hj
		}
		if li != lj {
			return li < lj
		}
		return si < sj
	})
}
