package palette

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/internal/token"
)

// Role names a purpose-based color slot.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleSuccess   Role = "success"
	RoleWarning   Role = "warning"
	RoleError     Role = "error"
	RoleInfo      Role = "info"
)

// AlertRoles are the four semantic alert roles that must always exist in a
// finished system, synthesized from defaults when unobserved.
var AlertRoles = []Role{RoleSuccess, RoleWarning, RoleError, RoleInfo}

// defaultRoleHex are the synthesis fallbacks per alert role.
var defaultRoleHex = map[Role]string{
	RoleSuccess: "#10B981",
	RoleWarning: "#F59E0B",
	RoleError:   "#EF4444",
	RoleInfo:    "#3B82F6",
}

// defaultPrimaryHex seeds an all-default system when no chromatic samples
// were observed.
const defaultPrimaryHex = "#3B82F6"

// neutralChromaCeiling separates neutral-looking groups from chromatic
// ones. Chroma rather than raw saturation, since HSL saturation is unstable
// near white and black.
const neutralChromaCeiling = 0.12

// NeutralSteps is the 11-step neutral ramp, ordered light to dark.
var NeutralSteps = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// neutralLightness is the target lightness per ramp step.
var neutralLightness = []float64{0.97, 0.94, 0.86, 0.74, 0.60, 0.47, 0.38, 0.30, 0.22, 0.15, 0.09}

// hint weights applied on top of sample frequency when ranking candidates
// for the primary slot.
var primaryHintWeights = map[string]int{
	"primary": 4,
	"brand":   4,
	"accent":  3,
	"button":  3,
	"link":    2,
}

// Entry is one resolved color slot.
type Entry struct {
	Hex string
	// Synthesized marks entries backfilled from defaults rather than
	// observed samples.
	Synthesized bool
}

// System is the canonical color system produced by normalization.
type System struct {
	Primary   Entry
	Secondary Entry
	Semantic  map[Role]Entry
	Neutral   map[int]Entry

	// Groups retains the final clusters for the quality scorer.
	Groups []*Group
	// SampleCount is the number of parseable input samples.
	SampleCount int
}

// Normalize converts raw color samples into a canonical color system. It is
// total: malformed samples are skipped and an empty input yields an
// all-default palette.
func Normalize(samples []sample.ColorSample, cfg config.ClusterSettings) *System {
	groups := Cluster(samples, cfg)

	sys := &System{
		Semantic: make(map[Role]Entry, len(AlertRoles)),
		Neutral:  make(map[int]Entry, len(NeutralSteps)),
		Groups:   groups,
	}
	for _, g := range groups {
		sys.SampleCount += g.Count
	}

	neutrals, chromatics := partition(groups)
	assignBrand(sys, chromatics)
	assignSemantics(sys, chromatics)
	buildNeutralRamp(sys, neutrals)

	return sys
}

func partition(groups []*Group) (neutrals, chromatics []*Group) {
	for _, g := range groups {
		_, s, l := g.Centroid()
		if s*(1-math.Abs(2*l-1)) <= neutralChromaCeiling {
			neutrals = append(neutrals, g)
		} else {
			chromatics = append(chromatics, g)
		}
	}
	return neutrals, chromatics
}

func groupScore(g *Group) int {
	score := g.Count
	for hint, weight := range primaryHintWeights {
		score += weight * g.Hints[hint]
	}
	return score
}

func assignBrand(sys *System, chromatics []*Group) {
	if len(chromatics) == 0 {
		sys.Primary = Entry{Hex: defaultPrimaryHex, Synthesized: true}
		sys.Secondary = Entry{Hex: rotateHue(defaultPrimaryHex, 30), Synthesized: true}
		return
	}

	ranked := make([]*Group, len(chromatics))
	copy(ranked, chromatics)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := groupScore(ranked[i]), groupScore(ranked[j])
		if si != sj {
			return si > sj
		}
		hi, _, _ := ranked[i].Centroid()
		hj, _, _ := ranked[j].Centroid()
		return hi < hj
	})

	sys.Primary = Entry{Hex: ranked[0].Hex()}

	primaryHue, _, _ := ranked[0].Centroid()
	for _, g := range ranked[1:] {
		h, _, _ := g.Centroid()
		if hueDistance(h, primaryHue) >= 30 {
			sys.Secondary = Entry{Hex: g.Hex()}
			return
		}
	}
	// No sufficiently distinct second hue observed; rotate the primary.
	sys.Secondary = Entry{Hex: rotateHue(sys.Primary.Hex, 30), Synthesized: true}
}

// semantic hue windows, after jmylchreest-style universal color psychology:
// red for error, orange for warning, green for success, blue for info.
func roleForHue(h float64) (Role, bool) {
	switch {
	case h < 30 || h >= 330:
		return RoleError, true
	case h >= 30 && h < 75:
		return RoleWarning, true
	case h >= 90 && h < 165:
		return RoleSuccess, true
	case h >= 180 && h < 255:
		return RoleInfo, true
	default:
		return "", false
	}
}

func assignSemantics(sys *System, chromatics []*Group) {
	bestSat := make(map[Role]float64)
	for _, g := range chromatics {
		h, s, _ := g.Centroid()
		role, ok := roleForHue(h)
		if !ok {
			continue
		}
		if s > bestSat[role] {
			bestSat[role] = s
			sys.Semantic[role] = Entry{Hex: g.Hex()}
		}
	}

	for _, role := range AlertRoles {
		if _, ok := sys.Semantic[role]; !ok {
			sys.Semantic[role] = Entry{Hex: defaultRoleHex[role], Synthesized: true}
		}
	}
}

// buildNeutralRamp fills all 11 steps. Observed neutral groups are mapped to
// their nearest lightness step; the remaining steps are synthesized at the
// ladder lightness using the observed (or default) neutral hue and
// saturation. Fewer than 5 observed neutral groups means the ramp is mostly
// interpolation.
func buildNeutralRamp(sys *System, neutrals []*Group) {
	baseHue, baseSat := 220.0, 0.04
	if len(neutrals) > 0 {
		var sumSin, sumCos, sumSat float64
		var total int
		for _, g := range neutrals {
			h, s, _ := g.Centroid()
			rad := h * math.Pi / 180
			sumSin += math.Sin(rad) * float64(g.Count)
			sumCos += math.Cos(rad) * float64(g.Count)
			sumSat += s * float64(g.Count)
			total += g.Count
		}
		baseHue = math.Atan2(sumSin, sumCos) * 180 / math.Pi
		if baseHue < 0 {
			baseHue += 360
		}
		// Cap the carried saturation: HSL saturation blows up near the
		// lightness extremes and would tint the synthesized steps.
		baseSat = math.Min(sumSat/float64(total), 0.10)
	}

	used := make(map[*Group]bool)
	for i, step := range NeutralSteps {
		target := neutralLightness[i]

		var nearest *Group
		nearestDiff := math.Inf(1)
		for _, g := range neutrals {
			if used[g] {
				continue
			}
			_, _, l := g.Centroid()
			if diff := math.Abs(l - target); diff < nearestDiff {
				nearestDiff = diff
				nearest = g
			}
		}

		if nearest != nil && nearestDiff <= 0.05 {
			used[nearest] = true
			sys.Neutral[step] = Entry{Hex: nearest.Hex()}
			continue
		}

		hex := strings.ToUpper(colorful.Hsl(baseHue, baseSat, target).Clamped().Hex())
		sys.Neutral[step] = Entry{Hex: hex, Synthesized: true}
	}
}

func rotateHue(hex string, degrees float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	h += degrees
	for h >= 360 {
		h -= 360
	}
	return strings.ToUpper(colorful.Hsl(h, s, l).Clamped().Hex())
}

// AddTo writes the system's tokens into doc under the colors category.
func (sys *System) AddTo(doc *token.Document) error {
	add := func(path string, entry Entry, desc string) error {
		if entry.Synthesized {
			if desc != "" {
				desc += " (synthesized)"
			} else {
				desc = "synthesized"
			}
		}
		return doc.Add(path, token.MustColor(entry.Hex, desc))
	}

	if err := add("colors.primary", sys.Primary, "brand primary"); err != nil {
		return err
	}
	if err := add("colors.secondary", sys.Secondary, "brand secondary"); err != nil {
		return err
	}
	for _, role := range AlertRoles {
		if err := add("colors."+string(role), sys.Semantic[role], string(role)+" alert"); err != nil {
			return err
		}
	}
	for _, step := range NeutralSteps {
		path := fmt.Sprintf("colors.neutral.%d", step)
		if err := add(path, sys.Neutral[step], fmt.Sprintf("neutral step %d", step)); err != nil {
			return err
		}
	}
	return nil
}
