package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/wcag"
	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

const (
	// lightnessStep is how far one repair iteration moves a color.
	lightnessStep = 0.02
	// repairBudget bounds the repair iterations per token.
	repairBudget = 25

	minLightness = 0.02
	maxLightness = 0.98
)

// DeriveDark produces the dark-mode mirror of a color system: every entry's
// lightness is inverted around the midpoint, then chromatic entries are
// nudged until they meet the contrast threshold against the dark surface.
// Entries that exhaust their adjustment budget are reported, not silently
// kept.
func DeriveDark(sys *System, contrast config.ContrastSettings) (*System, []error) {
	dark := &System{
		Semantic:    make(map[Role]Entry, len(sys.Semantic)),
		Neutral:     make(map[int]Entry, len(sys.Neutral)),
		Groups:      sys.Groups,
		SampleCount: sys.SampleCount,
	}

	for step, entry := range sys.Neutral {
		dark.Neutral[step] = Entry{Hex: invertLightness(entry.Hex), Synthesized: entry.Synthesized}
	}
	dark.Primary = Entry{Hex: invertLightness(sys.Primary.Hex), Synthesized: sys.Primary.Synthesized}
	dark.Secondary = Entry{Hex: invertLightness(sys.Secondary.Hex), Synthesized: sys.Secondary.Synthesized}
	for role, entry := range sys.Semantic {
		dark.Semantic[role] = Entry{Hex: invertLightness(entry.Hex), Synthesized: entry.Synthesized}
	}

	surface := dark.Neutral[NeutralSteps[0]].Hex

	var failures []error
	repairEntry := func(path string, entry Entry, threshold float64) Entry {
		fixed, err := repairContrast(entry.Hex, surface, threshold)
		if err != nil {
			failures = append(failures, reweaveerrors.NewDerivationError(path, err))
			return entry
		}
		entry.Hex = fixed
		return entry
	}

	dark.Primary = repairEntry("colors.primary", dark.Primary, contrast.LargeText)
	dark.Secondary = repairEntry("colors.secondary", dark.Secondary, contrast.LargeText)
	for _, role := range AlertRoles {
		path := "colors." + string(role)
		dark.Semantic[role] = repairEntry(path, dark.Semantic[role], contrast.LargeText)
	}
	for _, step := range []int{700, 800, 900} {
		path := fmt.Sprintf("colors.neutral.%d", step)
		dark.Neutral[step] = repairEntry(path, dark.Neutral[step], contrast.NormalText)
	}

	return dark, failures
}

func invertLightness(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l = clampLightness(1 - l)
	return strings.ToUpper(colorful.Hsl(h, s, l).Clamped().Hex())
}

// repairContrast pushes a color's lightness away from the surface until the
// contrast threshold is met or the adjustment budget runs out.
func repairContrast(hex, surfaceHex string, threshold float64) (string, error) {
	ratio, ok := wcag.ContrastHex(hex, surfaceHex)
	if !ok {
		return hex, fmt.Errorf("unparseable color %q", hex)
	}
	if ratio >= threshold {
		return hex, nil
	}

	surface, err := colorful.Hex(surfaceHex)
	if err != nil {
		return hex, err
	}
	lighten := wcag.RelativeLuminance(surface) < 0.5

	c, err := colorful.Hex(hex)
	if err != nil {
		return hex, err
	}
	h, s, l := c.Hsl()

	for i := 0; i < repairBudget; i++ {
		if lighten {
			l += lightnessStep
		} else {
			l -= lightnessStep
		}
		l = clampLightness(l)

		candidate := strings.ToUpper(colorful.Hsl(h, s, l).Clamped().Hex())
		ratio, ok = wcag.ContrastHex(candidate, surfaceHex)
		if ok && ratio >= threshold {
			return candidate, nil
		}
		if l <= minLightness || l >= maxLightness {
			break
		}
	}

	return hex, fmt.Errorf("contrast %.2f:1 below %.1f:1 after %d adjustments", ratio, threshold, repairBudget)
}

func clampLightness(l float64) float64 {
	if l < minLightness {
		return minLightness
	}
	if l > maxLightness {
		return maxLightness
	}
	return l
}
