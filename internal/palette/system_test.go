package palette

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/internal/token"
	"github.com/reweave/reweave/internal/wcag"
)

func TestNormalizeEmptyInputYieldsDefaultSystem(t *testing.T) {
	t.Parallel()

	sys := Normalize(nil, clusterSettings())

	require.True(t, sys.Primary.Synthesized)
	require.True(t, sys.Secondary.Synthesized)
	require.Equal(t, defaultPrimaryHex, sys.Primary.Hex)
	for _, role := range AlertRoles {
		entry, ok := sys.Semantic[role]
		require.True(t, ok, "missing role %s", role)
		require.True(t, entry.Synthesized)
		require.Equal(t, defaultRoleHex[role], entry.Hex)
	}
	require.Len(t, sys.Neutral, len(NeutralSteps))
}

func TestNormalizeAssignsSemanticRolesByHue(t *testing.T) {
	t.Parallel()

	samples := []sample.ColorSample{
		{Value: "#DC2626"}, // red
		{Value: "#D97706"}, // orange
		{Value: "#059669"}, // green
		{Value: "#2563EB"}, // blue
	}
	sys := Normalize(samples, clusterSettings())

	require.False(t, sys.Semantic[RoleError].Synthesized)
	require.False(t, sys.Semantic[RoleWarning].Synthesized)
	require.False(t, sys.Semantic[RoleSuccess].Synthesized)
	require.False(t, sys.Semantic[RoleInfo].Synthesized)
}

func TestNormalizePrimaryFollowsFrequencyAndHints(t *testing.T) {
	t.Parallel()

	samples := []sample.ColorSample{
		{Value: "#2563EB", Hint: "brand"},
		{Value: "#2563EB"},
		{Value: "#2563EB"},
		{Value: "#DC2626"},
	}
	sys := Normalize(samples, clusterSettings())

	require.False(t, sys.Primary.Synthesized)
	primary, ok := ParseColor(sys.Primary.Hex)
	require.True(t, ok)
	h, _, _ := primary.Hsl()
	require.InDelta(t, 222, h, 10, "primary should be the frequent blue")

	// The red group is far enough in hue to take the secondary slot.
	require.False(t, sys.Secondary.Synthesized)
}

func TestNormalizeSynthesizesSecondaryWhenSingleHue(t *testing.T) {
	t.Parallel()

	sys := Normalize(colorSamples("#2563EB", "#2563EB"), clusterSettings())
	require.False(t, sys.Primary.Synthesized)
	require.True(t, sys.Secondary.Synthesized)
	require.NotEqual(t, sys.Primary.Hex, sys.Secondary.Hex)
}

func TestNormalizeNeutralRampOrderedByLightness(t *testing.T) {
	t.Parallel()

	sys := Normalize(colorSamples("#6B7280", "#111827", "#F9FAFB"), clusterSettings())

	var prev float64 = 2
	for _, step := range NeutralSteps {
		entry := sys.Neutral[step]
		c, ok := ParseColor(entry.Hex)
		require.True(t, ok)
		_, _, l := c.Hsl()
		require.Less(t, l, prev, "step %d must be darker than its predecessor", step)
		prev = l
	}
}

func TestNormalizeUsesObservedNeutralForNearestStep(t *testing.T) {
	t.Parallel()

	sys := Normalize(colorSamples("#6B7280", "#6b7280", "#6C8191"), clusterSettings())

	mid := sys.Neutral[500]
	require.False(t, mid.Synthesized, "observed gray cluster should land on step 500")
	require.True(t, sys.Neutral[50].Synthesized)
}

// The observed gray cluster used as text on the synthesized lightest surface
// must fail AA for normal text while passing the large-text threshold.
func TestObservedNeutralContrastAgainstLightSurface(t *testing.T) {
	t.Parallel()

	sys := Normalize(colorSamples("#6B7280", "#6b7280", "#6C8191"), clusterSettings())

	ratio, ok := wcag.ContrastHex(sys.Neutral[500].Hex, sys.Neutral[50].Hex)
	require.True(t, ok)
	require.Greater(t, ratio, 3.9)
	require.Less(t, ratio, 4.5)

	contrast := config.Default().Contrast
	require.Less(t, ratio, contrast.NormalText)
	require.GreaterOrEqual(t, ratio, contrast.LargeText)
}

func TestSystemAddToProducesValidDocument(t *testing.T) {
	t.Parallel()

	sys := Normalize(colorSamples("#2563EB", "#DC2626", "#6B7280"), clusterSettings())

	doc := token.NewDocument()
	require.NoError(t, sys.AddTo(doc))

	require.Equal(t, 6+len(NeutralSteps), doc.Len())
	primary, ok := doc.Get("colors.primary")
	require.True(t, ok)
	require.Equal(t, token.TypeColor, primary.Type)
	_, ok = doc.Get("colors.neutral.950")
	require.True(t, ok)
}
