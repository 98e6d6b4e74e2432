package wcag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/token"
)

func testDocument(t *testing.T) *token.Document {
	t.Helper()

	doc := token.NewDocument()
	add := func(path, hex string) {
		require.NoError(t, doc.Add(path, token.MustColor(hex, "")))
	}

	add("colors.primary", "#1D4ED8")
	add("colors.secondary", "#B91C1C")
	add("colors.success", "#047857")
	add("colors.warning", "#B45309")
	add("colors.error", "#DC2626")
	add("colors.info", "#1E40AF")
	add("colors.neutral.50", "#F9FAFB")
	add("colors.neutral.100", "#F3F4F6")
	add("colors.neutral.200", "#E5E7EB")
	add("colors.neutral.700", "#374151")
	add("colors.neutral.800", "#1F2937")
	add("colors.neutral.900", "#111827")
	return doc
}

func TestRequiredPairsCoverTextAndRoles(t *testing.T) {
	t.Parallel()

	pairs := RequiredPairs(testDocument(t))
	// 3 neutral text steps + 6 chromatic roles against the lightest surface.
	require.Len(t, pairs, 9)

	large := 0
	for _, p := range pairs {
		require.Equal(t, "colors.neutral.50", p.Background)
		if p.Large {
			large++
		}
	}
	require.Equal(t, 6, large)
}

func TestRequiredPairsEmptyWithoutSurface(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument()
	require.NoError(t, doc.Add("colors.primary", token.MustColor("#1D4ED8", "")))
	require.Empty(t, RequiredPairs(doc))
}

func TestCrossProductPairsSpanAllSurfaces(t *testing.T) {
	t.Parallel()

	pairs := CrossProductPairs(testDocument(t))
	// 3 surfaces x (3 text steps + 6 roles).
	require.Len(t, pairs, 27)
}

func TestEvaluatePairsFlagsFailures(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument()
	require.NoError(t, doc.Add("colors.neutral.50", token.MustColor("#F9FAFB", "")))
	require.NoError(t, doc.Add("colors.neutral.900", token.MustColor("#111827", "")))
	// A mid gray fails AA normal text on the light surface.
	require.NoError(t, doc.Add("colors.neutral.700", token.MustColor("#9CA3AF", "")))

	results, issues := EvaluatePairs(doc, RequiredPairs(doc), config.Default().Contrast)
	require.Len(t, results, 2)

	require.Len(t, issues, 1)
	require.Equal(t, SeverityError, issues[0].Severity)
	require.Equal(t, "colors.neutral.700", issues[0].Path)
	require.True(t, HasErrors(issues))
}

func TestEvaluatePairsStrictPresetIsHarder(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument()
	require.NoError(t, doc.Add("colors.neutral.50", token.MustColor("#F9FAFB", "")))
	// 4.5:1-ish gray: passes AA, fails AAA.
	require.NoError(t, doc.Add("colors.neutral.700", token.MustColor("#6B7280", "")))

	_, aaIssues := EvaluatePairs(doc, RequiredPairs(doc), config.Default().Contrast)
	_, aaaIssues := EvaluatePairs(doc, RequiredPairs(doc), config.Strict().Contrast)
	require.Empty(t, aaIssues)
	require.NotEmpty(t, aaaIssues)
}

func TestCheckSemanticNamingFlagsSharedValues(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument()
	require.NoError(t, doc.Add("colors.primary", token.MustColor("#3B82F6", "")))
	require.NoError(t, doc.Add("colors.info", token.MustColor("#3B82F6", "")))
	require.NoError(t, doc.Add("colors.error", token.MustColor("#EF4444", "")))

	issues := CheckSemanticNaming(doc)
	require.Len(t, issues, 1)
	require.Equal(t, SeverityWarning, issues[0].Severity)
	require.Contains(t, issues[0].Message, "colors.info")
	require.Contains(t, issues[0].Message, "colors.primary")
	require.False(t, HasErrors(issues))
}

func TestCheckDarkParityDetectsMissingAndMismatched(t *testing.T) {
	t.Parallel()

	light := token.NewDocument()
	require.NoError(t, light.Add("colors.primary", token.MustColor("#1D4ED8", "")))
	require.NoError(t, light.Add("colors.neutral.50", token.MustColor("#F9FAFB", "")))

	dark := token.NewDocument()
	require.NoError(t, dark.Add("colors.primary", token.MustColor("#60A5FA", "")))
	// colors.neutral.50 missing; extra key present.
	require.NoError(t, dark.Add("colors.accent", token.MustColor("#F472B6", "")))

	issues := CheckDarkParity(light, dark)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		require.Equal(t, SeverityError, issue.Severity)
	}

	paths := []string{issues[0].Path, issues[1].Path}
	require.Contains(t, paths, "colors.neutral.50")
	require.Contains(t, paths, "colors.accent")
}

func TestCheckDarkParityTypeMismatch(t *testing.T) {
	t.Parallel()

	light := token.NewDocument()
	require.NoError(t, light.Add("spacing.1", mustDimension(t, 4)))

	dark := token.NewDocument()
	require.NoError(t, dark.Add("spacing.1", token.MustColor("#111111", "")))

	issues := CheckDarkParity(light, dark)
	require.Len(t, issues, 1)
	require.Equal(t, SeverityError, issues[0].Severity)
	require.Contains(t, issues[0].Message, "type")
}

func mustDimension(t *testing.T, px float64) token.Token {
	t.Helper()
	tok, err := token.Dimension(px, "")
	require.NoError(t, err)
	return tok
}
