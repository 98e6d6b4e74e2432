package token

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildDocument(t *testing.T) *Document {
	t.Helper()

	doc := NewDocument()
	require.NoError(t, doc.Add("colors.primary", MustColor("#3B82F6", "brand primary")))
	require.NoError(t, doc.Add("colors.neutral.500", MustColor("#6B7280", "")))

	body, err := FontSize(16, "body copy")
	require.NoError(t, err)
	require.NoError(t, doc.Add("typography.body.size", body))

	return doc
}

func TestDocumentRejectsDuplicatePath(t *testing.T) {
	t.Parallel()

	doc := buildDocument(t)
	err := doc.Add("colors.primary", MustColor("#000000", ""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
}

func TestDocumentRejectsEmptyPathSegment(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	require.Error(t, doc.Add("colors..primary", MustColor("#000000", "")))
	require.Error(t, doc.Add("", MustColor("#000000", "")))
}

func TestDocumentPathsSorted(t *testing.T) {
	t.Parallel()

	doc := buildDocument(t)
	require.Equal(t, []string{"colors.neutral.500", "colors.primary", "typography.body.size"}, doc.Paths())
}

func TestDocumentCategoryFiltersByPrefix(t *testing.T) {
	t.Parallel()

	doc := buildDocument(t)
	colors := doc.Category("colors")
	require.Len(t, colors, 2)
	_, ok := colors["typography.body.size"]
	require.False(t, ok)
}

func TestDocumentYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	doc := buildDocument(t)

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	parsed, err := ParseDocument(data)
	require.NoError(t, err)
	require.Equal(t, doc.Paths(), parsed.Paths())

	primary, ok := parsed.Get("colors.primary")
	require.True(t, ok)
	require.Equal(t, "#3B82F6", primary.MustHex())
	require.Equal(t, "brand primary", primary.Description)

	body, ok := parsed.Get("typography.body.size")
	require.True(t, ok)
	px, ok := body.Px()
	require.True(t, ok)
	require.Equal(t, 16.0, px)
}

func TestParseDocumentWidensFontWeightToFloat(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDocument([]byte("typography:\n  body:\n    fontWeight:\n      value: 400\n      type: fontWeight\n"))
	require.NoError(t, err)

	weight, ok := parsed.Get("typography.body.fontWeight")
	require.True(t, ok)
	require.Equal(t, float64(400), weight.Value)
}

func TestParseDocumentRejectsInvalidLeaf(t *testing.T) {
	t.Parallel()

	_, err := ParseDocument([]byte("colors:\n  primary:\n    value: not-a-color\n    type: color\n"))
	require.Error(t, err)
}
