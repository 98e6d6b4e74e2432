package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/pipeline"
	"github.com/reweave/reweave/internal/token"
)

func TestLoadInputReadsYAMLBundle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundle.yaml")
	data := `colors:
  - value: "#2563EB"
    hint: primary
fonts:
  - size: 16
    family: Inter
spacing: [8, 16]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	bundle, err := loadInput(path)
	require.NoError(t, err)
	require.Len(t, bundle.Colors, 1)
	require.Equal(t, "primary", bundle.Colors[0].Hint)
	require.Equal(t, []float64{8, 16}, bundle.Spacing)
}

func TestLoadInputSamplesHTML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	html := `<html><body><nav style="color: #2563EB; padding: 16px">x</nav></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	bundle, err := loadInput(path)
	require.NoError(t, err)
	require.Len(t, bundle.Colors, 1)
	require.Contains(t, bundle.Spacing, 16.0)
	require.NotEmpty(t, bundle.Patterns)
}

func TestWriteDocumentRoundTrips(t *testing.T) {
	t.Parallel()

	result, err := pipeline.Analyze(context.Background(), nil, config.Default(), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tokens.yaml")
	require.NoError(t, writeDocument(path, result.Light))

	parsed, err := parseDocumentFile(path)
	require.NoError(t, err)
	require.Equal(t, result.Light.Paths(), parsed.Paths())

	tok, ok := parsed.Get("colors.primary")
	require.True(t, ok)
	require.Equal(t, token.TypeColor, tok.Type)
}

func TestCheckStructureFlagsMissingTokens(t *testing.T) {
	t.Parallel()

	doc := token.NewDocument()
	require.NoError(t, doc.Add("colors.primary", token.MustColor("#2563EB", "")))

	issues := checkStructure(doc)
	require.NotEmpty(t, issues)

	flagged := map[string]bool{}
	for _, issue := range issues {
		flagged[issue.Path] = true
	}
	require.True(t, flagged["colors.secondary"])
	require.True(t, flagged["colors.neutral.50"])
	require.False(t, flagged["colors.primary"])
}
