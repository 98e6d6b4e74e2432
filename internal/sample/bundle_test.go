package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

func TestLoadBundleReadsAllSections(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundle.yaml")
	data := `colors:
  - value: "#2563EB"
    hint: primary
fonts:
  - size: 16
    family: Inter, sans-serif
    weight: 400
spacing: [8, 16, 24]
widths: [390, 1280]
patterns:
  - type: card
    confidence: 0.8
    properties:
      count: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	bundle, err := LoadBundle(path)
	require.NoError(t, err)
	require.Equal(t, "#2563EB", bundle.Colors[0].Value)
	require.Equal(t, "primary", bundle.Colors[0].Hint)
	require.Equal(t, 16.0, bundle.Fonts[0].Size)
	require.Equal(t, []float64{8, 16, 24}, bundle.Spacing)
	require.Equal(t, []float64{390, 1280}, bundle.Widths)
	require.Equal(t, "card", bundle.Patterns[0].Type)
	require.Equal(t, 3, bundle.Patterns[0].Properties["count"])
}

func TestLoadBundleMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadBundle(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var parseErr *reweaveerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadBundleRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors: [\n"), 0o644))

	_, err := LoadBundle(path)
	require.Error(t, err)
}
