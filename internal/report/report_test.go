package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/pipeline"
	"github.com/reweave/reweave/internal/sample"
)

func analyzed(t *testing.T) *pipeline.Result {
	t.Helper()

	bundle := &sample.Bundle{
		Colors: []sample.ColorSample{
			{Value: "#2563EB", Hint: "primary"},
			{Value: "#6B7280", Hint: "text"},
		},
		Fonts: []sample.FontSample{
			{Size: 16, Family: "Inter, sans-serif"},
			{Size: 24, Family: "Inter, sans-serif"},
		},
		Spacing: []float64{8, 16, 24},
	}
	result, err := pipeline.Analyze(context.Background(), bundle, config.Default(), nil)
	require.NoError(t, err)
	return result
}

func TestRenderCoversAllSections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Render(&buf, analyzed(t), false)
	out := buf.String()

	for _, section := range []string{
		"Design Token Analysis",
		"Palette",
		"Typography",
		"Spacing",
		"Accessibility",
		"Quality",
	} {
		require.Contains(t, out, section)
	}
	require.Contains(t, out, "primary")
	require.Contains(t, out, "contrast pairs")
}

func TestRenderVerboseListsPairs(t *testing.T) {
	t.Parallel()

	result := analyzed(t)

	var terse, verbose bytes.Buffer
	Render(&terse, result, false)
	Render(&verbose, result, true)

	require.Greater(t, len(verbose.String()), len(terse.String()))
	require.Contains(t, verbose.String(), "colors.neutral.700")
}

func TestRenderBarWidths(t *testing.T) {
	t.Parallel()

	require.Equal(t, barWidth, strings.Count(bar(1.0), "█"))
	require.Equal(t, barWidth, strings.Count(bar(0.0), "░"))
	require.Equal(t, barWidth/2, strings.Count(bar(0.5), "█"))
}
