package typeset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/sample"
)

func typeSettings() config.TypeSettings {
	return config.Default().Typography
}

func fontSizes(sizes ...float64) []sample.FontSample {
	out := make([]sample.FontSample, len(sizes))
	for i, s := range sizes {
		out[i] = sample.FontSample{Size: s}
	}
	return out
}

func TestAnalyzeSelectsPerfectFourthForClassicScale(t *testing.T) {
	t.Parallel()

	scale := Analyze(fontSizes(16, 18, 24, 36), typeSettings())
	require.Equal(t, 1.333, scale.Ratio)
	require.Equal(t, 16.0, scale.Levels[LevelBody].Size)
	require.Equal(t, 12.0, scale.Levels[LevelSmall].Size)
	require.Zero(t, scale.FloorAdjustments)
}

func TestAnalyzeHierarchyStrictlyDescending(t *testing.T) {
	t.Parallel()

	scale := Analyze(fontSizes(16, 18, 24, 36), typeSettings())

	prev := scale.Levels[LevelH1].Size
	for _, level := range Levels[1:] {
		size := scale.Levels[level].Size
		require.Less(t, size, prev, "level %s must be smaller than its predecessor", level)
		prev = size
	}
}

func TestAnalyzeFallsBackOnTooFewSizes(t *testing.T) {
	t.Parallel()

	cfg := typeSettings()
	scale := Analyze(fontSizes(16), cfg)
	require.Equal(t, cfg.DefaultRatio, scale.Ratio)
	require.Len(t, scale.Levels, len(Levels))

	empty := Analyze(nil, cfg)
	require.Equal(t, cfg.DefaultRatio, empty.Ratio)
	require.Equal(t, 16.0, empty.Levels[LevelBody].Size)
}

func TestAnalyzeRaisesSizesBelowFloor(t *testing.T) {
	t.Parallel()

	cfg := typeSettings()
	scale := Analyze(fontSizes(11, 13), cfg)
	require.GreaterOrEqual(t, scale.Levels[LevelBody].Size, cfg.MinBodySize)
	require.GreaterOrEqual(t, scale.Levels[LevelSmall].Size, cfg.MinSmallSize)
	require.Positive(t, scale.FloorAdjustments)
}

func TestAnalyzeLineHeightsWithinAccessibleRange(t *testing.T) {
	t.Parallel()

	cfg := typeSettings()
	scale := Analyze(fontSizes(12, 16, 20, 32, 48, 64), cfg)
	for level, style := range scale.Levels {
		require.GreaterOrEqual(t, style.LineHeight, cfg.MinLineHeight, "level %s", level)
		require.LessOrEqual(t, style.LineHeight, cfg.MaxLineHeight, "level %s", level)
	}

	require.Equal(t, cfg.MaxLineHeight, scale.Levels[LevelBody].LineHeight)
	require.Less(t, scale.Levels[LevelH1].LineHeight, scale.Levels[LevelH6].LineHeight)
}

func TestAnalyzeWeightsFollowObservations(t *testing.T) {
	t.Parallel()

	samples := []sample.FontSample{
		{Size: 16, Weight: 400},
		{Size: 16, Weight: 400},
		{Size: 32, Weight: 800},
		{Size: 32, Weight: 800},
		{Size: 48, Weight: 600},
	}
	scale := Analyze(samples, typeSettings())
	require.Equal(t, 400, scale.Levels[LevelBody].Weight)
	require.Equal(t, 800, scale.Levels[LevelH1].Weight)
}

func TestFontStacksDedupedAndCapped(t *testing.T) {
	t.Parallel()

	samples := []sample.FontSample{
		{Size: 16, Family: "Inter, sans-serif"},
		{Size: 16, Family: `"Inter", sans-serif`},
		{Size: 32, Family: "Georgia, serif"},
		{Size: 14, Family: "Menlo, monospace"},
		{Size: 14, Family: "Courier, monospace"},
	}
	scale := Analyze(samples, typeSettings())
	require.Len(t, scale.Stacks, 3)
	require.Equal(t, "Inter, sans-serif", scale.Stacks[0])
}

func TestAnalyzeNoSamplesSynthesizesDefaultStack(t *testing.T) {
	t.Parallel()

	scale := Analyze(nil, typeSettings())
	require.Equal(t, []string{"system-ui, sans-serif"}, scale.Stacks)
}
