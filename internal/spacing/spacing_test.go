package spacing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweave/reweave/internal/config"
)

func spacingSettings() config.SpacingSettings {
	return config.Default().Spacing
}

func TestDetectPrefersEightForEightGrid(t *testing.T) {
	t.Parallel()

	scale := Detect([]float64{8, 16, 24, 32, 48}, nil, spacingSettings())
	require.Equal(t, 8, scale.BaseUnit)
	require.Equal(t, []float64{8, 16, 24, 32, 48}, scale.Values)
	require.Equal(t, 1.0, scale.Regularity)
}

func TestDetectPicksFourForFourGrid(t *testing.T) {
	t.Parallel()

	scale := Detect([]float64{4, 12, 20, 28}, nil, spacingSettings())
	require.Equal(t, 4, scale.BaseUnit)
}

func TestDetectValuesAreExactMultiplesOfBase(t *testing.T) {
	t.Parallel()

	scale := Detect([]float64{5, 9, 13.5, 17, 22, 31, 47.2, 65}, nil, spacingSettings())
	for _, v := range scale.Values {
		require.Zero(t, math.Mod(v, float64(scale.BaseUnit)),
			"value %v is not a multiple of %d", v, scale.BaseUnit)
	}
	require.IsIncreasing(t, scale.Values)
}

func TestDetectNoisyGridGetsPartialRegularity(t *testing.T) {
	t.Parallel()

	scale := Detect([]float64{8, 16, 17, 33}, nil, spacingSettings())
	require.Greater(t, scale.Regularity, 0.0)
	require.Less(t, scale.Regularity, 1.0)
}

func TestDetectCapsScaleLength(t *testing.T) {
	t.Parallel()

	var samples []float64
	for i := 1; i <= 30; i++ {
		samples = append(samples, float64(i*4))
	}

	cfg := spacingSettings()
	scale := Detect(samples, nil, cfg)
	require.LessOrEqual(t, len(scale.Values), cfg.MaxScaleEntries)
	require.IsIncreasing(t, scale.Values)
}

func TestDetectEmptyInputGivesDefaultLadder(t *testing.T) {
	t.Parallel()

	scale := Detect(nil, nil, spacingSettings())
	require.Equal(t, 8, scale.BaseUnit)
	require.NotEmpty(t, scale.Values)
	require.Equal(t, 1.0, scale.Regularity)
	for _, v := range scale.Values {
		require.Zero(t, math.Mod(v, float64(scale.BaseUnit)))
	}
}

func TestSnapBreakpointsNearestMatch(t *testing.T) {
	t.Parallel()

	scale := Detect(nil, []float64{390, 1250, 200}, spacingSettings())
	require.Len(t, scale.Breakpoints, 4)

	byName := make(map[string]Breakpoint)
	for _, bp := range scale.Breakpoints {
		byName[bp.Name] = bp
	}
	require.True(t, byName["mobile"].Observed)
	require.True(t, byName["desktop"].Observed)
	require.False(t, byName["tablet"].Observed)
	require.False(t, byName["wide"].Observed)
	require.Equal(t, 1280.0, byName["desktop"].Width)
}
