// Package pipeline runs the full analysis: palette normalization, type
// scale inference, spacing detection, dark-mode derivation, accessibility
// checks, and quality scoring, producing light and dark token documents.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/logger"
	"github.com/reweave/reweave/internal/palette"
	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/internal/score"
	"github.com/reweave/reweave/internal/spacing"
	"github.com/reweave/reweave/internal/token"
	"github.com/reweave/reweave/internal/typeset"
	"github.com/reweave/reweave/internal/wcag"
	"github.com/reweave/reweave/pkg/errors"
)

// Result is everything one analysis run produces.
type Result struct {
	Light   *token.Document
	Dark    *token.Document
	Palette *palette.System
	Type    *typeset.Scale
	Spacing *spacing.Scale

	// Pairs holds the evaluated contrast pairs for both modes.
	Pairs  []wcag.PairResult
	Issues []wcag.Issue
	Score  *score.Score

	Summary Summary
}

// Summary aggregates the run's counts for reporting and exit codes.
type Summary struct {
	TokenCount  int
	TotalPairs  int
	PassedPairs int
	Errors      int
	Warnings    int
}

// Add folds one issue into the counters.
func (s *Summary) Add(issue wcag.Issue) {
	switch issue.Severity {
	case wcag.SeverityError:
		s.Errors++
	case wcag.SeverityWarning:
		s.Warnings++
	}
}

// ExitCode maps the summary onto the process exit code: 0 when clean or
// warnings only, 1 when any error-severity issue remains.
func (s Summary) ExitCode() int {
	if s.Errors > 0 {
		return 1
	}
	return 0
}

// Analyze runs every stage over the sampled bundle. The returned error
// covers internal failures only; accessibility and naming findings land in
// Result.Issues.
func Analyze(ctx context.Context, bundle *sample.Bundle, cfg config.Config, log *logger.Logger) (*Result, error) {
	if bundle == nil {
		bundle = &sample.Bundle{}
	}
	log = log.Component("pipeline")

	sys := palette.Normalize(bundle.Colors, cfg.Cluster)
	log.WithFields(map[string]any{
		"samples": sys.SampleCount,
		"groups":  len(sys.Groups),
	}).Debug("palette normalized")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scale := typeset.Analyze(bundle.Fonts, cfg.Typography)
	log.WithFields(map[string]any{
		"ratio":     scale.Ratio,
		"deviation": scale.Deviation,
	}).Debug("type scale inferred")

	grid := spacing.Detect(bundle.Spacing, bundle.Widths, cfg.Spacing)
	log.WithFields(map[string]any{
		"baseUnit":   grid.BaseUnit,
		"values":     len(grid.Values),
		"regularity": grid.Regularity,
	}).Debug("spacing grid detected")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	light := token.NewDocument()
	if err := sys.AddTo(light); err != nil {
		return nil, fmt.Errorf("building color tokens: %w", err)
	}
	if err := addTypography(light, scale); err != nil {
		return nil, fmt.Errorf("building typography tokens: %w", err)
	}
	if err := addSpacing(light, grid); err != nil {
		return nil, fmt.Errorf("building spacing tokens: %w", err)
	}
	if err := addSurfaceExtras(light, grid.BaseUnit); err != nil {
		return nil, fmt.Errorf("building surface tokens: %w", err)
	}

	darkSys, derivationErrs := palette.DeriveDark(sys, cfg.Contrast)
	dark := token.NewDocument()
	if err := darkSys.AddTo(dark); err != nil {
		return nil, fmt.Errorf("building dark color tokens: %w", err)
	}
	if err := mirrorNonColor(light, dark); err != nil {
		return nil, fmt.Errorf("mirroring dark tokens: %w", err)
	}

	result := &Result{
		Light:   light,
		Dark:    dark,
		Palette: sys,
		Type:    scale,
		Spacing: grid,
	}

	for _, derr := range derivationErrs {
		issue := wcag.Issue{
			Severity: wcag.SeverityError,
			Message:  derr.Error(),
		}
		var de *errors.DerivationError
		if stderrors.As(derr, &de) {
			issue.Path = de.TokenPath
		}
		result.Issues = append(result.Issues, issue)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	naming := wcag.CheckSemanticNaming(light)
	result.Issues = append(result.Issues, naming...)

	for _, doc := range []*token.Document{light, dark} {
		pairs := wcag.RequiredPairs(doc)
		pairResults, issues := wcag.EvaluatePairs(doc, pairs, cfg.Contrast)
		result.Pairs = append(result.Pairs, pairResults...)
		result.Issues = append(result.Issues, issues...)
	}

	result.Issues = append(result.Issues, wcag.CheckDarkParity(light, dark)...)

	fluid := false
	for _, bp := range grid.Breakpoints {
		if bp.Observed {
			fluid = true
			break
		}
	}

	result.Score = score.Compute(score.Inputs{
		ColorGroups:       len(sys.Groups),
		NamingWarnings:    len(naming),
		TypeDeviation:     scale.Deviation,
		FloorAdjustments:  scale.FloorAdjustments,
		SpacingRegularity: grid.Regularity,
		Contrast:          result.Pairs,
		Patterns:          bundle.Patterns,
		TokenCount:        light.Len(),
		MotionTokens:      true,
		RadiusTokens:      true,
		ShadowTokens:      true,
		FluidBreakpoints:  fluid,
	}, cfg)

	result.Summary = summarize(result)
	log.WithFields(map[string]any{
		"tokens":  result.Summary.TokenCount,
		"errors":  result.Summary.Errors,
		"overall": result.Score.Overall,
	}).Info("analysis complete")

	return result, nil
}

func summarize(r *Result) Summary {
	s := Summary{
		TokenCount: r.Light.Len(),
		TotalPairs: len(r.Pairs),
	}
	for _, pr := range r.Pairs {
		if pr.Passed {
			s.PassedPairs++
		}
	}
	for _, issue := range r.Issues {
		s.Add(issue)
	}
	return s
}

func addTypography(doc *token.Document, scale *typeset.Scale) error {
	for _, level := range typeset.Levels {
		style := scale.Levels[level]
		prefix := "typography." + string(level)

		size, err := token.FontSize(style.Size, "")
		if err != nil {
			return err
		}
		if err := doc.Add(prefix+".fontSize", size); err != nil {
			return err
		}

		lh, err := token.LineHeight(style.LineHeight, "")
		if err != nil {
			return err
		}
		if err := doc.Add(prefix+".lineHeight", lh); err != nil {
			return err
		}

		weight, err := token.FontWeight(style.Weight, "")
		if err != nil {
			return err
		}
		if err := doc.Add(prefix+".fontWeight", weight); err != nil {
			return err
		}
	}

	family, err := token.FontFamily(scale.Stacks, "observed font stacks, most used first")
	if err != nil {
		return err
	}
	return doc.Add("typography.fontFamily.base", family)
}

func addSpacing(doc *token.Document, grid *spacing.Scale) error {
	for _, v := range grid.Values {
		multiple := strconv.Itoa(int(v) / grid.BaseUnit)
		dim, err := token.Dimension(v, "")
		if err != nil {
			return err
		}
		if err := doc.Add("spacing."+multiple, dim); err != nil {
			return err
		}
	}

	for _, bp := range grid.Breakpoints {
		desc := "canonical"
		if bp.Observed {
			desc = "observed"
		}
		dim, err := token.Dimension(bp.Width, desc)
		if err != nil {
			return err
		}
		if err := doc.Add("breakpoints."+bp.Name, dim); err != nil {
			return err
		}
	}
	return nil
}

// addSurfaceExtras completes the set with radius, shadow, and motion
// tokens derived from the spacing base unit.
func addSurfaceExtras(doc *token.Document, baseUnit int) error {
	base := float64(baseUnit)

	radii := []struct {
		name string
		px   float64
	}{
		{"sm", base / 2},
		{"md", base},
		{"lg", base * 2},
		{"full", 9999},
	}
	for _, r := range radii {
		tok, err := token.BorderRadius(r.px, "")
		if err != nil {
			return err
		}
		if err := doc.Add("borderRadius."+r.name, tok); err != nil {
			return err
		}
	}

	shadows := []struct {
		name string
		css  string
	}{
		{"sm", "0 1px 2px 0 rgb(0 0 0 / 0.05)"},
		{"md", "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)"},
		{"lg", "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)"},
	}
	for _, s := range shadows {
		tok, err := token.Shadow(s.css, "")
		if err != nil {
			return err
		}
		if err := doc.Add("shadows."+s.name, tok); err != nil {
			return err
		}
	}

	durations := []struct {
		name string
		ms   float64
	}{
		{"fast", 150},
		{"normal", 300},
		{"slow", 500},
	}
	for _, d := range durations {
		tok, err := token.Duration(d.ms, "")
		if err != nil {
			return err
		}
		if err := doc.Add("motion.duration."+d.name, tok); err != nil {
			return err
		}
	}
	return nil
}

// mirrorNonColor copies every non-color token from the light document so
// both modes expose the same structure.
func mirrorNonColor(light, dark *token.Document) error {
	for _, path := range light.Paths() {
		if strings.HasPrefix(path, "colors.") {
			continue
		}
		tok, _ := light.Get(path)
		if err := dark.Add(path, tok); err != nil {
			return err
		}
	}
	return nil
}
