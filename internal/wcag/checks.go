package wcag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reweave/reweave/internal/config"
	"github.com/reweave/reweave/internal/token"
)

// Severity classifies a reported issue. Callers decide pass/fail by
// filtering for SeverityError entries.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one reported structural or contrast finding.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

// PairCheck is one foreground/background contrast requirement.
type PairCheck struct {
	Foreground string
	Background string
	// Large marks large-text and UI-component pairs, which use the lower
	// threshold.
	Large bool
}

// PairResult is the outcome of evaluating one PairCheck.
type PairResult struct {
	PairCheck
	Ratio     float64
	Threshold float64
	Passed    bool
}

// backgroundSteps are the neutral ramp steps treated as surfaces.
var backgroundSteps = []string{"50", "100", "200"}

// textSteps are the neutral ramp steps treated as body text.
var textSteps = []string{"700", "800", "900"}

// chromaticRoles are the role tokens checked as UI components.
var chromaticRoles = []string{"primary", "secondary", "success", "warning", "error", "info"}

// RequiredPairs enumerates the contrast requirements for a token document:
// neutral body text against the lightest surface at the normal-text
// threshold, and every chromatic role against it at the large-text/UI
// threshold. Pairs whose tokens are absent are skipped.
func RequiredPairs(doc *token.Document) []PairCheck {
	var pairs []PairCheck
	const surface = "colors.neutral.50"
	if _, ok := doc.Get(surface); !ok {
		return nil
	}

	for _, step := range textSteps {
		fg := "colors.neutral." + step
		if _, ok := doc.Get(fg); ok {
			pairs = append(pairs, PairCheck{Foreground: fg, Background: surface})
		}
	}
	for _, role := range chromaticRoles {
		fg := "colors." + role
		if _, ok := doc.Get(fg); ok {
			pairs = append(pairs, PairCheck{Foreground: fg, Background: surface, Large: true})
		}
	}
	return pairs
}

// CrossProductPairs enumerates every text/background combination in the
// document: each neutral surface step against all neutral text steps and
// chromatic roles. Used by the validation CLI for exhaustive reporting.
func CrossProductPairs(doc *token.Document) []PairCheck {
	var pairs []PairCheck
	for _, bgStep := range backgroundSteps {
		bg := "colors.neutral." + bgStep
		if _, ok := doc.Get(bg); !ok {
			continue
		}
		for _, step := range textSteps {
			fg := "colors.neutral." + step
			if _, ok := doc.Get(fg); ok {
				pairs = append(pairs, PairCheck{Foreground: fg, Background: bg})
			}
		}
		for _, role := range chromaticRoles {
			fg := "colors." + role
			if _, ok := doc.Get(fg); ok {
				pairs = append(pairs, PairCheck{Foreground: fg, Background: bg, Large: true})
			}
		}
	}
	return pairs
}

// EvaluatePairs measures every pair and reports threshold failures as
// error-severity issues.
func EvaluatePairs(doc *token.Document, pairs []PairCheck, cfg config.ContrastSettings) ([]PairResult, []Issue) {
	results := make([]PairResult, 0, len(pairs))
	var issues []Issue

	for _, pair := range pairs {
		fgTok, okFg := doc.Get(pair.Foreground)
		bgTok, okBg := doc.Get(pair.Background)
		if !okFg || !okBg {
			continue
		}
		fgHex, okFg := fgTok.Hex()
		bgHex, okBg := bgTok.Hex()
		if !okFg || !okBg {
			continue
		}

		ratio, ok := ContrastHex(fgHex, bgHex)
		if !ok {
			continue
		}

		threshold := cfg.NormalText
		if pair.Large {
			threshold = cfg.LargeText
		}

		result := PairResult{
			PairCheck: pair,
			Ratio:     ratio,
			Threshold: threshold,
			Passed:    ratio >= threshold,
		}
		results = append(results, result)

		if !result.Passed {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     pair.Foreground,
				Message: fmt.Sprintf("contrast %.2f:1 against %s below %s threshold %.1f:1",
					ratio, pair.Background, cfg.Level, threshold),
			})
		}
	}

	return results, issues
}

// CheckSemanticNaming reports distinct token paths sharing an identical raw
// color value. Duplicates are warnings: they usually indicate an unnamed
// duplicate rather than a deliberate semantic alias.
func CheckSemanticNaming(doc *token.Document) []Issue {
	byValue := make(map[string][]string)
	for _, path := range doc.Paths() {
		tok, _ := doc.Get(path)
		if hex, ok := tok.Hex(); ok {
			byValue[hex] = append(byValue[hex], path)
		}
	}

	values := make([]string, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Strings(values)

	var issues []Issue
	for _, v := range values {
		paths := byValue[v]
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     paths[0],
			Message:  fmt.Sprintf("color %s shared by %s", v, strings.Join(paths, ", ")),
		})
	}
	return issues
}

// CheckDarkParity verifies that the dark document's key set equals the light
// document's key set and that matching paths declare the same token type.
// Both missing keys and type mismatches are errors.
func CheckDarkParity(light, dark *token.Document) []Issue {
	var issues []Issue

	for _, path := range light.Paths() {
		lightTok, _ := light.Get(path)
		darkTok, ok := dark.Get(path)
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "missing from dark document",
			})
			continue
		}
		if darkTok.Type != lightTok.Type {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("type %q in dark document, %q in light", darkTok.Type, lightTok.Type),
			})
		}
	}

	for _, path := range dark.Paths() {
		if _, ok := light.Get(path); !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "present in dark document but not in light",
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue carries error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
