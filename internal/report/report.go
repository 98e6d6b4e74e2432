// Package report renders analysis results for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reweave/reweave/internal/palette"
	"github.com/reweave/reweave/internal/pipeline"
	"github.com/reweave/reweave/internal/score"
	"github.com/reweave/reweave/internal/typeset"
	"github.com/reweave/reweave/internal/wcag"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	swatchStyles = map[bool]lipgloss.Style{
		false: lipgloss.NewStyle(),
		true:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
	}
)

const barWidth = 20

// Render writes the full analysis report. verbose adds per-pair contrast
// detail.
func Render(w io.Writer, result *pipeline.Result, verbose bool) {
	fmt.Fprintln(w, titleStyle.Render("Design Token Analysis"))

	renderPalette(w, result.Palette)
	renderTypography(w, result.Type)
	renderSpacing(w, result)
	renderAccessibility(w, result, verbose)
	renderScore(w, result.Score)
}

func renderPalette(w io.Writer, sys *palette.System) {
	fmt.Fprintln(w, sectionStyle.Render("Palette"))
	fmt.Fprintf(w, "  %-10s %s\n", "primary", swatch(sys.Primary))
	fmt.Fprintf(w, "  %-10s %s\n", "secondary", swatch(sys.Secondary))
	for _, role := range palette.AlertRoles {
		fmt.Fprintf(w, "  %-10s %s\n", role, swatch(sys.Semantic[role]))
	}
	observed := 0
	for _, entry := range sys.Neutral {
		if !entry.Synthesized {
			observed++
		}
	}
	fmt.Fprintf(w, "  neutral ramp: %d steps (%d observed), from %d samples in %d groups\n",
		len(palette.NeutralSteps), observed, sys.SampleCount, len(sys.Groups))
}

func swatch(entry palette.Entry) string {
	label := entry.Hex
	if entry.Synthesized {
		label += " (synthesized)"
	}
	return swatchStyles[entry.Synthesized].Render(label)
}

func renderTypography(w io.Writer, scale *typeset.Scale) {
	fmt.Fprintln(w, sectionStyle.Render("Typography"))
	fmt.Fprintf(w, "  ratio %.3f over %d distinct sizes\n", scale.Ratio, scale.DistinctSizes)
	for _, level := range typeset.Levels {
		style := scale.Levels[level]
		fmt.Fprintf(w, "  %-6s %5.1fpx  lh %.2f  weight %d\n", level, style.Size, style.LineHeight, style.Weight)
	}
	if len(scale.Stacks) > 0 {
		fmt.Fprintf(w, "  stacks: %s\n", mutedStyle.Render(strings.Join(scale.Stacks, " | ")))
	}
}

func renderSpacing(w io.Writer, result *pipeline.Result) {
	grid := result.Spacing
	fmt.Fprintln(w, sectionStyle.Render("Spacing"))

	values := make([]string, len(grid.Values))
	for i, v := range grid.Values {
		values[i] = fmt.Sprintf("%g", v)
	}
	fmt.Fprintf(w, "  base %dpx, scale [%s], regularity %.0f%%\n",
		grid.BaseUnit, strings.Join(values, " "), grid.Regularity*100)

	var bps []string
	for _, bp := range grid.Breakpoints {
		label := fmt.Sprintf("%s=%gpx", bp.Name, bp.Width)
		if !bp.Observed {
			label = mutedStyle.Render(label)
		}
		bps = append(bps, label)
	}
	fmt.Fprintf(w, "  breakpoints: %s\n", strings.Join(bps, " "))
}

func renderAccessibility(w io.Writer, result *pipeline.Result, verbose bool) {
	fmt.Fprintln(w, sectionStyle.Render("Accessibility"))

	s := result.Summary
	line := fmt.Sprintf("  contrast pairs: %d/%d passing", s.PassedPairs, s.TotalPairs)
	if s.PassedPairs == s.TotalPairs {
		fmt.Fprintln(w, passStyle.Render(line))
	} else {
		fmt.Fprintln(w, failStyle.Render(line))
	}

	if verbose {
		for _, pr := range result.Pairs {
			mark := passStyle.Render("✔")
			if !pr.Passed {
				mark = failStyle.Render("✖")
			}
			fmt.Fprintf(w, "  %s %s on %s  %.2f:1 (needs %.1f:1)\n",
				mark, pr.Foreground, pr.Background, pr.Ratio, pr.Threshold)
		}
	}

	for _, issue := range result.Issues {
		style := warnStyle
		if issue.Severity == wcag.SeverityError {
			style = failStyle
		}
		fmt.Fprintf(w, "  %s\n", style.Render(fmt.Sprintf("[%s] %s: %s", issue.Severity, issue.Path, issue.Message)))
	}
}

func renderScore(w io.Writer, s *score.Score) {
	fmt.Fprintln(w, sectionStyle.Render("Quality"))
	fmt.Fprintf(w, "  overall %s\n", gradeStyle(s.Overall).Render(fmt.Sprintf("%.1f%%", s.Overall*100)))

	cats := make([]score.Category, 0, len(s.Breakdown))
	cats = append(cats, score.Categories...)
	sort.SliceStable(cats, func(i, j int) bool {
		return s.Breakdown[cats[i]] < s.Breakdown[cats[j]]
	})
	for _, cat := range cats {
		sub := s.Breakdown[cat]
		fmt.Fprintf(w, "  %-26s %s %.0f%%\n", cat, bar(sub), sub*100)
	}

	if len(s.Recommendations) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Recommendations"))
		for i, rec := range s.Recommendations {
			fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
		}
	}
}

func gradeStyle(v float64) lipgloss.Style {
	switch {
	case v >= 0.8:
		return passStyle
	case v >= 0.6:
		return warnStyle
	default:
		return failStyle
	}
}

func bar(v float64) string {
	filled := int(v*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return gradeStyle(v).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
