// Package extract samples design observations from static HTML: inline
// styles, embedded stylesheets, and structural UI patterns. It performs no
// network fetches and no script evaluation.
package extract

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/reweave/reweave/internal/sample"
	"github.com/reweave/reweave/pkg/errors"
)

var (
	declRe = regexp.MustCompile(`([a-zA-Z-]+)\s*:\s*([^;}]+)`)
	pxRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)px`)
	// colorValueRe matches the textual color forms the palette parser
	// understands.
	colorValueRe = regexp.MustCompile(`#[0-9a-fA-F]{3,6}\b|rgba?\([^)]*\)|hsla?\([^)]*\)`)
)

// colorProperties maps CSS color properties to palette hints.
var colorProperties = map[string]string{
	"color":            "text",
	"background":       "background",
	"background-color": "background",
	"border-color":     "border",
	"outline-color":    "border",
	"fill":             "accent",
	"stroke":           "accent",
}

// spacingProperties are the box-model properties sampled for grid
// inference.
var spacingProperties = map[string]bool{
	"margin":         true,
	"margin-top":     true,
	"margin-right":   true,
	"margin-bottom":  true,
	"margin-left":    true,
	"padding":        true,
	"padding-top":    true,
	"padding-right":  true,
	"padding-bottom": true,
	"padding-left":   true,
	"gap":            true,
}

// patternSelectors map DOM structure onto named UI patterns. Confidence
// reflects how unambiguous the selector is.
var patternSelectors = []struct {
	selector   string
	pattern    string
	confidence float64
}{
	{"nav", "navigation", 0.95},
	{"header", "header", 0.9},
	{"footer", "footer", 0.9},
	{"form", "form", 0.9},
	{"[class*=card]", "card", 0.75},
	{"[class*=hero]", "hero", 0.75},
	{"[class*=grid]", "grid", 0.7},
	{"table", "table", 0.85},
	{"button, [class*=btn]", "button", 0.8},
}

// FromHTML samples a bundle from one static HTML page. name is used only
// in error reporting.
func FromHTML(r io.Reader, name string) (*sample.Bundle, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.NewParseError(name, 0, err)
	}

	bundle := &sample.Bundle{}

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		collectDeclarations(bundle, style)
	})

	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		collectDeclarations(bundle, sel.Text())
	})

	collectPatterns(bundle, doc)
	return bundle, nil
}

// collectDeclarations splits a style attribute or stylesheet body into
// rule blocks so font triples stay paired per rule.
func collectDeclarations(bundle *sample.Bundle, css string) {
	for _, block := range strings.Split(css, "}") {
		collectBlock(bundle, block)
	}
}

// collectBlock routes each property:value pair in one rule block into the
// right sample slice.
func collectBlock(bundle *sample.Bundle, css string) {
	var pendingFont sample.FontSample

	for _, m := range declRe.FindAllStringSubmatch(css, -1) {
		prop := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])

		if hint, ok := colorProperties[prop]; ok {
			for _, raw := range colorValueRe.FindAllString(value, -1) {
				bundle.Colors = append(bundle.Colors, sample.ColorSample{Value: raw, Hint: hint})
			}
			continue
		}

		if spacingProperties[prop] {
			for _, px := range pxValues(value) {
				bundle.Spacing = append(bundle.Spacing, px)
			}
			continue
		}

		switch prop {
		case "font-size":
			if px, ok := firstPx(value); ok {
				pendingFont.Size = px
			}
		case "font-family":
			pendingFont.Family = value
		case "font-weight":
			if w, err := strconv.Atoi(value); err == nil {
				pendingFont.Weight = w
			} else if strings.EqualFold(value, "bold") {
				pendingFont.Weight = 700
			}
		case "width", "max-width":
			if px, ok := firstPx(value); ok && px >= 320 {
				bundle.Widths = append(bundle.Widths, px)
			}
		}
	}

	if pendingFont.Size > 0 || pendingFont.Family != "" {
		bundle.Fonts = append(bundle.Fonts, pendingFont)
	}
}

func collectPatterns(bundle *sample.Bundle, doc *goquery.Document) {
	for _, ps := range patternSelectors {
		count := doc.Find(ps.selector).Length()
		if count == 0 {
			continue
		}
		bundle.Patterns = append(bundle.Patterns, sample.Pattern{
			Type:       ps.pattern,
			Confidence: ps.confidence,
			Properties: map[string]any{"count": count},
		})
	}
}

func pxValues(value string) []float64 {
	var out []float64
	for _, m := range pxRe.FindAllStringSubmatch(value, -1) {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil && f > 0 {
			out = append(out, f)
		}
	}
	return out
}

func firstPx(value string) (float64, bool) {
	m := pxRe.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
