// Package wcag implements WCAG 2.x relative-luminance contrast math and the
// structural validity checks run over whole token documents.
package wcag

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Linearize converts one sRGB channel value in [0,1] to linear light per the
// WCAG 2.x definition.
func Linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance computes the WCAG relative luminance of a color.
func RelativeLuminance(c colorful.Color) float64 {
	return 0.2126*Linearize(c.R) + 0.7152*Linearize(c.G) + 0.0722*Linearize(c.B)
}

// ContrastRatio computes the WCAG contrast ratio between two colors. The
// result is symmetric in its arguments and lies in [1, 21].
func ContrastRatio(a, b colorful.Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastHex computes the contrast ratio between two hex color strings.
// Malformed values yield ok=false.
func ContrastHex(fg, bg string) (float64, bool) {
	cf, errF := colorful.Hex(fg)
	cb, errB := colorful.Hex(bg)
	if errF != nil || errB != nil {
		return 0, false
	}
	return ContrastRatio(cf, cb), true
}
