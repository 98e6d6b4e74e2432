// Package palette normalizes raw color observations into a canonical,
// role-assigned color system with an accessible dark-mode mirror.
package palette

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*([\d.]+%?)\s*[, ]\s*([\d.]+%?)\s*[, ]\s*([\d.]+%?)\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
	hslPattern = regexp.MustCompile(`^hsla?\(\s*([\d.]+)(?:deg)?\s*[, ]\s*([\d.]+)%\s*[, ]\s*([\d.]+)%\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
)

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
	"gray":  "#808080",
	"grey":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// ParseColor converts a textual color in hex, functional rgb()/hsl(), or a
// small named set into a color value. Unsupported or malformed inputs
// return ok=false; callers skip them rather than failing the run.
func ParseColor(raw string) (colorful.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "transparent" || s == "inherit" || s == "initial" || s == "currentcolor" || s == "none" {
		return colorful.Color{}, false
	}

	if hex, ok := namedColors[s]; ok {
		s = hex
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, okR := rgbChannel(m[1])
		g, okG := rgbChannel(m[2])
		b, okB := rgbChannel(m[3])
		if !okR || !okG || !okB {
			return colorful.Color{}, false
		}
		return colorful.Color{R: r, G: g, B: b}.Clamped(), true
	}

	if m := hslPattern.FindStringSubmatch(s); m != nil {
		h, errH := strconv.ParseFloat(m[1], 64)
		sat, errS := strconv.ParseFloat(m[2], 64)
		l, errL := strconv.ParseFloat(m[3], 64)
		if errH != nil || errS != nil || errL != nil {
			return colorful.Color{}, false
		}
		if sat > 100 || l > 100 {
			return colorful.Color{}, false
		}
		for h < 0 {
			h += 360
		}
		for h >= 360 {
			h -= 360
		}
		return colorful.Hsl(h, sat/100, l/100).Clamped(), true
	}

	return colorful.Color{}, false
}

func rgbChannel(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || pct < 0 || pct > 100 {
			return 0, false
		}
		return pct / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 255 {
		return 0, false
	}
	return v / 255, true
}
