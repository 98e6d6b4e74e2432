package token

import (
	"fmt"
	"regexp"
	"strings"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

// Type enumerates the closed set of token value kinds. A token's value is
// only ever constructed through the typed constructors below, so a color
// value can never be mistaken for a dimension value.
type Type string

const (
	TypeColor        Type = "color"
	TypeDimension    Type = "dimension"
	TypeFontFamily   Type = "fontFamily"
	TypeFontSize     Type = "fontSize"
	TypeFontWeight   Type = "fontWeight"
	TypeLineHeight   Type = "lineHeight"
	TypeBorderRadius Type = "borderRadius"
	TypeShadow       Type = "shadow"
	TypeDuration     Type = "duration"
)

var knownTypes = map[Type]struct{}{
	TypeColor:        {},
	TypeDimension:    {},
	TypeFontFamily:   {},
	TypeFontSize:     {},
	TypeFontWeight:   {},
	TypeLineHeight:   {},
	TypeBorderRadius: {},
	TypeShadow:       {},
	TypeDuration:     {},
}

// Known reports whether t is a member of the token type enumeration.
func (t Type) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Token is a canonical, typed design value. Tokens are immutable once
// emitted; the zero Token is invalid.
type Token struct {
	Type        Type
	Value       any
	Description string
}

// Color constructs a color token from a normalized hex value.
func Color(hex string, description string) (Token, error) {
	if !hexPattern.MatchString(hex) {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("invalid hex color %q", hex), nil)
	}
	return Token{Type: TypeColor, Value: strings.ToUpper(hex), Description: description}, nil
}

// MustColor constructs a color token and panics on an invalid hex value.
// Use only for values the caller produced itself; a panic here is a logic
// bug, not bad input.
func MustColor(hex string, description string) Token {
	tok, err := Color(hex, description)
	if err != nil {
		panic(err)
	}
	return tok
}

// Dimension constructs a pixel dimension token.
func Dimension(px float64, description string) (Token, error) {
	if px < 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("negative dimension %v", px), nil)
	}
	return Token{Type: TypeDimension, Value: px, Description: description}, nil
}

// FontFamily constructs a font stack token from an ordered family list.
func FontFamily(stack []string, description string) (Token, error) {
	if len(stack) == 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", "empty font stack", nil)
	}
	return Token{Type: TypeFontFamily, Value: strings.Join(stack, ", "), Description: description}, nil
}

// FontSize constructs a font size token in pixels.
func FontSize(px float64, description string) (Token, error) {
	if px <= 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("non-positive font size %v", px), nil)
	}
	return Token{Type: TypeFontSize, Value: px, Description: description}, nil
}

// FontWeight constructs a font weight token (100..900).
func FontWeight(weight int, description string) (Token, error) {
	if weight < 100 || weight > 900 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("font weight %d outside 100..900", weight), nil)
	}
	return Token{Type: TypeFontWeight, Value: weight, Description: description}, nil
}

// LineHeight constructs a unitless line-height token.
func LineHeight(ratio float64, description string) (Token, error) {
	if ratio <= 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("non-positive line height %v", ratio), nil)
	}
	return Token{Type: TypeLineHeight, Value: ratio, Description: description}, nil
}

// BorderRadius constructs a border radius token in pixels.
func BorderRadius(px float64, description string) (Token, error) {
	if px < 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("negative radius %v", px), nil)
	}
	return Token{Type: TypeBorderRadius, Value: px, Description: description}, nil
}

// Shadow constructs a box-shadow token from its CSS shorthand.
func Shadow(css string, description string) (Token, error) {
	if strings.TrimSpace(css) == "" {
		return Token{}, reweaveerrors.NewValidationError("token.value", "empty shadow", nil)
	}
	return Token{Type: TypeShadow, Value: css, Description: description}, nil
}

// Duration constructs a duration token in milliseconds.
func Duration(ms float64, description string) (Token, error) {
	if ms < 0 {
		return Token{}, reweaveerrors.NewValidationError("token.value", fmt.Sprintf("negative duration %v", ms), nil)
	}
	return Token{Type: TypeDuration, Value: ms, Description: description}, nil
}

// Hex returns the hex value of a color token.
func (t Token) Hex() (string, bool) {
	if t.Type != TypeColor {
		return "", false
	}
	s, ok := t.Value.(string)
	return s, ok
}

// MustHex returns the hex value of a color token and panics for any other
// type. Callers use it where the token type is already established.
func (t Token) MustHex() string {
	hex, ok := t.Hex()
	if !ok {
		panic(fmt.Sprintf("token: MustHex on %s token", t.Type))
	}
	return hex
}

// Px returns the numeric pixel value of a dimension-like token.
func (t Token) Px() (float64, bool) {
	switch t.Type {
	case TypeDimension, TypeFontSize, TypeBorderRadius:
		f, ok := t.Value.(float64)
		return f, ok
	default:
		return 0, false
	}
}

// Validate checks that the token's value is syntactically valid for its
// declared type.
func (t Token) Validate() error {
	if !t.Type.Known() {
		return reweaveerrors.NewValidationError("token.type", fmt.Sprintf("unknown token type %q", t.Type), nil)
	}

	switch t.Type {
	case TypeColor:
		s, ok := t.Value.(string)
		if !ok || !hexPattern.MatchString(s) {
			return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("invalid color value %v", t.Value), nil)
		}
	case TypeFontFamily, TypeShadow:
		s, ok := t.Value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("invalid %s value %v", t.Type, t.Value), nil)
		}
	case TypeFontWeight:
		switch v := t.Value.(type) {
		case int:
			if v < 100 || v > 900 {
				return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("font weight %d outside 100..900", v), nil)
			}
		case float64:
			if v < 100 || v > 900 {
				return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("font weight %v outside 100..900", v), nil)
			}
		default:
			return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("invalid font weight %v", t.Value), nil)
		}
	default:
		f, ok := t.Value.(float64)
		if !ok || f < 0 {
			return reweaveerrors.NewValidationError("token.value", fmt.Sprintf("invalid %s value %v", t.Type, t.Value), nil)
		}
	}

	return nil
}
