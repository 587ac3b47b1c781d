// Package color implements the color math behind the fading trail: RGB/HSL
// conversions, hex parsing, and gradient generation from a single base color.
//
// Everything here is pure; invalid input is reported as an error, never a
// panic.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is wrapped by all parse and normalization failures.
var ErrInvalidColor = errors.New("invalid color")

// Color is a true-color RGB value.
type Color struct {
	R, G, B uint8
}

// FromRGB creates a color from RGB components.
func FromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses a hex color string. Supported formats: "#rgb", "#rrggbb",
// with or without the leading "#". Shorthand digits are expanded by doubling.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")

	switch len(s) {
	case 3:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(s[i])+string(s[i]), 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			c[i] = uint8(v)
		}
		return Color{R: c[0], G: c[1], B: c[2]}, nil

	case 6:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			c[i] = uint8(v)
		}
		return Color{R: c[0], G: c[1], B: c[2]}, nil

	default:
		return Color{}, fmt.Errorf("%w: bad length %q", ErrInvalidColor, hex)
	}
}

// IsHex reports whether s looks like a hex color string ("#rgb", "#rrggbb",
// with or without the "#"). Strings that fail this test are treated as
// symbolic group names during normalization.
func IsHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// Hex returns the lowercase "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Equals reports component-wise equality.
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}
