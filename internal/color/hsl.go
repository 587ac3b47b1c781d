package color

import (
	"fmt"
	"math"
)

// HSL is a color in hue/saturation/lightness form. Hue is in degrees
// [0, 360]; saturation and lightness are percentages [0, 100]. This is the
// canonical internal representation: configuration colors are normalized to
// HSL once, and all gradient math happens here.
type HSL struct {
	H float64
	S float64
	L float64
}

// Validate checks each component against its documented range.
func (h HSL) Validate() error {
	if h.H < 0 || h.H > 360 {
		return fmt.Errorf("%w: hue %v out of range [0, 360]", ErrInvalidColor, h.H)
	}
	if h.S < 0 || h.S > 100 {
		return fmt.Errorf("%w: saturation %v out of range [0, 100]", ErrInvalidColor, h.S)
	}
	if h.L < 0 || h.L > 100 {
		return fmt.Errorf("%w: lightness %v out of range [0, 100]", ErrInvalidColor, h.L)
	}
	return nil
}

// Color converts to RGB using the standard piecewise algorithm. Components
// are rounded to the nearest integer. Achromatic input (S == 0) short-circuits
// to a gray.
func (h HSL) Color() Color {
	s := h.S / 100
	l := h.L / 100

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hue := h.H / 360

	r := hueToChannel(p, q, hue+1.0/3)
	g := hueToChannel(p, q, hue)
	b := hueToChannel(p, q, hue-1.0/3)

	return Color{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HSL converts to hue/saturation/lightness using the max/min-channel
// algorithm. When max == min the color is achromatic: hue and saturation are
// both zero.
func (c Color) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	l := (mx + mn) / 2

	if mx == mn {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := mx - mn
	var s float64
	if l > 0.5 {
		s = d / (2 - mx - mn)
	} else {
		s = d / (mx + mn)
	}

	var h float64
	switch mx {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: h, S: s * 100, L: l * 100}
}

// Gradient produces length hex colors fading from base (index 0, brightest)
// down to a dark floor (last index). Hue and saturation stay constant; only
// lightness is interpolated. The floor is max(5, base lightness * 0.1), so a
// dark base still produces a visible ramp.
func Gradient(base HSL, length int) []string {
	if length < 1 {
		return nil
	}

	minL := math.Max(5, base.L*0.1)
	out := make([]string, length)
	for i := 0; i < length; i++ {
		t := 0.0
		if length > 1 {
			t = float64(i) / float64(length-1)
		}
		l := base.L*(1-t) + minL*t
		out[i] = HSL{H: base.H, S: base.S, L: l}.Color().Hex()
	}
	return out
}
