package color

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestHSLToColorAchromatic(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want Color
	}{
		{"black", HSL{H: 0, S: 0, L: 0}, Color{0, 0, 0}},
		{"white", HSL{H: 0, S: 0, L: 100}, Color{255, 255, 255}},
		{"mid gray", HSL{H: 120, S: 0, L: 50}, Color{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hsl.Color(); !got.Equals(tt.want) {
				t.Errorf("%+v.Color() = %v, want %v", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestHSLToColorPrimaries(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want Color
	}{
		{"red", HSL{H: 0, S: 100, L: 50}, Color{255, 0, 0}},
		{"green", HSL{H: 120, S: 100, L: 50}, Color{0, 255, 0}},
		{"blue", HSL{H: 240, S: 100, L: 50}, Color{0, 0, 255}},
		{"yellow", HSL{H: 60, S: 100, L: 50}, Color{255, 255, 0}},
		{"cyan", HSL{H: 180, S: 100, L: 50}, Color{0, 255, 255}},
		{"magenta", HSL{H: 300, S: 100, L: 50}, Color{255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hsl.Color(); !got.Equals(tt.want) {
				t.Errorf("%+v.Color() = %v, want %v", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestColorHSLAchromatic(t *testing.T) {
	got := Color{200, 200, 200}.HSL()
	if got.H != 0 || got.S != 0 {
		t.Errorf("achromatic HSL should have h=0 s=0, got %+v", got)
	}
}

// TestHSLRoundTrip checks rgb_to_hsl(hsl_to_rgb(h,s,l)) reproduces the input
// within one unit per component across a grid of valid values.
func TestHSLRoundTrip(t *testing.T) {
	for h := 0.0; h < 360; h += 30 {
		for s := 40.0; s <= 100; s += 20 {
			for l := 30.0; l <= 70; l += 10 {
				in := HSL{H: h, S: s, L: l}
				out := in.Color().HSL()

				if math.Abs(out.H-in.H) > 1 && math.Abs(out.H-in.H) < 359 {
					t.Fatalf("hue drift: %+v -> %+v", in, out)
				}
				if math.Abs(out.S-in.S) > 1 {
					t.Fatalf("saturation drift: %+v -> %+v", in, out)
				}
				if math.Abs(out.L-in.L) > 1 {
					t.Fatalf("lightness drift: %+v -> %+v", in, out)
				}
			}
		}
	}
}

// TestHSLAgainstColorful cross-checks the conversion against go-colorful.
func TestHSLAgainstColorful(t *testing.T) {
	for h := 0.0; h < 360; h += 45 {
		for s := 0.0; s <= 100; s += 25 {
			for l := 0.0; l <= 100; l += 25 {
				ours := HSL{H: h, S: s, L: l}.Color()
				ref := colorful.Hsl(h, s/100, l/100)

				refR := math.Round(ref.R * 255)
				refG := math.Round(ref.G * 255)
				refB := math.Round(ref.B * 255)

				if math.Abs(float64(ours.R)-refR) > 1 ||
					math.Abs(float64(ours.G)-refG) > 1 ||
					math.Abs(float64(ours.B)-refB) > 1 {
					t.Errorf("hsl(%v,%v,%v): ours %v, colorful (%v,%v,%v)",
						h, s, l, ours, refR, refG, refB)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		hsl     HSL
		wantErr bool
	}{
		{"valid", HSL{H: 180, S: 50, L: 50}, false},
		{"boundary low", HSL{H: 0, S: 0, L: 0}, false},
		{"boundary high", HSL{H: 360, S: 100, L: 100}, false},
		{"hue too big", HSL{H: 361, S: 50, L: 50}, true},
		{"negative hue", HSL{H: -1, S: 50, L: 50}, true},
		{"saturation too big", HSL{H: 0, S: 101, L: 50}, true},
		{"lightness too big", HSL{H: 0, S: 50, L: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hsl.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.hsl, err, tt.wantErr)
			}
		})
	}
}

func TestGradientSingleStep(t *testing.T) {
	base := HSL{H: 200, S: 80, L: 60}
	g := Gradient(base, 1)

	if len(g) != 1 {
		t.Fatalf("expected 1 color, got %d", len(g))
	}
	if want := base.Color().Hex(); g[0] != want {
		t.Errorf("single-step gradient = %q, want base color %q", g[0], want)
	}
}

func TestGradientLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 50} {
		g := Gradient(HSL{H: 10, S: 90, L: 70}, n)
		if len(g) != n {
			t.Errorf("Gradient length %d: got %d colors", n, len(g))
		}
	}
}

func TestGradientZeroOrNegative(t *testing.T) {
	if g := Gradient(HSL{H: 10, S: 90, L: 70}, 0); g != nil {
		t.Errorf("Gradient(.., 0) = %v, want nil", g)
	}
	if g := Gradient(HSL{H: 10, S: 90, L: 70}, -3); g != nil {
		t.Errorf("Gradient(.., -3) = %v, want nil", g)
	}
}

// TestGradientFades checks lightness is non-increasing from brightest to
// darkest and that the floor respects max(5, 0.1*base).
func TestGradientFades(t *testing.T) {
	base := HSL{H: 220, S: 70, L: 80}
	g := Gradient(base, 10)

	prev := math.Inf(1)
	for i, hex := range g {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("gradient produced bad hex %q: %v", hex, err)
		}
		l := c.HSL().L
		if l > prev+1 {
			t.Errorf("lightness increases at step %d: %v -> %v", i, prev, l)
		}
		prev = l
	}

	first, _ := ParseHex(g[0])
	last, _ := ParseHex(g[len(g)-1])
	if math.Abs(first.HSL().L-base.L) > 1 {
		t.Errorf("first step lightness %v, want ~%v", first.HSL().L, base.L)
	}
	if wantMin := math.Max(5, base.L*0.1); math.Abs(last.HSL().L-wantMin) > 1 {
		t.Errorf("last step lightness %v, want ~%v", last.HSL().L, wantMin)
	}
}

func TestGradientDarkBaseFloor(t *testing.T) {
	// 10% of a very dark base would vanish; the floor keeps it at 5.
	g := Gradient(HSL{H: 0, S: 50, L: 8}, 5)
	last, _ := ParseHex(g[len(g)-1])
	if l := last.HSL().L; math.Abs(l-5) > 1.5 {
		t.Errorf("dark-base floor: last lightness %v, want ~5", l)
	}
}
