package color

import (
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{"full form", "#1a2b3c", Color{R: 0x1a, G: 0x2b, B: 0x3c}},
		{"full form no hash", "1a2b3c", Color{R: 0x1a, G: 0x2b, B: 0x3c}},
		{"short form", "#abc", Color{R: 0xaa, G: 0xbb, B: 0xcc}},
		{"short form no hash", "abc", Color{R: 0xaa, G: 0xbb, B: 0xcc}},
		{"white", "#ffffff", Color{R: 255, G: 255, B: 255}},
		{"black", "#000", Color{R: 0, G: 0, B: 0}},
		{"uppercase", "#FF8800", Color{R: 255, G: 0x88, B: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.input, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	inputs := []string{"", "#", "#ff", "#ffff", "#fffff", "#fffffff", "#gghhii", "#xyz", "hello"}

	for _, input := range inputs {
		_, err := ParseHex(input)
		if err == nil {
			t.Errorf("ParseHex(%q) should fail", input)
		}
		if !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error should wrap ErrInvalidColor, got %v", input, err)
		}
	}
}

func TestHexLowercaseZeroPadded(t *testing.T) {
	c := Color{R: 0x0a, G: 0xff, B: 0x00}
	if got := c.Hex(); got != "#0aff00" {
		t.Errorf("Hex() = %q, want %q", got, "#0aff00")
	}
}

func TestHexRoundTrip(t *testing.T) {
	// A spread of channel values including the byte boundaries.
	values := []uint8{0, 1, 15, 16, 17, 100, 127, 128, 200, 254, 255}

	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := Color{R: r, G: g, B: b}
				back, err := ParseHex(c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%q) error: %v", c.Hex(), err)
				}
				if !back.Equals(c) {
					t.Fatalf("round trip %v -> %q -> %v", c, c.Hex(), back)
				}
			}
		}
	}
}

func TestIsHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#ffffff", true},
		{"ffffff", true},
		{"#abc", true},
		{"ABC", true},
		{"#ab", false},
		{"Comment", false},
		{"Search", false},
		{"", false},
		{"#gggggg", false},
	}

	for _, tt := range tests {
		if got := IsHex(tt.input); got != tt.want {
			t.Errorf("IsHex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
