package config

import (
	"strings"
	"testing"

	"github.com/dshills/cursortrail/internal/color"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{
			name:   "zero trail length",
			modify: func(c *Config) { c.TrailLength = 0 },
			fields: []string{"trail_length"},
		},
		{
			name:   "negative trail length",
			modify: func(c *Config) { c.TrailLength = -3 },
			fields: []string{"trail_length"},
		},
		{
			name:   "negative debounce",
			modify: func(c *Config) { c.DebounceMS = -1 },
			fields: []string{"debounce_ms"},
		},
		{
			name:   "empty character",
			modify: func(c *Config) { c.Character = "" },
			fields: []string{"character"},
		},
		{
			name:   "multi-rune character",
			modify: func(c *Config) { c.Character = "ab" },
			fields: []string{"character"},
		},
		{
			name:   "bad trail_includes",
			modify: func(c *Config) { c.TrailIncludes = "both" },
			fields: []string{"trail_includes"},
		},
		{
			name:   "out of range HSL color",
			modify: func(c *Config) { c.Color = color.Input{HSL: &color.HSL{H: 400, S: 50, L: 50}} },
			fields: []string{"color"},
		},
		{
			name:   "empty color",
			modify: func(c *Config) { c.Color = color.Input{} },
			fields: []string{"color"},
		},
		{
			name: "collects every failure",
			modify: func(c *Config) {
				c.TrailLength = 0
				c.DebounceMS = -5
				c.Character = ""
			},
			fields: []string{"trail_length", "debounce_ms", "character"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate returned nil, want error")
			}
			for _, f := range tt.fields {
				if !strings.Contains(err.Error(), f) {
					t.Errorf("error %q does not mention field %q", err, f)
				}
			}
		})
	}
}

func TestValidateMultibyteGlyph(t *testing.T) {
	cfg := Default()
	cfg.Character = "◆"
	if err := cfg.Validate(); err != nil {
		t.Errorf("single multibyte glyph rejected: %v", err)
	}
}

func TestExcluded(t *testing.T) {
	cfg := Default()
	cfg.ExcludedBuftypes = []string{"terminal", "nofile"}
	cfg.ExcludedFiletypes = []string{"help"}

	tests := []struct {
		buftype  string
		filetype string
		want     bool
	}{
		{"terminal", "", true},
		{"nofile", "go", true},
		{"", "help", true},
		{"", "go", false},
		{"quickfix", "markdown", false},
	}
	for _, tt := range tests {
		if got := cfg.Excluded(tt.buftype, tt.filetype); got != tt.want {
			t.Errorf("Excluded(%q, %q) = %v, want %v", tt.buftype, tt.filetype, got, tt.want)
		}
	}
}

func TestValidationErrorsCollect(t *testing.T) {
	errs := &ValidationErrors{}
	if errs.HasErrors() {
		t.Error("fresh collector reports errors")
	}
	if errs.AsError() != nil {
		t.Error("empty collector yields a non-nil error")
	}

	errs.Add("alpha", "is wrong")
	errs.AddWithValue("beta", "too big", 99)
	if errs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", errs.Len())
	}

	err := errs.AsError()
	if err == nil {
		t.Fatal("collector with entries yields nil")
	}
	for _, want := range []string{"alpha", "beta"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if errs.Errors[1].Value != 99 {
		t.Errorf("Value = %v, want 99", errs.Errors[1].Value)
	}
}
