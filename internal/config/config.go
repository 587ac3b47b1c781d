// Package config defines the extension configuration: the settings users
// tune, their defaults, validation, and loading from TOML or YAML files.
package config

import (
	"unicode/utf8"

	"github.com/dshills/cursortrail/internal/color"
)

// TrailIncludes selects whether the active cursor line itself receives a
// marker.
type TrailIncludes string

const (
	// IncludePrevious skips the current cursor line; only previously
	// visited lines are marked.
	IncludePrevious TrailIncludes = "previous"

	// IncludeCurrent marks the current cursor line as well.
	IncludeCurrent TrailIncludes = "current"
)

// Config holds the extension settings. A Config is validated and applied
// once per Setup call and treated as immutable afterwards.
type Config struct {
	// TrailLength is the maximum number of tracked positions per buffer.
	TrailLength int

	// Character is the glyph rendered at each marker.
	Character string

	// DebounceMS is the quiescence window, in milliseconds, before a cursor
	// move is committed to the trail.
	DebounceMS int

	// ActiveBufferOnly renders markers only in the focused buffer.
	ActiveBufferOnly bool

	// TrailIncludes controls marking of the active cursor line.
	TrailIncludes TrailIncludes

	// ExcludedBuftypes lists buffer types that are never tracked.
	ExcludedBuftypes []string

	// ExcludedFiletypes lists file types that are never tracked.
	ExcludedFiletypes []string

	// Color is the gradient base color: HSL, hex, or a highlight group name.
	Color color.Input
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TrailLength:      8,
		Character:        "●",
		DebounceMS:       100,
		ActiveBufferOnly: false,
		TrailIncludes:    IncludePrevious,
		ExcludedBuftypes: []string{"terminal", "nofile", "prompt"},
		ExcludedFiletypes: []string{
			"help",
		},
		Color: color.Input{Name: "#7aa2f7"},
	}
}

// Validate checks every setting and collects all failures. The color is
// checked structurally only; symbolic names need the host and are resolved
// during setup.
func (c Config) Validate() error {
	errs := &ValidationErrors{}

	if c.TrailLength < 1 {
		errs.AddWithValue("trail_length", "must be at least 1", c.TrailLength)
	}
	if c.DebounceMS < 0 {
		errs.AddWithValue("debounce_ms", "must not be negative", c.DebounceMS)
	}
	if n := utf8.RuneCountInString(c.Character); n != 1 {
		errs.AddWithValue("character", "must be a single glyph", c.Character)
	}
	switch c.TrailIncludes {
	case IncludePrevious, IncludeCurrent:
	default:
		errs.AddWithValue("trail_includes", `must be "previous" or "current"`, string(c.TrailIncludes))
	}
	if c.Color.HSL != nil {
		if err := c.Color.HSL.Validate(); err != nil {
			errs.AddWithValue("color", err.Error(), *c.Color.HSL)
		}
	} else if c.Color.Name == "" {
		errs.Add("color", "must not be empty")
	}

	return errs.AsError()
}

// Excluded reports whether a buffer with the given buftype and filetype
// matches an exclusion set.
func (c Config) Excluded(buftype, filetype string) bool {
	for _, b := range c.ExcludedBuftypes {
		if b == buftype {
			return true
		}
	}
	for _, f := range c.ExcludedFiletypes {
		if f == filetype {
			return true
		}
	}
	return false
}
