package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/cursortrail/internal/color"
)

// fileConfig mirrors Config for file decoding. Pointer fields distinguish
// "absent" from zero so file values overlay the defaults.
type fileConfig struct {
	TrailLength       *int       `toml:"trail_length" yaml:"trail_length"`
	Character         *string    `toml:"character" yaml:"character"`
	DebounceMS        *int       `toml:"debounce_ms" yaml:"debounce_ms"`
	ActiveBufferOnly  *bool      `toml:"active_buffer_only" yaml:"active_buffer_only"`
	TrailIncludes     *string    `toml:"trail_includes" yaml:"trail_includes"`
	ExcludedBuftypes  []string   `toml:"excluded_buftypes" yaml:"excluded_buftypes"`
	ExcludedFiletypes []string   `toml:"excluded_filetypes" yaml:"excluded_filetypes"`
	Color             *string    `toml:"color" yaml:"color"`
	ColorHSL          *hslConfig `toml:"color_hsl" yaml:"color_hsl"`
}

type hslConfig struct {
	H float64 `toml:"h" yaml:"h"`
	S float64 `toml:"s" yaml:"s"`
	L float64 `toml:"l" yaml:"l"`
}

// Load reads a configuration file and overlays it on the defaults. The
// format is chosen by extension: .toml, .yaml, or .yml. A missing file is
// not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	fc.apply(&cfg)
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.TrailLength != nil {
		cfg.TrailLength = *fc.TrailLength
	}
	if fc.Character != nil {
		cfg.Character = *fc.Character
	}
	if fc.DebounceMS != nil {
		cfg.DebounceMS = *fc.DebounceMS
	}
	if fc.ActiveBufferOnly != nil {
		cfg.ActiveBufferOnly = *fc.ActiveBufferOnly
	}
	if fc.TrailIncludes != nil {
		cfg.TrailIncludes = TrailIncludes(*fc.TrailIncludes)
	}
	if fc.ExcludedBuftypes != nil {
		cfg.ExcludedBuftypes = fc.ExcludedBuftypes
	}
	if fc.ExcludedFiletypes != nil {
		cfg.ExcludedFiletypes = fc.ExcludedFiletypes
	}

	// color_hsl wins over color when both are present.
	switch {
	case fc.ColorHSL != nil:
		cfg.Color = color.Input{HSL: &color.HSL{H: fc.ColorHSL.H, S: fc.ColorHSL.S, L: fc.ColorHSL.L}}
	case fc.Color != nil:
		cfg.Color = color.Input{Name: *fc.Color}
	}
}
