package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/cursortrail/internal/color"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.TrailLength != Default().TrailLength {
		t.Errorf("TrailLength = %d, want default %d", cfg.TrailLength, Default().TrailLength)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "trail.toml", `
trail_length = 12
character = "·"
debounce_ms = 50
active_buffer_only = true
trail_includes = "current"
excluded_buftypes = ["terminal"]
excluded_filetypes = []
color = "#ff8800"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.TrailLength != 12 {
		t.Errorf("TrailLength = %d, want 12", cfg.TrailLength)
	}
	if cfg.Character != "·" {
		t.Errorf("Character = %q, want %q", cfg.Character, "·")
	}
	if cfg.DebounceMS != 50 {
		t.Errorf("DebounceMS = %d, want 50", cfg.DebounceMS)
	}
	if !cfg.ActiveBufferOnly {
		t.Error("ActiveBufferOnly = false, want true")
	}
	if cfg.TrailIncludes != IncludeCurrent {
		t.Errorf("TrailIncludes = %q, want %q", cfg.TrailIncludes, IncludeCurrent)
	}
	if len(cfg.ExcludedBuftypes) != 1 || cfg.ExcludedBuftypes[0] != "terminal" {
		t.Errorf("ExcludedBuftypes = %v", cfg.ExcludedBuftypes)
	}
	if len(cfg.ExcludedFiletypes) != 0 {
		t.Errorf("ExcludedFiletypes = %v, want explicit empty list", cfg.ExcludedFiletypes)
	}
	if cfg.Color.Name != "#ff8800" || cfg.Color.HSL != nil {
		t.Errorf("Color = %+v, want hex name", cfg.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "trail.yaml", `
trail_length: 4
color_hsl:
  h: 210
  s: 80
  l: 60
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.TrailLength != 4 {
		t.Errorf("TrailLength = %d, want 4", cfg.TrailLength)
	}
	// Untouched fields keep their defaults.
	if cfg.DebounceMS != Default().DebounceMS {
		t.Errorf("DebounceMS = %d, want default %d", cfg.DebounceMS, Default().DebounceMS)
	}
	if cfg.Color.HSL == nil {
		t.Fatal("Color.HSL = nil, want parsed HSL")
	}
	want := color.HSL{H: 210, S: 80, L: 60}
	if *cfg.Color.HSL != want {
		t.Errorf("Color.HSL = %+v, want %+v", *cfg.Color.HSL, want)
	}
}

func TestLoadHSLWinsOverName(t *testing.T) {
	path := writeFile(t, "trail.toml", `
color = "#123456"

[color_hsl]
h = 10
s = 20
l = 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Color.HSL == nil {
		t.Fatal("color_hsl must win over color")
	}
	if cfg.Color.HSL.H != 10 {
		t.Errorf("H = %v, want 10", cfg.Color.HSL.H)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "trail.json", `{"trail_length": 3}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unsupported format")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeFile(t, "trail.toml", `trail_length = = 3`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}
