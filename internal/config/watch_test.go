package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trail.toml")
	if err := os.WriteFile(path, []byte("trail_length = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		loaded <- cfg
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("trail_length = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-loaded:
		if cfg.TrailLength != 7 {
			t.Errorf("TrailLength = %d, want 7", cfg.TrailLength)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload never fired")
	}
}

func TestWatchSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trail.toml")
	if err := os.WriteFile(path, []byte("trail_length = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		loaded <- cfg
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	// Write to a temp name then rename over the target, the way editors save.
	tmp := filepath.Join(dir, ".trail.toml.swp")
	if err := os.WriteFile(tmp, []byte("trail_length = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-loaded:
		if cfg.TrailLength != 9 {
			t.Errorf("TrailLength = %d, want 9", cfg.TrailLength)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload never fired after rename-replace")
	}
}

func TestWatchCloseStopsReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trail.toml")
	if err := os.WriteFile(path, []byte("trail_length = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config, err error) {
		loaded <- cfg
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	if err := os.WriteFile(path, []byte("trail_length = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}

	select {
	case cfg := <-loaded:
		t.Errorf("reload fired after Close: %+v", cfg)
	case <-time.After(100 * time.Millisecond):
	}
}
