package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("missing file yielded non-zero config: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[defaults]
dpi = 300
background = "#FFFFFF"
raster = "oksvg"

[cache]
disabled = true
dir = "/tmp/svgpress-cache"

[serve]
addr = ":9090"
redis = "redis://localhost:6379/1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Defaults.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.Defaults.DPI)
	}
	if cfg.Defaults.Background != "#FFFFFF" {
		t.Errorf("Background = %q", cfg.Defaults.Background)
	}
	if cfg.Defaults.Raster != "oksvg" {
		t.Errorf("Raster = %q", cfg.Defaults.Raster)
	}
	if !cfg.Cache.Disabled || cfg.Cache.Dir != "/tmp/svgpress-cache" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.Redis != "redis://localhost:6379/1" {
		t.Errorf("Serve = %+v", cfg.Serve)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() succeeded on invalid TOML")
	}
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	want := filepath.Join("/custom/config", appName, "config.toml")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}
