package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/chord2svg/pkg/cache"
	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/layout"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[geometry]
line_spacing = 12
note_base_x = 100

[cache]
backend = "redis"
url = "redis://localhost:6379/0"
ttl = "72h"
layout_ttl = "24h"
prefix = "staging:"

[render]
background = "white"
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Geometry.LineSpacing != 12 || cfg.Geometry.NoteBaseX != 100 {
		t.Errorf("geometry overrides lost: %+v", cfg.Geometry)
	}
	if cfg.Geometry.StaffTopY != layout.DefaultStaffTopY || cfg.Geometry.MinWidth != layout.DefaultMinWidth {
		t.Errorf("geometry defaults lost: %+v", cfg.Geometry)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.LayoutTTL.Duration != 24*time.Hour || cfg.Cache.Prefix != "staging:" {
		t.Errorf("cache layout_ttl/prefix = %+v", cfg.Cache)
	}
	if cfg.Render.Background != "white" || cfg.Render.PNGScale != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if cfg.Geometry != layout.DefaultGeometry() {
		t.Errorf("Parse(nil) geometry = %+v, want defaults", cfg.Geometry)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[geometry\nline_spacing = 1"},
		{"unknown key", "[geometry]\nline_spaceing = 12"},
		{"negative spacing", "[geometry]\nline_spacing = -3"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"redis with http url", "[cache]\nbackend = \"redis\"\nurl = \"http://localhost\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"negative scale", "[render]\npng_scale = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[geometry]\nmin_width = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Geometry.MinWidth != 300 {
		t.Errorf("MinWidth = %v, want 300", cfg.Geometry.MinWidth)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without file error: %v", err)
	}
	if cfg.Geometry != layout.DefaultGeometry() {
		t.Error("Load(\"\") without file should return defaults")
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "chord2svg", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[geometry]\nheight = 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Geometry.Height != 240 {
		t.Errorf("Height = %v, want 240", cfg.Geometry.Height)
	}
}
