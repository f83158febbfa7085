package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("expected 800x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor != (Color{0, 0, 1, 0}) {
		t.Fatalf("unexpected clear color %v", cfg.ClearColor)
	}
	if cfg.TriangleColor != (RGB{1, 1, 1}) {
		t.Fatalf("unexpected triangle color %v", cfg.TriangleColor)
	}
	if cfg.FrameInterval != 0 {
		t.Fatalf("expected busy-poll default, got %v", cfg.FrameInterval)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", res.Config.Title)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Width != DefaultWidth {
		t.Fatalf("expected width %d, got %d", DefaultWidth, res.Config.Width)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		`display: ":1"`,
		`title: "triangle"`,
		`width: 640`,
		`height: 480`,
		`clear_color: [0.5, 0.25, 0]`,
		`triangle_color: [1, 0, 0]`,
		`visual:`,
		`  alpha_size: 0`,
		`frame_interval: 16ms`,
		`log_level: debug`,
		``,
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" || cfg.Title != "triangle" {
		t.Fatalf("unexpected display/title %q/%q", cfg.Display, cfg.Title)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	// RGB clear color keeps the default alpha.
	if cfg.ClearColor != (Color{0.5, 0.25, 0, 0}) {
		t.Fatalf("unexpected clear color %v", cfg.ClearColor)
	}
	if cfg.TriangleColor != (RGB{1, 0, 0}) {
		t.Fatalf("unexpected triangle color %v", cfg.TriangleColor)
	}
	if cfg.Visual.AlphaSize != 0 || cfg.Visual.RedSize != 1 {
		t.Fatalf("unexpected visual %+v", cfg.Visual)
	}
	if cfg.FrameInterval != 16*time.Millisecond {
		t.Fatalf("unexpected frame interval %v", cfg.FrameInterval)
	}
	if !cfg.Debug() {
		t.Fatalf("expected debug logging")
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "hotkey: Mod4-t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := writeConfig(t, "title: ok\nwidth: 0\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "width" {
		t.Fatalf("expected path width, got %q", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 2 {
		t.Fatalf("expected file source at line 2, got %+v", verr.Source)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected line in message, got %q", err.Error())
	}
}

func TestLoadFromPath_BadColors(t *testing.T) {
	cases := []string{
		"clear_color: [1, 2]\n",
		"clear_color: [0, 0, 2]\n",
		"triangle_color: [1, 1, 1, 1]\n",
		"clear_color: blue\n",
	}
	for _, data := range cases {
		path := writeConfig(t, data)
		if _, err := LoadFromPath(path); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	mutate := map[string]func(*Config){
		"title":             func(c *Config) { c.Title = "  " },
		"height":            func(c *Config) { c.Height = -1 },
		"visual.alpha_size": func(c *Config) { c.Visual.AlphaSize = 99 },
		"frame_interval":    func(c *Config) { c.FrameInterval = -time.Second },
		"log_level":         func(c *Config) { c.LogLevel = "loud" },
	}
	for path, fn := range mutate {
		cfg := DefaultConfig()
		fn(cfg)
		err := cfg.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %v", path, err)
		}
		if verr.Path != path {
			t.Fatalf("expected path %q, got %q", path, verr.Path)
		}
	}
}

func TestDefaultConfigPath_UsesXDGConfigHome(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error: %v", err)
	}
	want := filepath.Join(td, "orthotri", "config.yaml")
	if got != want {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, "width: 1024\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "width")
	if err != nil {
		t.Fatalf("explain width: %v", err)
	}
	if val != 1024 || src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("unexpected explain result %v %+v", val, src)
	}

	val, src, err = Explain(res, "visual.alpha_size")
	if err != nil {
		t.Fatalf("explain visual.alpha_size: %v", err)
	}
	if val != 1 || src.Kind != SourceDefault {
		t.Fatalf("unexpected explain result %v %+v", val, src)
	}

	if _, _, err := Explain(res, "visual.depth"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestValidate_WindowSizeFitsXCoordinates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 32767, 32767
	if err := cfg.Validate(); err != nil {
		t.Fatalf("32767x32767 rejected: %v", err)
	}

	cfg.Height = 32768
	var verr *ValidationError
	if err := cfg.Validate(); !errors.As(err, &verr) || verr.Path != "height" {
		t.Fatalf("height 32768: expected height ValidationError, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Width = 65535
	if err := cfg.Validate(); !errors.As(err, &verr) || verr.Path != "width" {
		t.Fatalf("width 65535: expected width ValidationError, got %v", err)
	}
}
