package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DefaultTitle  = "Demo - One 2D shape orthographic projection"
	DefaultWidth  = 800
	DefaultHeight = 600

	// maxWindowSize keeps every pixel within X's signed 16-bit coordinates.
	maxWindowSize = math.MaxInt16
)

// Color is an RGBA color with channels in [0, 1].
type Color [4]float64

// RGB is an opaque color with channels in [0, 1].
type RGB [3]float64

// VisualConfig lists the minimum channel sizes a visual must provide.
type VisualConfig struct {
	RedSize   int `yaml:"red_size"`
	GreenSize int `yaml:"green_size"`
	BlueSize  int `yaml:"blue_size"`
	AlphaSize int `yaml:"alpha_size"`
}

// Config is the effective configuration used by the renderer.
type Config struct {
	// Display is the X display name; empty means $DISPLAY.
	Display string `yaml:"display"`

	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	ClearColor    Color `yaml:"clear_color"`
	TriangleColor RGB   `yaml:"triangle_color"`

	Visual VisualConfig `yaml:"visual"`

	// FrameInterval paces the render loop. Zero keeps the loop busy-polling.
	FrameInterval time.Duration `yaml:"frame_interval"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Display:       "",
		Title:         DefaultTitle,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ClearColor:    Color{0, 0, 1, 0},
		TriangleColor: RGB{1, 1, 1},
		Visual: VisualConfig{
			RedSize:   1,
			GreenSize: 1,
			BlueSize:  1,
			AlphaSize: 1,
		},
		FrameInterval: 0,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for values the renderer cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title must not be empty")}
	}
	if c.Width <= 0 || c.Width > maxWindowSize {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be between 1 and %d", maxWindowSize)}
	}
	if c.Height <= 0 || c.Height > maxWindowSize {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be between 1 and %d", maxWindowSize)}
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return &ValidationError{Path: "clear_color", Err: fmt.Errorf("channel %d must be in [0, 1], got %v", i, v)}
		}
	}
	for i, v := range c.TriangleColor {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return &ValidationError{Path: "triangle_color", Err: fmt.Errorf("channel %d must be in [0, 1], got %v", i, v)}
		}
	}
	sizes := []struct {
		path string
		val  int
	}{
		{"visual.red_size", c.Visual.RedSize},
		{"visual.green_size", c.Visual.GreenSize},
		{"visual.blue_size", c.Visual.BlueSize},
		{"visual.alpha_size", c.Visual.AlphaSize},
	}
	for _, s := range sizes {
		if s.val < 0 || s.val > 16 {
			return &ValidationError{Path: s.path, Err: fmt.Errorf("must be between 0 and 16")}
		}
	}
	if c.FrameInterval < 0 {
		return &ValidationError{Path: "frame_interval", Err: fmt.Errorf("frame_interval must be >= 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// Debug reports whether per-event tracing is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
