package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig layers raw file values over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Title != nil {
		cfg.Title = *raw.Title
	}
	if raw.Width != nil {
		cfg.Width = *raw.Width
	}
	if raw.Height != nil {
		cfg.Height = *raw.Height
	}
	if raw.ClearColor != nil {
		// An RGB clear color keeps the default alpha.
		for i, v := range raw.ClearColor {
			cfg.ClearColor[i] = v
		}
	}
	if raw.TriangleColor != nil {
		if len(raw.TriangleColor) != 3 {
			return nil, &ValidationError{Path: "triangle_color", Err: fmt.Errorf("triangle_color must have exactly 3 channels")}
		}
		copy(cfg.TriangleColor[:], raw.TriangleColor)
	}
	if raw.Visual != nil {
		if raw.Visual.RedSize != nil {
			cfg.Visual.RedSize = *raw.Visual.RedSize
		}
		if raw.Visual.GreenSize != nil {
			cfg.Visual.GreenSize = *raw.Visual.GreenSize
		}
		if raw.Visual.BlueSize != nil {
			cfg.Visual.BlueSize = *raw.Visual.BlueSize
		}
		if raw.Visual.AlphaSize != nil {
			cfg.Visual.AlphaSize = *raw.Visual.AlphaSize
		}
	}
	if raw.FrameInterval != nil {
		cfg.FrameInterval = *raw.FrameInterval
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg, nil
}
