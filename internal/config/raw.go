package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// RawColor accepts either a 3-element RGB list or a 4-element RGBA list.
type RawColor []float64

func (c *RawColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("color must be a list of 3 or 4 numbers")
	}
	if len(value.Content) != 3 && len(value.Content) != 4 {
		return fmt.Errorf("color must have 3 or 4 channels, got %d", len(value.Content))
	}
	out := make([]float64, 0, len(value.Content))
	for _, item := range value.Content {
		var f float64
		if err := item.Decode(&f); err != nil {
			return fmt.Errorf("color channel %q is not a number", item.Value)
		}
		out = append(out, f)
	}
	*c = out
	return nil
}

type RawVisualConfig struct {
	RedSize   *int `yaml:"red_size"`
	GreenSize *int `yaml:"green_size"`
	BlueSize  *int `yaml:"blue_size"`
	AlphaSize *int `yaml:"alpha_size"`
}

type RawConfig struct {
	Display       *string          `yaml:"display"`
	Title         *string          `yaml:"title"`
	Width         *int             `yaml:"width"`
	Height        *int             `yaml:"height"`
	ClearColor    RawColor         `yaml:"clear_color"`
	TriangleColor RawColor         `yaml:"triangle_color"`
	Visual        *RawVisualConfig `yaml:"visual"`
	FrameInterval *time.Duration   `yaml:"frame_interval"`
	LogLevel      *string          `yaml:"log_level"`
}

func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	if other.Display != nil {
		out.Display = other.Display
	}
	if other.Title != nil {
		out.Title = other.Title
	}
	if other.Width != nil {
		out.Width = other.Width
	}
	if other.Height != nil {
		out.Height = other.Height
	}
	if other.ClearColor != nil {
		out.ClearColor = other.ClearColor
	}
	if other.TriangleColor != nil {
		out.TriangleColor = other.TriangleColor
	}
	if other.Visual != nil {
		if out.Visual == nil {
			out.Visual = &RawVisualConfig{}
		}
		merged := *out.Visual
		if other.Visual.RedSize != nil {
			merged.RedSize = other.Visual.RedSize
		}
		if other.Visual.GreenSize != nil {
			merged.GreenSize = other.Visual.GreenSize
		}
		if other.Visual.BlueSize != nil {
			merged.BlueSize = other.Visual.BlueSize
		}
		if other.Visual.AlphaSize != nil {
			merged.AlphaSize = other.Visual.AlphaSize
		}
		out.Visual = &merged
	}
	if other.FrameInterval != nil {
		out.FrameInterval = other.FrameInterval
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	return out
}
