package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	title
//	width
//	height
//	clear_color
//	triangle_color
//	visual.red_size
//	visual.green_size
//	visual.blue_size
//	visual.alpha_size
//	frame_interval
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "visual" {
		if len(parts) == 1 {
			return cfg.Visual, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "red_size":
			return cfg.Visual.RedSize, nil
		case "green_size":
			return cfg.Visual.GreenSize, nil
		case "blue_size":
			return cfg.Visual.BlueSize, nil
		case "alpha_size":
			return cfg.Visual.AlphaSize, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch parts[0] {
	case "display":
		return cfg.Display, nil
	case "title":
		return cfg.Title, nil
	case "width":
		return cfg.Width, nil
	case "height":
		return cfg.Height, nil
	case "clear_color":
		return cfg.ClearColor, nil
	case "triangle_color":
		return cfg.TriangleColor, nil
	case "frame_interval":
		return cfg.FrameInterval, nil
	case "log_level":
		return cfg.LogLevel, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

// FormatSource renders a source the way `config explain` prints it.
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	case SourceFlag:
		return "flag " + src.Name
	default:
		return string(src.Kind)
	}
}
