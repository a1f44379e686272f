package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "relative/to/this/file.yaml"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawCriteria struct {
	AppID *string `yaml:"app_id"`
	Title *string `yaml:"title"`
}

type RawSwayConfig struct {
	SocketPath     *string      `yaml:"socket_path"`
	SwaymsgPath    *string      `yaml:"swaymsg_path"`
	BarHeight      *int         `yaml:"bar_height"`
	PersistentRule *bool        `yaml:"persistent_rule"`
	Criteria       *RawCriteria `yaml:"criteria"`
	LegacyCriteria *RawCriteria `yaml:"legacy_criteria"`
}

type RawX11Config struct {
	Display      *string        `yaml:"display"`
	Instance     *string        `yaml:"instance"`
	Class        *string        `yaml:"class"`
	PollInterval *time.Duration `yaml:"poll_interval"`
	WaitTimeout  *time.Duration `yaml:"wait_timeout"`
}

// RawConfig mirrors the file layout; nil means "not set in this file".
type RawConfig struct {
	Include  IncludeList    `yaml:"include"`
	Backend  *string        `yaml:"backend"`
	LogLevel *string        `yaml:"log_level"`
	Sway     *RawSwayConfig `yaml:"sway"`
	X11      *RawX11Config  `yaml:"x11"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Sway != nil {
		merged := mergeRawSway(out.Sway, *overlay.Sway)
		out.Sway = &merged
	}
	if overlay.X11 != nil {
		merged := mergeRawX11(out.X11, *overlay.X11)
		out.X11 = &merged
	}
	return out
}

func mergeRawSway(base *RawSwayConfig, overlay RawSwayConfig) RawSwayConfig {
	out := RawSwayConfig{}
	if base != nil {
		out = *base
	}
	if overlay.SocketPath != nil {
		out.SocketPath = overlay.SocketPath
	}
	if overlay.SwaymsgPath != nil {
		out.SwaymsgPath = overlay.SwaymsgPath
	}
	if overlay.BarHeight != nil {
		out.BarHeight = overlay.BarHeight
	}
	if overlay.PersistentRule != nil {
		out.PersistentRule = overlay.PersistentRule
	}
	if overlay.Criteria != nil {
		merged := mergeRawCriteria(out.Criteria, *overlay.Criteria)
		out.Criteria = &merged
	}
	if overlay.LegacyCriteria != nil {
		merged := mergeRawCriteria(out.LegacyCriteria, *overlay.LegacyCriteria)
		out.LegacyCriteria = &merged
	}
	return out
}

func mergeRawCriteria(base *RawCriteria, overlay RawCriteria) RawCriteria {
	out := RawCriteria{}
	if base != nil {
		out = *base
	}
	if overlay.AppID != nil {
		out.AppID = overlay.AppID
	}
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	return out
}

func mergeRawX11(base *RawX11Config, overlay RawX11Config) RawX11Config {
	out := RawX11Config{}
	if base != nil {
		out = *base
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Instance != nil {
		out.Instance = overlay.Instance
	}
	if overlay.Class != nil {
		out.Class = overlay.Class
	}
	if overlay.PollInterval != nil {
		out.PollInterval = overlay.PollInterval
	}
	if overlay.WaitTimeout != nil {
		out.WaitTimeout = overlay.WaitTimeout
	}
	return out
}
