package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	backend
//	log_level
//	sway.socket_path
//	sway.bar_height
//	sway.criteria.app_id
//	sway.legacy_criteria.title
//	x11.class
//	x11.poll_interval
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
	unknown := fmt.Errorf("unknown path: %s", path)

	switch parts[0] {
	case "backend":
		if len(parts) != 1 {
			return nil, unknown
		}
		return cfg.Backend, nil
	case "log_level":
		if len(parts) != 1 {
			return nil, unknown
		}
		return cfg.LogLevel, nil
	case "sway":
		if len(parts) == 1 {
			return cfg.Sway, nil
		}
		return lookupSway(&cfg.Sway, parts[1:], unknown)
	case "x11":
		if len(parts) == 1 {
			return cfg.X11, nil
		}
		if len(parts) != 2 {
			return nil, unknown
		}
		switch parts[1] {
		case "display":
			return cfg.X11.Display, nil
		case "instance":
			return cfg.X11.Instance, nil
		case "class":
			return cfg.X11.Class, nil
		case "poll_interval":
			return cfg.X11.PollInterval, nil
		case "wait_timeout":
			return cfg.X11.WaitTimeout, nil
		}
	}
	return nil, unknown
}

func lookupSway(s *SwayConfig, parts []string, unknown error) (any, error) {
	switch parts[0] {
	case "socket_path", "swaymsg_path", "bar_height", "persistent_rule":
		if len(parts) != 1 {
			return nil, unknown
		}
		switch parts[0] {
		case "socket_path":
			return s.SocketPath, nil
		case "swaymsg_path":
			return s.SwaymsgPath, nil
		case "bar_height":
			return s.BarHeight, nil
		default:
			return s.PersistentRule, nil
		}
	case "criteria", "legacy_criteria":
		c := s.Criteria
		if parts[0] == "legacy_criteria" {
			c = s.LegacyCriteria
		}
		if len(parts) == 1 {
			return c, nil
		}
		if len(parts) != 2 {
			return nil, unknown
		}
		switch parts[1] {
		case "app_id":
			return c.AppID, nil
		case "title":
			return c.Title, nil
		}
	}
	return nil, unknown
}
