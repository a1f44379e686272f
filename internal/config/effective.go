package config

import "fmt"

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

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	if s := raw.Sway; s != nil {
		if s.SocketPath != nil {
			cfg.Sway.SocketPath = *s.SocketPath
		}
		if s.SwaymsgPath != nil {
			cfg.Sway.SwaymsgPath = *s.SwaymsgPath
		}
		if s.BarHeight != nil {
			cfg.Sway.BarHeight = *s.BarHeight
		}
		if s.PersistentRule != nil {
			cfg.Sway.PersistentRule = *s.PersistentRule
		}
		applyCriteria(&cfg.Sway.Criteria, s.Criteria)
		applyCriteria(&cfg.Sway.LegacyCriteria, s.LegacyCriteria)
	}

	if x := raw.X11; x != nil {
		if x.Display != nil {
			cfg.X11.Display = *x.Display
		}
		if x.Instance != nil {
			cfg.X11.Instance = *x.Instance
		}
		if x.Class != nil {
			cfg.X11.Class = *x.Class
		}
		if x.PollInterval != nil {
			cfg.X11.PollInterval = *x.PollInterval
		}
		if x.WaitTimeout != nil {
			cfg.X11.WaitTimeout = *x.WaitTimeout
		}
	}

	return cfg
}

func applyCriteria(dst *Criteria, raw *RawCriteria) {
	if raw == nil {
		return
	}
	if raw.AppID != nil {
		dst.AppID = *raw.AppID
	}
	if raw.Title != nil {
		dst.Title = *raw.Title
	}
}
