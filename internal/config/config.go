package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSwayLegacy    = "sway-legacy"
	BackendSwayWorkspace = "sway-workspace"
	BackendX11           = "x11"
)

var backends = []string{BackendSwayLegacy, BackendSwayWorkspace, BackendX11}

// Criteria selects a Sway window by app_id and/or title.
type Criteria struct {
	AppID string `yaml:"app_id"`
	Title string `yaml:"title"`
}

type SwayConfig struct {
	SocketPath     string   `yaml:"socket_path"`
	SwaymsgPath    string   `yaml:"swaymsg_path"`
	BarHeight      int      `yaml:"bar_height"`
	PersistentRule bool     `yaml:"persistent_rule"`
	Criteria       Criteria `yaml:"criteria"`
	LegacyCriteria Criteria `yaml:"legacy_criteria"`
}

type X11Config struct {
	Display      string        `yaml:"display"`
	Instance     string        `yaml:"instance"`
	Class        string        `yaml:"class"`
	PollInterval time.Duration `yaml:"poll_interval"`
	WaitTimeout  time.Duration `yaml:"wait_timeout"`
}

// Config is the effective configuration after defaults and all files have
// been merged.
type Config struct {
	Backend  string     `yaml:"backend"`
	LogLevel string     `yaml:"log_level"`
	Sway     SwayConfig `yaml:"sway"`
	X11      X11Config  `yaml:"x11"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendSwayWorkspace,
		LogLevel: "info",
		Sway: SwayConfig{
			SwaymsgPath:    "swaymsg",
			BarHeight:      34,
			PersistentRule: true,
			Criteria:       Criteria{AppID: "dogky"},
			LegacyCriteria: Criteria{Title: "Freya App"},
		},
		X11: X11Config{
			Instance:     "dogky",
			Class:        "dogky",
			PollInterval: 100 * time.Millisecond,
		},
	}
}

// YAML renders the effective config.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	valid := false
	for _, b := range backends {
		if c.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: %s", strings.Join(backends, ", "))}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	if strings.TrimSpace(c.Sway.SwaymsgPath) == "" {
		return &ValidationError{Path: "sway.swaymsg_path", Err: fmt.Errorf("swaymsg_path is required")}
	}
	if c.Sway.BarHeight < 0 {
		return &ValidationError{Path: "sway.bar_height", Err: fmt.Errorf("bar_height must be >= 0")}
	}
	if c.Sway.Criteria.AppID == "" && c.Sway.Criteria.Title == "" {
		return &ValidationError{Path: "sway.criteria", Err: fmt.Errorf("criteria needs app_id or title")}
	}
	if c.Sway.LegacyCriteria.AppID == "" && c.Sway.LegacyCriteria.Title == "" {
		return &ValidationError{Path: "sway.legacy_criteria", Err: fmt.Errorf("legacy_criteria needs app_id or title")}
	}

	if c.X11.Instance == "" {
		return &ValidationError{Path: "x11.instance", Err: fmt.Errorf("instance is required")}
	}
	if c.X11.Class == "" {
		return &ValidationError{Path: "x11.class", Err: fmt.Errorf("class is required")}
	}
	if c.X11.PollInterval <= 0 {
		return &ValidationError{Path: "x11.poll_interval", Err: fmt.Errorf("poll_interval must be > 0")}
	}
	if c.X11.WaitTimeout < 0 {
		return &ValidationError{Path: "x11.wait_timeout", Err: fmt.Errorf("wait_timeout must be >= 0")}
	}
	return nil
}
