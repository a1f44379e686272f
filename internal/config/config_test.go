package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Sway.BarHeight != 34 {
		t.Fatalf("expected default bar height 34, got %d", cfg.Sway.BarHeight)
	}
	if cfg.X11.PollInterval != 100*time.Millisecond {
		t.Fatalf("expected default poll interval 100ms, got %v", cfg.X11.PollInterval)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendSwayWorkspace {
		t.Fatalf("expected default backend, got %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendSwayWorkspace {
		t.Fatalf("expected backend %q, got %q", BackendSwayWorkspace, res.Config.Backend)
	}
	if res.Config.X11.Class != "dogky" {
		t.Fatalf("expected default class dogky, got %q", res.Config.X11.Class)
	}
}

func TestLoadFromPath_OverridesAndDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"backend: x11",
		"sway:",
		"  bar_height: 30",
		"  persistent_rule: false",
		"  criteria:",
		"    title: Widgets",
		"x11:",
		"  poll_interval: 250ms",
		"  wait_timeout: 5s",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != BackendX11 {
		t.Fatalf("expected backend x11, got %q", cfg.Backend)
	}
	if cfg.Sway.BarHeight != 30 || cfg.Sway.PersistentRule {
		t.Fatalf("unexpected sway config %+v", cfg.Sway)
	}
	if cfg.Sway.Criteria.Title != "Widgets" || cfg.Sway.Criteria.AppID != "dogky" {
		t.Fatalf("expected title merged onto default app_id, got %+v", cfg.Sway.Criteria)
	}
	if cfg.Sway.SwaymsgPath != "swaymsg" {
		t.Fatalf("expected untouched default swaymsg_path, got %q", cfg.Sway.SwaymsgPath)
	}
	if cfg.X11.PollInterval != 250*time.Millisecond || cfg.X11.WaitTimeout != 5*time.Second {
		t.Fatalf("unexpected durations %v / %v", cfg.X11.PollInterval, cfg.X11.WaitTimeout)
	}
}

func TestLoadFromPath_UnknownKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "sway:\n  bar_hieght: 30\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "bar_hieght") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestLoadFromPath_InvalidBackendHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: debug\nbackend: wayland\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "backend" {
		t.Fatalf("expected path backend, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), "config.yaml:2:") {
		t.Fatalf("expected file:line in message, got %q", err.Error())
	}
}

func TestLoadFromPath_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{name: "log level", yaml: "log_level: verbose\n", path: "log_level"},
		{name: "negative bar", yaml: "sway:\n  bar_height: -1\n", path: "sway.bar_height"},
		{name: "empty criteria", yaml: "sway:\n  criteria:\n    app_id: \"\"\n", path: "sway.criteria"},
		{name: "zero poll", yaml: "x11:\n  poll_interval: 0s\n", path: "x11.poll_interval"},
		{name: "empty class", yaml: "x11:\n  class: \"\"\n", path: "x11.class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.yaml)

			_, err := LoadFromPath(path)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestLoadFromPath_IncludeMergesBeforeFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "backend: x11\nlog_level: debug\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: base.yaml\nlog_level: error\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendX11 {
		t.Fatalf("expected backend from include, got %q", res.Config.Backend)
	}
	if res.Config.LogLevel != "error" {
		t.Fatalf("expected including file to win, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if path != "/tmp/xdg/movewin/config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestExplain_ReportsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "sway:\n  bar_height: 28\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "sway.bar_height")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 28 {
		t.Fatalf("expected 28, got %v", val)
	}
	if src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source on line 2, got %+v", src)
	}

	val, src, err = Explain(res, "x11.class")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "dogky" || src.Kind != SourceDefault {
		t.Fatalf("expected default dogky, got %v from %+v", val, src)
	}

	if _, _, err := Explain(res, "sway.criteria.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestConfigYAML_RoundTripsThroughLoader(t *testing.T) {
	data, err := DefaultConfig().YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, string(data))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("printed config must load cleanly: %v", err)
	}
	if *res.Config != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
}

func TestLoadFromPath_MissingIncludeNamesIncludingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "backend: x11\ninclude:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for missing include")
	}
	if !strings.Contains(err.Error(), "config.yaml:3:") || !strings.Contains(err.Error(), `"missing.yaml"`) {
		t.Fatalf("expected include position and name, got %v", err)
	}
}

func TestLoadFromPath_NestedSourceFromInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sway.yaml"), "sway:\n  criteria:\n    title: Freya App\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: sway.yaml\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	val, src, err := Explain(res, "sway.criteria.title")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "Freya App" {
		t.Fatalf("expected Freya App, got %v", val)
	}
	if filepath.Base(src.File) != "sway.yaml" || src.Line != 3 {
		t.Fatalf("expected sway.yaml:3, got %+v", src)
	}
}
