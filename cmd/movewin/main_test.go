package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const fakeOutputs = `[{"name":"DP-1","active":true,"focused":true,"scale":1.5,"current_mode":{"width":3840,"height":2160,"refresh":60000}}]`

// fakeSwaymsg writes a shell script that answers get_outputs with
// fakeOutputs and records every other command payload in log.
func fakeSwaymsg(t *testing.T, dir string) (binary, log string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	binary = filepath.Join(dir, "swaymsg")
	log = filepath.Join(dir, "commands.log")
	script := `#!/bin/sh
for a in "$@"; do
  if [ "$a" = "get_outputs" ]; then
    echo '` + fakeOutputs + `'
    exit 0
  fi
done
eval last=\${$#}
printf '%s\n' "$last" >> '` + log + `'
echo '[{"success":true},{"success":true},{"success":true}]'
`
	if err := os.WriteFile(binary, []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return binary, log
}

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(args ...string) (code int, stdout, stderr string) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestParseRequest(t *testing.T) {
	req, err := parseRequest([]string{"1000"})
	if err != nil {
		t.Fatalf("parseRequest: %v", err)
	}
	if req.Width != 1000 || req.Height != 0 {
		t.Fatalf("unexpected request %+v", req)
	}

	req, err = parseRequest([]string{"400", "700"})
	if err != nil {
		t.Fatalf("parseRequest: %v", err)
	}
	if req.Width != 400 || req.Height != 700 {
		t.Fatalf("unexpected request %+v", req)
	}

	for _, bad := range [][]string{{"0"}, {"abc"}, {"400", "-1"}, {"400", "tall"}} {
		if _, err := parseRequest(bad); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}

func TestParseX11Args(t *testing.T) {
	mw, mh, req, err := parseX11Args([]string{"1920", "1080", "300", "1080"})
	if err != nil {
		t.Fatalf("parseX11Args: %v", err)
	}
	if mw != 1920 || mh != 1080 || req.Width != 300 || req.Height != 1080 {
		t.Fatalf("unexpected parse %d %d %+v", mw, mh, req)
	}

	mw, mh, req, err = parseX11Args([]string{"300", "1080"})
	if err != nil {
		t.Fatalf("parseX11Args: %v", err)
	}
	if mw != 0 || mh != 0 || req.Width != 300 {
		t.Fatalf("expected monitor size to be queried, got %d %d %+v", mw, mh, req)
	}

	if _, _, _, err := parseX11Args([]string{"0", "1080", "300", "1080"}); err == nil {
		t.Fatalf("expected error for zero monitor width")
	}
}

func TestRun_UsageErrorsExitTwo(t *testing.T) {
	tests := [][]string{
		{"sway"},
		{"sway", "wide"},
		{"sway", "1", "2", "3"},
		{"x11", "1", "2", "3"},
		{"workspace", "--bogus", "10"},
		{"frobnicate"},
	}
	for _, args := range tests {
		code, _, stderr := execute(args...)
		if code != 2 {
			t.Fatalf("%v: expected exit 2, got %d (stderr %q)", args, code, stderr)
		}
		if !strings.Contains(stderr, "Usage:") {
			t.Fatalf("%v: expected usage on stderr, got %q", args, stderr)
		}
	}
}

func TestRun_SwayDryRun(t *testing.T) {
	dir := t.TempDir()
	binary, log := fakeSwaymsg(t, dir)
	cfg := writeConfig(t, dir, "sway:\n  swaymsg_path: "+binary+"\n")

	code, stdout, stderr := execute("--config", cfg, "--dry-run", "sway", "1000")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "output DP-1 2560x1440 scale 1.5 bar 23") {
		t.Fatalf("unexpected display line %q", stdout)
	}
	if !strings.Contains(stdout, "target x=1560 y=23 width=1000 height=1417 (dry run)") {
		t.Fatalf("unexpected target line %q", stdout)
	}
	if _, err := os.Stat(log); !os.IsNotExist(err) {
		t.Fatalf("dry run must not send commands")
	}
}

func TestRun_SwaySendsCommands(t *testing.T) {
	dir := t.TempDir()
	binary, log := fakeSwaymsg(t, dir)
	cfg := writeConfig(t, dir, "sway:\n  swaymsg_path: "+binary+"\n")

	code, stdout, stderr := execute("--config", cfg, "sway", "--app-id", "dogky", "1000")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if strings.Contains(stdout, "dry run") {
		t.Fatalf("expected applied result, got %q", stdout)
	}

	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := `for_window [app_id="dogky"] resize set 1000;` +
		`for_window [app_id="dogky"] resize set height 1417;` +
		`for_window [app_id="dogky"] move absolute position 1560 23`
	if strings.TrimSpace(string(data)) != want {
		t.Fatalf("unexpected command payload:\n%s\nwant:\n%s", data, want)
	}
}

func TestRun_PlaceUsesConfiguredBackend(t *testing.T) {
	dir := t.TempDir()
	binary, _ := fakeSwaymsg(t, dir)
	cfg := writeConfig(t, dir, "backend: sway-legacy\nsway:\n  swaymsg_path: "+binary+"\n  bar_height: 0\n")

	code, stdout, stderr := execute("--config", cfg, "--dry-run", "place", "560", "700")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "target x=2000 y=0 width=560 height=700") {
		t.Fatalf("unexpected target line %q", stdout)
	}
}

func TestRun_RuntimeErrorExitsOne(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "sway:\n  swaymsg_path: "+filepath.Join(dir, "missing-swaymsg")+"\n")

	code, _, stderr := execute("--config", cfg, "sway", "1000")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "sway-legacy") {
		t.Fatalf("expected backend name in error, got %q", stderr)
	}
}

func TestRun_ConfigCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "backend: x11\n")

	code, stdout, _ := execute("--config", cfg, "config", "validate")
	if code != 0 || !strings.Contains(stdout, "config: ok") {
		t.Fatalf("validate: code %d, out %q", code, stdout)
	}

	code, stdout, _ = execute("--config", cfg, "config", "print")
	if code != 0 || !strings.Contains(stdout, "backend: x11") {
		t.Fatalf("print: code %d, out %q", code, stdout)
	}

	code, stdout, _ = execute("--config", cfg, "config", "explain", "backend")
	if code != 0 || !strings.Contains(stdout, "config.yaml:1:") {
		t.Fatalf("explain: code %d, out %q", code, stdout)
	}

	bad := writeConfig(t, t.TempDir(), "backend: wayland\n")
	code, _, stderr := execute("--config", bad, "config", "validate")
	if code != 1 || !strings.Contains(stderr, "config.yaml:1:") {
		t.Fatalf("invalid config: code %d, stderr %q", code, stderr)
	}
}
