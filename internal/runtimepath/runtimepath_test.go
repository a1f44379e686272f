package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestSwaySocketPath_PrefersSWAYSOCK(t *testing.T) {
	t.Setenv("SWAYSOCK", "/tmp/custom-sway.sock")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	got, err := SwaySocketPath()
	if err != nil {
		t.Fatalf("SwaySocketPath() error: %v", err)
	}
	if got != "/tmp/custom-sway.sock" {
		t.Fatalf("SwaySocketPath() = %q, want SWAYSOCK value", got)
	}
}

func TestSwaySocketPath_PicksNewestSocketInRuntimeDir(t *testing.T) {
	td := t.TempDir()
	t.Setenv("SWAYSOCK", "")
	t.Setenv("XDG_RUNTIME_DIR", td)

	older := filepath.Join(td, fmt.Sprintf("sway-ipc.%d.100.sock", os.Getuid()))
	newer := filepath.Join(td, fmt.Sprintf("sway-ipc.%d.200.sock", os.Getuid()))
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, nil, 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := SwaySocketPath()
	if err != nil {
		t.Fatalf("SwaySocketPath() error: %v", err)
	}
	if got != newer {
		t.Fatalf("SwaySocketPath() = %q, want %q", got, newer)
	}
}

func TestSwaySocketPath_NoSocket(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, err := SwaySocketPath()
	if !errors.Is(err, ErrNoSwaySocket) {
		t.Fatalf("expected ErrNoSwaySocket, got %v", err)
	}
}
