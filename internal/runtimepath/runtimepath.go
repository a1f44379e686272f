package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ErrNoSwaySocket is returned when no Sway IPC socket can be located.
var ErrNoSwaySocket = errors.New("no sway IPC socket found (is sway running? SWAYSOCK is unset)")

// Dir returns the per-user runtime directory. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	runUserDir := fmt.Sprintf("/run/user/%d", os.Getuid())
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}
	return "", errors.New("no runtime directory: XDG_RUNTIME_DIR is unset and /run/user/<uid> is missing")
}

// SwaySocketPath resolves the Sway IPC socket. SWAYSOCK wins when set;
// otherwise the newest sway-ipc.<uid>.*.sock in the runtime directory is used.
func SwaySocketPath() (string, error) {
	if sock := os.Getenv("SWAYSOCK"); sock != "" {
		return sock, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", errors.Wrap(ErrNoSwaySocket, err.Error())
	}

	pattern := filepath.Join(dir, fmt.Sprintf("sway-ipc.%d.*.sock", os.Getuid()))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", errors.Wrapf(err, "glob %s", pattern)
	}
	if len(matches) == 0 {
		return "", ErrNoSwaySocket
	}

	type candidate struct {
		path    string
		modTime int64
	}
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{path: m, modTime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", ErrNoSwaySocket
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path, nil
}
