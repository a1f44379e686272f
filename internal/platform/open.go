package platform

import (
	"context"

	"github.com/1broseidon/movewin/internal/runtimepath"
	"github.com/1broseidon/movewin/internal/swaymsg"
	"github.com/pkg/errors"
)

// Options carries the settings of every backend; Open uses the ones that
// belong to the requested kind.
type Options struct {
	Sway SwayOptions
	// SwaySocket overrides socket discovery for both Sway backends.
	SwaySocket string
	// Swaymsg is the bridge binary used by the sway-legacy backend.
	Swaymsg string
	X11     X11Options
}

// Open creates the backend for kind.
func Open(ctx context.Context, kind Kind, opts Options) (Backend, error) {
	switch kind {
	case KindSwayLegacy:
		return NewSwayLegacyBackend(swaymsg.NewClient(opts.Swaymsg, opts.SwaySocket), opts.Sway), nil
	case KindSwayWorkspace:
		socket := opts.SwaySocket
		if socket == "" {
			var err error
			socket, err = runtimepath.SwaySocketPath()
			if err != nil {
				return nil, err
			}
		}
		return NewSwayWorkspaceBackend(ctx, socket, opts.Sway)
	case KindX11:
		return NewX11Backend(opts.X11)
	default:
		return nil, errors.Errorf("unsupported backend %q", kind)
	}
}
