package platform

import (
	"context"
	"fmt"

	"github.com/1broseidon/movewin/internal/placement"
	"github.com/1broseidon/movewin/internal/swaymsg"
)

type outputBridge interface {
	Outputs(ctx context.Context) ([]swaymsg.Output, error)
	RunCommands(ctx context.Context, commands ...string) error
}

// SwayLegacyBackend reads output geometry through swaymsg and reserves a
// fixed bar height at the top of the output.
type SwayLegacyBackend struct {
	bridge         outputBridge
	criteria       Criteria
	barHeight      int
	persistentRule bool
}

var _ Backend = (*SwayLegacyBackend)(nil)

// SwayOptions configures both Sway backends.
type SwayOptions struct {
	Criteria       Criteria
	PersistentRule bool
	// BarHeight is only used by the sway-legacy backend.
	BarHeight int
}

// NewSwayLegacyBackend creates a backend that shells out to swaymsg.
func NewSwayLegacyBackend(client *swaymsg.Client, opts SwayOptions) *SwayLegacyBackend {
	return newSwayLegacyBackend(client, opts)
}

func newSwayLegacyBackend(bridge outputBridge, opts SwayOptions) *SwayLegacyBackend {
	return &SwayLegacyBackend{
		bridge:         bridge,
		criteria:       opts.Criteria,
		barHeight:      opts.BarHeight,
		persistentRule: opts.PersistentRule,
	}
}

// Kind implements Backend.
func (b *SwayLegacyBackend) Kind() Kind { return KindSwayLegacy }

// FocusedDisplay implements Backend.
func (b *SwayLegacyBackend) FocusedDisplay(ctx context.Context) (Display, error) {
	outputs, err := b.bridge.Outputs(ctx)
	if err != nil {
		return Display{}, err
	}
	output, ok := swaymsg.FocusedOutput(outputs)
	if !ok {
		return Display{}, ErrNoFocusedOutput
	}
	width, height, scale, err := output.Mode()
	if err != nil {
		return Display{}, err
	}

	bounds := Rect{
		Width:  placement.Scale(width, scale),
		Height: placement.Scale(height, scale),
	}
	return Display{
		Name:   output.Name,
		Scale:  scale,
		Bounds: bounds,
		Usable: placement.OutputUsable(bounds, placement.Scale(b.barHeight, scale)),
	}, nil
}

// Apply implements Backend. Width, height and position are three commands
// sent in one batch.
func (b *SwayLegacyBackend) Apply(ctx context.Context, target Rect) error {
	prefix := commandPrefix(b.criteria, b.persistentRule)
	return b.bridge.RunCommands(ctx,
		fmt.Sprintf("%sresize set %d", prefix, target.Width),
		fmt.Sprintf("%sresize set height %d", prefix, target.Height),
		fmt.Sprintf("%smove absolute position %d %d", prefix, target.X, target.Y),
	)
}

// Close implements Backend.
func (b *SwayLegacyBackend) Close() error { return nil }

// commandPrefix returns "for_window [criteria] " for persistent rules, or
// "[criteria] " to target already mapped windows only.
func commandPrefix(c Criteria, persistent bool) string {
	if c.IsZero() {
		return ""
	}
	if persistent {
		return "for_window " + c.String() + " "
	}
	return c.String() + " "
}
