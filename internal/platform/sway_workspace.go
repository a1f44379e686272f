package platform

import (
	"context"
	"fmt"

	"github.com/1broseidon/movewin/internal/placement"
	"github.com/1broseidon/movewin/internal/swaymsg"
	sway "github.com/joshuarubin/go-sway"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type swayIPC interface {
	GetOutputs(ctx context.Context) ([]sway.Output, error)
	GetWorkspaces(ctx context.Context) ([]sway.Workspace, error)
	RunCommand(ctx context.Context, command string) ([]sway.RunCommandReply, error)
}

// SwayWorkspaceBackend talks to the Sway IPC socket and derives the bar
// height from the focused workspace rectangle.
type SwayWorkspaceBackend struct {
	client         swayIPC
	criteria       Criteria
	persistentRule bool
	cancel         context.CancelFunc
}

var _ Backend = (*SwayWorkspaceBackend)(nil)

// NewSwayWorkspaceBackend connects to the Sway IPC socket at socketPath.
// The connection lives until Close is called.
func NewSwayWorkspaceBackend(ctx context.Context, socketPath string, opts SwayOptions) (*SwayWorkspaceBackend, error) {
	connCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	client, err := sway.New(connCtx, sway.WithSocketPath(socketPath))
	if err != nil {
		cancel()
		return nil, errors.Wrapf(err, "connect to sway IPC at %s", socketPath)
	}
	zerolog.Ctx(ctx).Debug().Str("socket", socketPath).Msg("connected to sway")

	b := newSwayWorkspaceBackend(client, opts)
	b.cancel = cancel
	return b, nil
}

func newSwayWorkspaceBackend(client swayIPC, opts SwayOptions) *SwayWorkspaceBackend {
	return &SwayWorkspaceBackend{
		client:         client,
		criteria:       opts.Criteria,
		persistentRule: opts.PersistentRule,
	}
}

// Kind implements Backend.
func (b *SwayWorkspaceBackend) Kind() Kind { return KindSwayWorkspace }

// FocusedDisplay implements Backend. The focused output gives the display
// size; the focused workspace on it gives the usable height.
func (b *SwayWorkspaceBackend) FocusedDisplay(ctx context.Context) (Display, error) {
	outputs, err := b.client.GetOutputs(ctx)
	if err != nil {
		return Display{}, errors.Wrap(err, "get outputs")
	}
	var (
		output sway.Output
		ok     bool
	)
	for _, o := range outputs {
		if o.Focused {
			output, ok = o, true
			break
		}
	}
	if !ok {
		return Display{}, ErrNoFocusedOutput
	}

	workspaces, err := b.client.GetWorkspaces(ctx)
	if err != nil {
		return Display{}, errors.Wrap(err, "get workspaces")
	}
	var (
		ws    sway.Workspace
		found bool
	)
	for _, w := range workspaces {
		if w.Focused {
			ws, found = w, true
			break
		}
	}
	if !found {
		return Display{}, ErrNoFocusedWorkspace
	}
	if ws.Output != "" && ws.Output != output.Name {
		zerolog.Ctx(ctx).Debug().
			Str("workspace", ws.Name).
			Str("workspace_output", ws.Output).
			Str("output", output.Name).
			Msg("focused workspace is on another output")
	}

	if err := checkOutputMode(output.Name, output.CurrentMode.Width, output.CurrentMode.Height, output.Scale); err != nil {
		return Display{}, err
	}

	bounds := Rect{
		Width:  placement.Scale(int(output.CurrentMode.Width), output.Scale),
		Height: placement.Scale(int(output.CurrentMode.Height), output.Scale),
	}
	return Display{
		Name:   output.Name,
		Scale:  output.Scale,
		Bounds: bounds,
		Usable: placement.WorkspaceUsable(bounds, int(ws.Rect.Height)),
	}, nil
}

// Apply implements Backend.
func (b *SwayWorkspaceBackend) Apply(ctx context.Context, target Rect) error {
	prefix := commandPrefix(b.criteria, b.persistentRule)
	command := swaymsg.JoinCommands(
		fmt.Sprintf("%sresize set %d %d", prefix, target.Width, target.Height),
		fmt.Sprintf("%smove absolute position %d %d", prefix, target.X, target.Y),
	)
	replies, err := b.client.RunCommand(ctx, command)
	if err != nil {
		return errors.Wrap(err, "run sway command")
	}
	checked := make([]swaymsg.CommandReply, len(replies))
	for i, r := range replies {
		checked[i] = swaymsg.CommandReply{Success: r.Success, Error: r.Error}
	}
	return swaymsg.CheckReplies(checked)
}

// Close implements Backend.
func (b *SwayWorkspaceBackend) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

func checkOutputMode(name string, width, height int64, scale float64) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("output %q has no current mode", name)
	}
	if scale <= 0 {
		return errors.Errorf("output %q has no valid scale", name)
	}
	return nil
}
