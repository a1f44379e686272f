package platform

import (
	"context"
	"time"

	"github.com/1broseidon/movewin/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type x11Session interface {
	x11.ClientLister
	ActiveMonitor() (x11.Monitor, error)
	AddStates(windowID xproto.Window, states ...string) error
	MoveResize(windowID xproto.Window, x, y, width, height int) error
	Close()
}

// X11Options configures the X11 backend.
type X11Options struct {
	// Display overrides $DISPLAY.
	Display string
	Class   x11.WindowClass
	// MonitorWidth and MonitorHeight are the caller supplied monitor size.
	// When either is zero the active monitor is queried through RandR.
	MonitorWidth  int
	MonitorHeight int
	PollInterval  time.Duration
	WaitTimeout   time.Duration
}

// X11Backend places an EWMH client window found by its WM_CLASS.
type X11Backend struct {
	conn x11Session
	opts X11Options
}

var _ Backend = (*X11Backend)(nil)

// NewX11Backend opens a new X11 connection.
func NewX11Backend(opts X11Options) (*X11Backend, error) {
	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, err
	}
	return newX11Backend(conn, opts), nil
}

func newX11Backend(conn x11Session, opts X11Options) *X11Backend {
	return &X11Backend{conn: conn, opts: opts}
}

// Kind implements Backend.
func (b *X11Backend) Kind() Kind { return KindX11 }

// FocusedDisplay implements Backend.
func (b *X11Backend) FocusedDisplay(ctx context.Context) (Display, error) {
	if b.opts.MonitorWidth > 0 && b.opts.MonitorHeight > 0 {
		bounds := Rect{Width: b.opts.MonitorWidth, Height: b.opts.MonitorHeight}
		return Display{Scale: 1, Bounds: bounds, Usable: Rect{Width: bounds.Width, Height: bounds.Height}}, nil
	}

	m, err := b.conn.ActiveMonitor()
	if err != nil {
		return Display{}, errors.Wrap(err, "query active monitor")
	}
	zerolog.Ctx(ctx).Debug().Str("monitor", m.Name).Msg("monitor size not given, using active monitor")
	return Display{
		Name:   m.Name,
		Scale:  1,
		Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		Usable: Rect{Width: m.Width, Height: m.Height},
	}, nil
}

// Apply implements Backend. It waits for the window to be mapped, marks it
// sticky/below/skip-taskbar/skip-pager and moves it in one request.
func (b *X11Backend) Apply(ctx context.Context, target Rect) error {
	logger := zerolog.Ctx(ctx)

	locator := x11.NewLocator(b.conn)
	if b.opts.PollInterval > 0 {
		locator.Interval = b.opts.PollInterval
	}
	locator.Timeout = b.opts.WaitTimeout
	locator.Logger = *logger

	logger.Debug().Str("class", b.opts.Class.String()).Msg("waiting for window")
	client, err := locator.Find(ctx, b.opts.Class)
	if err != nil {
		return err
	}

	if err := b.conn.AddStates(client.ID, x11.DockStates...); err != nil {
		return errors.Wrapf(err, "window 0x%x", uint32(client.ID))
	}
	if err := b.conn.MoveResize(client.ID, target.X, target.Y, target.Width, target.Height); err != nil {
		return errors.Wrapf(err, "window 0x%x", uint32(client.ID))
	}
	return nil
}

// Close implements Backend.
func (b *X11Backend) Close() error {
	if b.conn != nil {
		b.conn.Close()
	}
	return nil
}
