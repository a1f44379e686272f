package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/pkg/errors"
)

// Window-manager hints applied to the docked window.
const (
	StateSticky      = "_NET_WM_STATE_STICKY"
	StateSkipTaskbar = "_NET_WM_STATE_SKIP_TASKBAR"
	StateSkipPager   = "_NET_WM_STATE_SKIP_PAGER"
	StateBelow       = "_NET_WM_STATE_BELOW"
)

// DockStates are the states set on the target window before it is moved.
var DockStates = []string{StateSticky, StateSkipTaskbar, StateSkipPager, StateBelow}

// WindowClass is the WM_CLASS (instance, class) pair of a window.
type WindowClass struct {
	Instance string
	Class    string
}

func (w WindowClass) String() string {
	return w.Instance + "." + w.Class
}

// Client is one entry of the EWMH client list.
type Client struct {
	ID         xproto.Window
	Desktop    uint32
	HasDesktop bool
	Class      WindowClass
}

// OnAllDesktops reports whether the client is pinned to every desktop.
func (c Client) OnAllDesktops() bool {
	return c.HasDesktop && c.Desktop == AllDesktops
}

// Clients lists managed windows with their desktop and WM_CLASS. Windows that
// disappear while being inspected are skipped.
func (c *Connection) Clients() ([]Client, error) {
	ids, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, errors.Wrap(err, "get client list")
	}

	clients := make([]Client, 0, len(ids))
	for _, id := range ids {
		desktop, hasDesktop := c.WindowDesktop(id)
		wmClass, err := icccm.WmClassGet(c.XUtil, id)
		if err != nil {
			continue
		}
		clients = append(clients, Client{
			ID:         id,
			Desktop:    desktop,
			HasDesktop: hasDesktop,
			Class: WindowClass{
				Instance: wmClass.Instance,
				Class:    wmClass.Class,
			},
		})
	}
	return clients, nil
}

// Request senders, replaced in tests.
var (
	sendStateReq   = ewmh.WmStateReqExtra
	sendMoveResize = ewmh.MoveresizeWindowExtra
)

// sourcePager is the EWMH source indication for direct user actions.
const sourcePager = 2

// AddStates asks the window manager to add each _NET_WM_STATE atom to the
// window.
func (c *Connection) AddStates(windowID xproto.Window, states ...string) error {
	for _, name := range states {
		if err := sendStateReq(c.XUtil, windowID, ewmh.StateAdd, name, "", sourcePager); err != nil {
			return errors.Wrapf(err, "set %s", strings.TrimPrefix(name, "_NET_WM_STATE_"))
		}
	}
	return nil
}

// MoveResize sends a single _NET_MOVERESIZE_WINDOW request with north-west
// gravity, then flushes the connection.
func (c *Connection) MoveResize(windowID xproto.Window, x, y, width, height int) error {
	err := sendMoveResize(
		c.XUtil,
		windowID,
		x, y, width, height,
		int(xproto.GravityNorthWest),
		sourcePager,
		true, true,
	)
	if err != nil {
		return errors.Wrap(err, "move/resize window")
	}
	c.Flush()
	return nil
}
