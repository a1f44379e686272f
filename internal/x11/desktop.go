package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// AllDesktops is the _NET_WM_DESKTOP value of windows shown on every desktop.
const AllDesktops uint32 = 0xFFFFFFFF

// WindowDesktop returns the _NET_WM_DESKTOP of a window. ok is false when the
// property is not set or cannot be read.
func (c *Connection) WindowDesktop(windowID xproto.Window) (desktop uint32, ok bool) {
	d, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, false
	}
	return uint32(d), true
}
