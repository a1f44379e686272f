package placement

import "math"

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Scale converts a physical pixel length to logical pixels, rounding half
// away from zero. A non-positive scale is treated as 1.
func Scale(length int, scale float64) int {
	if scale <= 0 {
		return length
	}
	return int(math.Round(float64(length) / scale))
}

// OutputUsable returns the area of an output left below a status bar of
// barHeight pixels. The result is relative to the output origin.
func OutputUsable(bounds Rect, barHeight int) Rect {
	return Rect{
		X:      0,
		Y:      barHeight,
		Width:  bounds.Width,
		Height: bounds.Height - barHeight,
	}
}

// WorkspaceUsable derives the usable area from a workspace rectangle reported
// by the window manager. Whatever the workspace does not cover vertically is
// treated as bar space above it, which is zero when no bar is configured.
func WorkspaceUsable(bounds Rect, workspaceHeight int) Rect {
	bar := bounds.Height - workspaceHeight
	return Rect{
		X:      0,
		Y:      bar,
		Width:  bounds.Width,
		Height: workspaceHeight,
	}
}

// BarHeight returns the vertical space reserved above the usable area.
func BarHeight(usable Rect) int {
	return usable.Y
}

// RightAligned places a window of the given width flush against the right
// edge of bounds, starting at the top of usable. A height of zero fills the
// usable height. usable is relative to the bounds origin.
//
// The X offset is not clamped: a window wider than the display gets a
// negative X.
func RightAligned(bounds, usable Rect, width, height int) Rect {
	if height <= 0 {
		height = usable.Height
	}
	return Rect{
		X:      bounds.X + bounds.Width - width,
		Y:      bounds.Y + usable.Y,
		Width:  width,
		Height: height,
	}
}
