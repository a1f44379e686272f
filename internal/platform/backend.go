package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/1broseidon/movewin/internal/placement"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Rect describes a rectangular region in screen coordinates.
type Rect = placement.Rect

// Kind names a window-system backend.
type Kind string

const (
	KindSwayLegacy    Kind = "sway-legacy"
	KindSwayWorkspace Kind = "sway-workspace"
	KindX11           Kind = "x11"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindSwayLegacy, KindSwayWorkspace, KindX11}

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return "", errors.Errorf("unknown backend %q (want one of: %s)", s, strings.Join(names, ", "))
}

var (
	// ErrNoFocusedOutput is returned when no output reports focus.
	ErrNoFocusedOutput = errors.New("no focused output found")
	// ErrNoFocusedWorkspace is returned when no workspace reports focus.
	ErrNoFocusedWorkspace = errors.New("no focused workspace found")
)

// Display describes the focused display in logical pixels. Usable is
// relative to the Bounds origin and excludes bars.
type Display struct {
	Name   string
	Scale  float64
	Bounds Rect
	Usable Rect
}

// BarHeight is the space reserved above the usable area.
func (d Display) BarHeight() int {
	return placement.BarHeight(d.Usable)
}

// Backend abstracts window-system operations across window managers.
type Backend interface {
	Kind() Kind
	// FocusedDisplay returns the geometry of the focused output/workspace.
	FocusedDisplay(ctx context.Context) (Display, error)
	// Apply moves and resizes the target window.
	Apply(ctx context.Context, target Rect) error
	Close() error
}

// Criteria selects a Sway window by title or app_id equality.
type Criteria struct {
	Title string
	AppID string
}

// String renders the criteria in Sway command syntax, e.g. [app_id="dogky"].
func (c Criteria) String() string {
	var parts []string
	if c.AppID != "" {
		parts = append(parts, fmt.Sprintf("app_id=%s", quote(c.AppID)))
	}
	if c.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%s", quote(c.Title)))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Title == "" && c.AppID == ""
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Request is the caller supplied size of the target window. A zero Height
// fills the usable height of the display.
type Request struct {
	Width  int
	Height int
}

// Result is what Run computed and applied.
type Result struct {
	Display Display
	Target  Rect
	Applied bool
}

// Run queries the focused display, computes the right-aligned target
// rectangle and applies it unless dryRun is set.
func Run(ctx context.Context, b Backend, req Request, dryRun bool) (Result, error) {
	if req.Width <= 0 {
		return Result{}, errors.Errorf("window width must be positive, got %d", req.Width)
	}
	if req.Height < 0 {
		return Result{}, errors.Errorf("window height must not be negative, got %d", req.Height)
	}

	logger := zerolog.Ctx(ctx)

	display, err := b.FocusedDisplay(ctx)
	if err != nil {
		return Result{}, errors.Wrapf(err, "%s: query display", b.Kind())
	}
	logger.Debug().
		Str("backend", string(b.Kind())).
		Str("output", display.Name).
		Float64("scale", display.Scale).
		Int("width", display.Bounds.Width).
		Int("height", display.Bounds.Height).
		Int("bar_height", display.BarHeight()).
		Msg("focused display")

	target := placement.RightAligned(display.Bounds, display.Usable, req.Width, req.Height)
	res := Result{Display: display, Target: target}
	if dryRun {
		return res, nil
	}

	if err := b.Apply(ctx, target); err != nil {
		return res, errors.Wrapf(err, "%s: apply", b.Kind())
	}
	res.Applied = true
	logger.Info().
		Int("x", target.X).
		Int("y", target.Y).
		Int("width", target.Width).
		Int("height", target.Height).
		Msg("window placed")
	return res, nil
}
