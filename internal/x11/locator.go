package x11

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is the wait between two client-list scans.
const DefaultPollInterval = 100 * time.Millisecond

// ErrWindowNotFound is returned when the locator gives up.
var ErrWindowNotFound = errors.New("window not found")

// ClientLister lists the windows managed by the window manager.
type ClientLister interface {
	Clients() ([]Client, error)
}

// Locator waits for a window with a given WM_CLASS to be mapped.
type Locator struct {
	Source   ClientLister
	Interval time.Duration
	// Timeout bounds the total wait. Zero waits until ctx is done.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewLocator returns a locator with the default poll interval and no timeout.
func NewLocator(source ClientLister) *Locator {
	return &Locator{
		Source:   source,
		Interval: DefaultPollInterval,
		Logger:   zerolog.Nop(),
	}
}

// Match returns the first client whose class pair equals target, skipping
// windows pinned to all desktops.
func Match(clients []Client, target WindowClass) (Client, bool) {
	for _, c := range clients {
		if c.OnAllDesktops() {
			continue
		}
		if c.Class == target {
			return c, true
		}
	}
	return Client{}, false
}

// Find polls the client list until a window matches target.
func (l *Locator) Find(ctx context.Context, target WindowClass) (Client, error) {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		clients, err := l.Source.Clients()
		if err != nil {
			l.Logger.Debug().Err(err).Int("attempt", attempt).Msg("list clients failed")
		} else if c, ok := Match(clients, target); ok {
			l.Logger.Debug().
				Uint32("window", uint32(c.ID)).
				Str("class", target.String()).
				Int("attempt", attempt).
				Msg("window found")
			return c, nil
		}

		select {
		case <-ctx.Done():
			return Client{}, errors.Wrapf(ErrWindowNotFound, "%s after %d attempts: %v", target, attempt, ctx.Err())
		case <-ticker.C:
		}
	}
}
