package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/1broseidon/movewin/internal/config"
	"github.com/1broseidon/movewin/internal/platform"
	"github.com/1broseidon/movewin/internal/x11"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	labelColor  = color.New(color.FgCyan, color.Bold)
	dryRunColor = color.New(color.FgYellow)
)

type criteriaFlags struct {
	appID string
	title string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.appID, "app-id", "", "match the window by app_id instead of the configured criteria")
	cmd.Flags().StringVar(&f.title, "title", "", "match the window by title instead of the configured criteria")
}

func (f *criteriaFlags) apply(opts *platform.Options) {
	if f.appID == "" && f.title == "" {
		return
	}
	opts.Sway.Criteria = platform.Criteria{AppID: f.appID, Title: f.title}
}

func (a *app) swayCmd() *cobra.Command {
	var crit criteriaFlags
	cmd := &cobra.Command{
		Use:   "sway <width> [height]",
		Short: "Place the window through swaymsg with a fixed bar height",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}
			return a.place(cmd.Context(), platform.KindSwayLegacy, req, &crit, nil)
		},
	}
	crit.register(cmd)
	return cmd
}

func (a *app) workspaceCmd() *cobra.Command {
	var crit criteriaFlags
	cmd := &cobra.Command{
		Use:   "workspace <width> [height]",
		Short: "Place the window over the Sway IPC socket using the workspace rectangle",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}
			return a.place(cmd.Context(), platform.KindSwayWorkspace, req, &crit, nil)
		},
	}
	crit.register(cmd)
	return cmd
}

func (a *app) x11Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "x11 [<monitor-width> <monitor-height>] <width> <height>",
		Short: "Wait for the window on X11 and dock it on all desktops",
		Long: `Wait until a client with the configured WM_CLASS is mapped, mark it sticky,
below, skip-taskbar and skip-pager, then move it to the right edge.

With two arguments the monitor size is read from RandR.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return usageError{errors.Errorf("accepts 2 or 4 arg(s), received %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			monitorW, monitorH, req, err := parseX11Args(args)
			if err != nil {
				return err
			}
			return a.place(cmd.Context(), platform.KindX11, req, nil, func(opts *platform.Options) {
				opts.X11.MonitorWidth = monitorW
				opts.X11.MonitorHeight = monitorH
			})
		},
	}
}

func (a *app) placeCmd() *cobra.Command {
	var crit criteriaFlags
	cmd := &cobra.Command{
		Use:   "place <width> [height]",
		Short: "Place the window with the backend named in the config",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}
			return a.place(cmd.Context(), "", req, &crit, nil)
		},
	}
	crit.register(cmd)
	return cmd
}

// place runs the pipeline for kind, or for the configured backend when kind
// is empty.
func (a *app) place(ctx context.Context, kind platform.Kind, req platform.Request, crit *criteriaFlags, tweak func(*platform.Options)) error {
	ctx, cfg, err := a.setup(ctx)
	if err != nil {
		return err
	}
	if kind == "" {
		kind, err = platform.ParseKind(cfg.Backend)
		if err != nil {
			return err
		}
	}

	opts := backendOptions(cfg, kind)
	if crit != nil {
		crit.apply(&opts)
	}
	if tweak != nil {
		tweak(&opts)
	}

	backend, err := platform.Open(ctx, kind, opts)
	if err != nil {
		return err
	}
	defer backend.Close()

	res, err := platform.Run(ctx, backend, req, a.dryRun)
	if err != nil {
		return err
	}
	a.printResult(res)
	return nil
}

func backendOptions(cfg *config.Config, kind platform.Kind) platform.Options {
	criteria := cfg.Sway.Criteria
	if kind == platform.KindSwayLegacy {
		criteria = cfg.Sway.LegacyCriteria
	}
	return platform.Options{
		Sway: platform.SwayOptions{
			Criteria:       platform.Criteria{AppID: criteria.AppID, Title: criteria.Title},
			PersistentRule: cfg.Sway.PersistentRule,
			BarHeight:      cfg.Sway.BarHeight,
		},
		SwaySocket: cfg.Sway.SocketPath,
		Swaymsg:    cfg.Sway.SwaymsgPath,
		X11: platform.X11Options{
			Display:      cfg.X11.Display,
			Class:        x11.WindowClass{Instance: cfg.X11.Instance, Class: cfg.X11.Class},
			PollInterval: cfg.X11.PollInterval,
			WaitTimeout:  cfg.X11.WaitTimeout,
		},
	}
}

func (a *app) printResult(res platform.Result) {
	d := res.Display
	name := d.Name
	if name == "" {
		name = "-"
	}
	labelColor.Fprint(a.stdout, "output")
	fmt.Fprintf(a.stdout, " %s %dx%d scale %g bar %d\n", name, d.Bounds.Width, d.Bounds.Height, d.Scale, d.BarHeight())

	t := res.Target
	labelColor.Fprint(a.stdout, "target")
	fmt.Fprintf(a.stdout, " x=%d y=%d width=%d height=%d", t.X, t.Y, t.Width, t.Height)
	if !res.Applied {
		dryRunColor.Fprint(a.stdout, " (dry run)")
	}
	fmt.Fprintln(a.stdout)
}

func parseRequest(args []string) (platform.Request, error) {
	width, err := parseDimension("width", args[0], false)
	if err != nil {
		return platform.Request{}, err
	}
	req := platform.Request{Width: width}
	if len(args) > 1 {
		if req.Height, err = parseDimension("height", args[1], true); err != nil {
			return platform.Request{}, err
		}
	}
	return req, nil
}

func parseX11Args(args []string) (monitorW, monitorH int, req platform.Request, err error) {
	if len(args) == 4 {
		if monitorW, err = parseDimension("monitor width", args[0], false); err != nil {
			return 0, 0, req, err
		}
		if monitorH, err = parseDimension("monitor height", args[1], false); err != nil {
			return 0, 0, req, err
		}
		args = args[2:]
	}
	req, err = parseRequest(args)
	return monitorW, monitorH, req, err
}

func parseDimension(name, s string, allowZero bool) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageError{errors.Errorf("%s must be an integer, got %q", name, s)}
	}
	if n < 0 || (n == 0 && !allowZero) {
		return 0, usageError{errors.Errorf("%s must be positive, got %d", name, n)}
	}
	return n, nil
}
