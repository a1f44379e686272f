package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/movewin/internal/config"
	"github.com/1broseidon/movewin/internal/logging"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// usageError marks failures caused by the command line rather than the
// window system. They exit with status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type app struct {
	configPath string
	debug      bool
	dryRun     bool
	noColor    bool

	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var uerr usageError
	if errors.As(err, &uerr) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	if a.debug {
		fmt.Fprintf(stderr, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "movewin",
		Short: "Dock a widget window to the right edge of the focused display",
		Long: `movewin asks the window manager for the geometry of the focused output,
computes a rectangle flush against its right edge and below the status bar,
and moves the target window there.

Backends: sway-legacy (swaymsg), sway-workspace (Sway IPC) and x11 (EWMH).`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/movewin/config.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "debug logging and error stack traces")
	flags.BoolVar(&a.dryRun, "dry-run", false, "print the target rectangle without moving the window")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if a.noColor {
			color.NoColor = true
		}
	}

	root.AddCommand(
		a.swayCmd(),
		a.workspaceCmd(),
		a.x11Cmd(),
		a.placeCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) loadConfig() (*config.LoadResult, error) {
	if a.configPath == "" {
		return config.Load()
	}
	return config.LoadFromPath(a.configPath)
}

// setup loads the config and returns a context carrying the process logger.
func (a *app) setup(ctx context.Context) (context.Context, *config.Config, error) {
	res, err := a.loadConfig()
	if err != nil {
		return ctx, nil, err
	}

	level, err := logging.ParseLevel(res.Config.LogLevel)
	if err != nil {
		return ctx, nil, err
	}
	if a.debug {
		level = zerolog.DebugLevel
	}
	opts := []logging.Option{logging.WithWriter(a.stderr), logging.WithLevel(level)}
	if a.noColor {
		opts = append(opts, logging.WithoutColor())
	}
	logger := logging.New(opts...)
	if len(res.Files) > 0 {
		logger.Debug().Strs("files", res.Files).Msg("config loaded")
	}
	return logger.WithContext(ctx), res.Config, nil
}

func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
