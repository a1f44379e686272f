package main

import (
	"fmt"

	"github.com/1broseidon/movewin/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var defaults bool
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  rangeArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := a.loadConfig()
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	printCmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults (no files)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  rangeArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "config: ok")
			return nil
		},
	}

	explainCmd := &cobra.Command{
		Use:   "explain <yaml.path>",
		Short: "Show an effective value and where it was set",
		Args:  rangeArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return usageError{err}
			}
			fmt.Fprintf(a.stdout, "%s: %v\n", args[0], value)
			switch src.Kind {
			case config.SourceFile:
				fmt.Fprintf(a.stdout, "source: %s:%d:%d\n", src.File, src.Line, src.Column)
			default:
				fmt.Fprintf(a.stdout, "source: %s\n", src.Kind)
			}
			return nil
		},
	}

	cmd.AddCommand(printCmd, validateCmd, explainCmd)
	return cmd
}
