package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/librescoot/matchfsm/internal/logging"
	"github.com/librescoot/matchfsm/table"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fsmrun",
		Short:         "fsmrun runs state machines described by YAML tables",
		Long:          `fsmrun loads a transition table, checks it and replays events against a fresh machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().StringP("table", "t", "machine.yaml", "Path to the transition table")
	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newValidateCmd(), newRunCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loggerFromFlags(cmd *cobra.Command) (*slog.Logger, error) {
	lvl, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func tableFromFlags(cmd *cobra.Command) (*table.Table, error) {
	path, _ := cmd.Flags().GetString("table")
	t, err := table.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
