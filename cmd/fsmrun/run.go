package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librescoot/matchfsm"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run EVENT...",
		Short: "Replay events against a fresh machine",
		Long: `Builds a machine from the table and processes each event in order,
printing one line per transition. Stops at the first rejected event unless
--keep-going is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			return runEvents(cmd, args, keepGoing)
		},
	}
	cmd.Flags().BoolP("keep-going", "k", false, "Continue after rejected events")
	return cmd
}

func runEvents(cmd *cobra.Command, events []string, keepGoing bool) error {
	logger, err := loggerFromFlags(cmd)
	if err != nil {
		return err
	}
	t, err := tableFromFlags(cmd)
	if err != nil {
		return err
	}

	d, err := t.Definition()
	if err != nil {
		return err
	}
	d.OnTransition(func(ctx context.Context, tr matchfsm.Transition[string, string, string]) error {
		fmt.Fprintln(cmd.OutOrStdout(), tr)
		return nil
	})

	m, err := d.Build(matchfsm.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rejected := 0
	for _, ev := range events {
		if _, err := m.ProcessEvent(ctx, ev); err != nil {
			if !keepGoing || !matchfsm.IsInvalidTransitionError(err) {
				return err
			}
			logger.Warn("event rejected", "event", ev, "state", m.CurrentState())
			rejected++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "final state: %s\n", m.CurrentState())
	if rejected > 0 {
		return fmt.Errorf("%d of %d events rejected", rejected, len(events))
	}
	return nil
}
