package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/tui"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		goalName   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show past runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var goal domain.Goal
			if goalName != "" {
				if goal, err = domain.ParseGoal(goalName); err != nil {
					return err
				}
			}

			log, err := opts.logger(cmd)
			if err != nil {
				return err
			}

			entries, err := NewService(log).History(absPath, goal)
			if err != nil {
				return err
			}

			if jsonOutput {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&goalName, "goal", "", "Only show runs of this goal (jdkinternals, test-jdkinternals)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
