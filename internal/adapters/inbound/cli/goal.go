package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/tui"
	"github.com/jdepscheck/jdepscheck/internal/application"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

func newGoalCmd(opts *rootOptions, goal domain.Goal) *cobra.Command {
	var (
		flags      analysisFlags
		jsonOutput bool
		noHistory  bool
	)

	short := "Check main classes for JDK internal API usage"
	if goal == domain.GoalTest {
		short = "Check test classes for JDK internal API usage"
	}

	cmd := &cobra.Command{
		Use:   string(goal) + " [path]",
		Short: short,
		Long: short + ".\n\nSettings come from .jdepscheck.yaml, then -D properties, then flags. " +
			"Exits 1 when offending packages fail the check and 2 on any other error.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			svc := NewService(log)

			cfg, err := svc.LoadConfig(absPath, flags.defines)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg, goal)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			previous, err := svc.LastReport(absPath, goal)
			if err != nil {
				log.WithError(err).Debug("ignoring unreadable previous report")
				previous = nil
			}

			report, runErr := svc.Run(cmd.Context(), application.RunRequest{
				ProjectPath: absPath,
				Goal:        goal,
				Config:      cfg,
				NoHistory:   noHistory,
			})
			if report != nil {
				if jsonOutput {
					if err := renderJSON(cmd, report); err != nil {
						return err
					}
				} else {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, previous))
				}
			}
			return runErr
		},
	}

	bindAnalysisFlags(cmd.Flags(), &flags)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
