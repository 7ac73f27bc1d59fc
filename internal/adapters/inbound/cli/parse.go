package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/tui"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var (
		failOnWarning bool
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Interpret saved jdeps output",
		Long:  "Read jdeps output from a file, or from stdin when no file or - is given, and apply the same check as a run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening jdeps output: %w", err)
				}
				defer f.Close()
				in = f
			}

			log, err := opts.logger(cmd)
			if err != nil {
				return err
			}

			report, parseErr := NewService(log).ParseOutput(in, failOnWarning)
			if report == nil {
				return parseErr
			}
			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, nil))
			}
			return parseErr
		},
	}

	cmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", true, "Fail when JDK internal API usage is found")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
