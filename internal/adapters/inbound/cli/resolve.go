package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/tui"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var (
		toolchain  string
		defines    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Show which jdeps executable would be used",
		Long:  "Locate jdeps the way a run would: the configured toolchain first, then JAVA_HOME, then PATH.",
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

			log, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			svc := NewService(log)

			cfg, err := svc.LoadConfig(absPath, defines)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("toolchain") {
				cfg.Toolchain = domain.ToolchainConfig{JDeps: toolchain}
			}

			exe, err := svc.Resolve(absPath, cfg)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, map[string]string{"executable": exe})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResolution(exe))
			return nil
		},
	}

	cmd.Flags().StringVar(&toolchain, "toolchain", "", "JDK bin directory or jdeps executable to use")
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "Set a property, e.g. -D jdeps.failOnWarning=false")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
