package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/classpath"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/config"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/envfile"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/gitinfo"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/history"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/process"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/reports"
	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/scanner"
	"github.com/jdepscheck/jdepscheck/internal/application"
	"github.com/jdepscheck/jdepscheck/internal/domain"
	"github.com/jdepscheck/jdepscheck/internal/domain/locate"
	"github.com/jdepscheck/jdepscheck/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	logLevel  string
	logFormat string
}

func (o *rootOptions) logger(cmd *cobra.Command) (*logrus.Logger, error) {
	return logging.New(o.logLevel, o.logFormat, cmd.ErrOrStderr())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jdepscheck",
		Short: "Catch JDK internal API usage before it ships",
		Long: "jdepscheck runs the JDK's jdeps analyzer over compiled classes and fails the build " +
			"when they depend on JDK-internal APIs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logging.FormatText, "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGoalCmd(opts, domain.GoalMain))
	cmd.AddCommand(newGoalCmd(opts, domain.GoalTest))
	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// NewService wires the production adapters into the application service.
func NewService(log logrus.FieldLogger) *application.JDepsService {
	locator := locate.New()
	locator.Log = log
	return application.NewJDepsService(
		config.New(),
		envfile.New(),
		locator,
		classpath.New(),
		scanner.New(),
		process.New(),
		history.New(),
		reports.New(),
		gitinfo.New(),
		log,
	)
}

// Execute runs the CLI and reports the error, if any, on stderr.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// ExitCode maps an Execute error to a process exit status: 1 when the
// analysis found offending packages, 2 for every other failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case application.IsPolicyViolation(err):
		return 1
	default:
		return 2
	}
}
