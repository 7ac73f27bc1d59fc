package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdepscheck/jdepscheck/internal/adapters/outbound/config"
)

// buildLayout is where a build tool puts compiled classes.
type buildLayout struct {
	mainClasses   string
	testClasses   string
	classpathFile string
	classpathHint string
}

var buildLayouts = map[string]buildLayout{
	"maven": {
		mainClasses:   "target/classes",
		testClasses:   "target/test-classes",
		classpathFile: "target/classpath.txt",
		classpathHint: "mvn dependency:build-classpath -Dmdep.outputFile=target/classpath.txt",
	},
	"gradle": {
		mainClasses:   "build/classes/java/main",
		testClasses:   "build/classes/java/test",
		classpathFile: "build/classpath.txt",
		classpathHint: "a task writing sourceSets.main.runtimeClasspath.asPath to build/classpath.txt",
	},
}

func newInitCmd() *cobra.Command {
	var (
		buildTool string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .jdepscheck.yaml configuration file",
		Long:  "Create a .jdepscheck.yaml with defaults for your build tool's directory layout.",
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

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			layout, ok := buildLayouts[buildTool]
			if !ok {
				return fmt.Errorf("unknown build tool %q (valid: maven, gradle)", buildTool)
			}

			if err := os.WriteFile(dest, []byte(generateConfig(layout)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&buildTool, "build-tool", "maven", "Build tool layout (maven, gradle)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .jdepscheck.yaml")

	return cmd
}

func generateConfig(l buildLayout) string {
	return fmt.Sprintf(`# jdepscheck configuration
# Override any setting with -D properties (e.g. -D jdeps.failOnWarning=false) or flags.

fail_on_warning: true
include_classpath: true

main:
  classes_dir: %s
  # Written by %s
  # classpath_file: %s

test:
  classes_dir: %s
  fail_on_warning: true

# multi_release: "17"
# verbose: package
# jdkinternals: true
# timeout: 2m

# toolchain:
#   jdk_home: /usr/lib/jvm/java-17

# dependencies_to_analyze_includes:
#   - "org.example.*:*"
# dependencies_to_analyze_excludes:
#   - "org.example.legacy:*"
# artifacts:
#   - group_id: org.example.core
#     artifact_id: core
#     version: "1.0.0"
#     file: lib/core-1.0.0.jar
`, l.mainClasses, l.classpathHint, l.classpathFile, l.testClasses)
}
