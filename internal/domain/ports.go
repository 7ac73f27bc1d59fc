package domain

import "context"

// ConfigLoader loads the analysis configuration of a project.
type ConfigLoader interface {
	Load(projectPath string) (AnalysisConfig, error)
}

// EnvSource returns the environment variables visible to a run.
type EnvSource interface {
	Environ(projectPath string) (map[string]string, error)
}

// ExecutableLocator finds the jdeps executable.
type ExecutableLocator interface {
	Locate(hint string, env map[string]string) (string, error)
}

// ClasspathReader reads classpath entries written by a build tool.
type ClasspathReader interface {
	Read(path string) ([]string, error)
}

// ClassScanner inventories a compiled classes directory.
type ClassScanner interface {
	Scan(classesDir string) (*ClassInventory, error)
}

// ProcessRunner runs a command, handing each standard-output line to
// onStdout in order.
type ProcessRunner interface {
	Run(ctx context.Context, inv Invocation, onStdout func(line string)) (*ProcessResult, error)
}

// RunHistory persists run entries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// ReportStore keeps the last report per goal.
type ReportStore interface {
	Save(report *Report) error
	Load(projectPath string, goal Goal) (*Report, error)
}

// GitInfo provides repository metadata.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}
