package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotApplicable is returned by a lookup strategy that has nothing to say,
// so the next strategy should be tried.
var ErrNotApplicable = errors.New("not applicable")

// ResolutionError reports that the jdeps executable could not be located.
// No process has been spawned when it is returned.
type ResolutionError struct {
	Path   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return e.Reason
}

// ArgumentError reports a failure while assembling the jdeps command line.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string { return e.Err.Error() }

func (e *ArgumentError) Unwrap() error { return e.Err }

// ExecutionError reports that jdeps could not run or exited non-zero.
type ExecutionError struct {
	ExitCode    int
	Stderr      string
	CommandLine string
	Err         error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Unable to execute jdeps command: %v", e.Err)
	}

	var b strings.Builder
	b.WriteString("\nExit code: ")
	fmt.Fprintf(&b, "%d", e.ExitCode)
	if e.Stderr != "" {
		b.WriteString(" - ")
		b.WriteString(e.Stderr)
	}
	b.WriteString("\n")
	b.WriteString("Command line was: ")
	b.WriteString(e.CommandLine)
	b.WriteString("\n\n")
	return b.String()
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// PolicyViolationError reports offending packages on a run configured to
// fail on warnings.
type PolicyViolationError struct {
	Offending []PackageEntry
}

func (e *PolicyViolationError) Error() string {
	return FormatOffending(e.Offending)
}

// FormatOffending renders the offending-packages report, one
// " <package> -> <description>" line per entry.
func FormatOffending(entries []PackageEntry) string {
	var b strings.Builder
	b.WriteString("Found offending packages:\n")
	for _, e := range entries {
		b.WriteString(" ")
		b.WriteString(e.Package)
		b.WriteString(" -> ")
		b.WriteString(e.Value)
		b.WriteString("\n")
	}
	return b.String()
}
