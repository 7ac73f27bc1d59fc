package domain

import (
	"strings"
	"time"
)

// AnalysisTarget is the resolved input of one run: the ordered,
// duplicate-free paths jdeps analyzes plus the classpath supplied as
// context only.
type AnalysisTarget struct {
	Targets   []string `json:"targets"`
	Classpath []string `json:"classpath,omitempty"`
}

// Invocation is a fully built jdeps command.
type Invocation struct {
	Executable string        `json:"executable"`
	Args       []string      `json:"args"`
	Timeout    time.Duration `json:"timeout,omitempty"`
	// Env replaces the inherited environment when non-nil, as KEY=VALUE pairs.
	Env []string `json:"-"`
}

// CommandLine renders the invocation as a single unquoted line.
func (i Invocation) CommandLine() string {
	parts := append([]string{i.Executable}, i.Args...)
	return strings.Join(parts, " ")
}

// ProcessResult is what the runner observed after the process exited.
type ProcessResult struct {
	ExitCode int      `json:"exit_code"`
	Stderr   []string `json:"stderr,omitempty"`
}

// Report is the outcome of one goal run.
type Report struct {
	Goal        Goal            `json:"goal"`
	ProjectPath string          `json:"project_path"`
	Timestamp   time.Time       `json:"timestamp"`
	CommitHash  string          `json:"commit_hash,omitempty"`
	Skipped     bool            `json:"skipped,omitempty"`
	Executable  string          `json:"executable,omitempty"`
	CommandLine string          `json:"command_line,omitempty"`
	ExitCode    int             `json:"exit_code"`
	Inventory   *ClassInventory `json:"inventory,omitempty"`
	Offending   *PackageMap     `json:"offending_packages"`
	Profiles    *PackageMap     `json:"profiles"`
	Output      []string        `json:"output,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	FailOnWarn  bool            `json:"fail_on_warning"`
	Passed      bool            `json:"passed"`
}

// HasOffending reports whether jdeps flagged any internal API usage.
func (r *Report) HasOffending() bool {
	return r.Offending.Len() > 0
}

// ClassInventory summarizes the classes directory handed to jdeps.
type ClassInventory struct {
	Root       string   `json:"root"`
	ClassFiles int      `json:"class_files"`
	Packages   []string `json:"packages,omitempty"`
	// Versioned is set when the directory has a META-INF/versions tree.
	Versioned bool `json:"versioned,omitempty"`
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Goal       Goal   `json:"goal"`
	Offending  int    `json:"offending"`
	Passed     bool   `json:"passed"`
}
