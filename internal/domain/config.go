package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Goal selects which compiled classes a run analyzes.
type Goal string

const (
	GoalMain Goal = "jdkinternals"
	GoalTest Goal = "test-jdkinternals"
)

// ValidGoals enumerates all recognized goals.
var ValidGoals = []Goal{GoalMain, GoalTest}

// ParseGoal maps a goal name to a Goal.
func ParseGoal(name string) (Goal, error) {
	for _, g := range ValidGoals {
		if string(g) == name {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q (valid: jdkinternals, test-jdkinternals)", name)
}

// AnalysisConfig holds every option that shapes a jdeps invocation.
// It is loaded from .jdepscheck.yaml and never mutated once a run starts.
type AnalysisConfig struct {
	FailOnWarning    *bool    `yaml:"fail_on_warning,omitempty"    json:"fail_on_warning,omitempty"`
	MultiRelease     string   `yaml:"multi_release,omitempty"      json:"multi_release,omitempty"`
	IncludeClasspath *bool    `yaml:"include_classpath,omitempty"  json:"include_classpath,omitempty"`
	AnalyzeIncludes  []string `yaml:"dependencies_to_analyze_includes,omitempty" json:"dependencies_to_analyze_includes,omitempty"`
	AnalyzeExcludes  []string `yaml:"dependencies_to_analyze_excludes,omitempty" json:"dependencies_to_analyze_excludes,omitempty"`
	DotOutput        string   `yaml:"dot_output,omitempty"         json:"dot_output,omitempty"`
	Verbose          string   `yaml:"verbose,omitempty"            json:"verbose,omitempty"`
	Packages         []string `yaml:"packages,omitempty"           json:"packages,omitempty"`
	Include          string   `yaml:"include,omitempty"            json:"include,omitempty"`
	APIOnly          bool     `yaml:"api_only,omitempty"           json:"api_only,omitempty"`
	Profile          bool     `yaml:"profile,omitempty"            json:"profile,omitempty"`
	Recursive        bool     `yaml:"recursive,omitempty"          json:"recursive,omitempty"`
	Module           string   `yaml:"module,omitempty"             json:"module,omitempty"`
	JDKInternals     bool     `yaml:"jdkinternals,omitempty"       json:"jdkinternals,omitempty"`

	Toolchain ToolchainConfig `yaml:"toolchain,omitempty" json:"toolchain,omitempty"`
	Timeout   time.Duration   `yaml:"timeout,omitempty"   json:"timeout,omitempty"`

	Main      SourceSet  `yaml:"main,omitempty"      json:"main,omitempty"`
	Test      SourceSet  `yaml:"test,omitempty"      json:"test,omitempty"`
	Artifacts []Artifact `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
}

// ToolchainConfig points at a specific JDK instead of JAVA_HOME/PATH lookup.
// JDKHome wins over JDeps when both are set.
type ToolchainConfig struct {
	JDKHome string `yaml:"jdk_home,omitempty" json:"jdk_home,omitempty"`
	JDeps   string `yaml:"jdeps,omitempty"    json:"jdeps,omitempty"`
}

// Hint returns the toolchain-supplied executable hint, or "" when no
// toolchain is configured.
func (t ToolchainConfig) Hint() string {
	if t.JDKHome != "" {
		return filepath.Join(t.JDKHome, "bin")
	}
	return t.JDeps
}

// SourceSet describes the compiled output and classpath of one goal.
type SourceSet struct {
	ClassesDir    string   `yaml:"classes_dir,omitempty"     json:"classes_dir,omitempty"`
	Classpath     []string `yaml:"classpath,omitempty"       json:"classpath,omitempty"`
	ClasspathFile string   `yaml:"classpath_file,omitempty"  json:"classpath_file,omitempty"`
	FailOnWarning *bool    `yaml:"fail_on_warning,omitempty" json:"fail_on_warning,omitempty"`
}

// Artifact is a resolved project dependency.
type Artifact struct {
	GroupID    string `yaml:"group_id"          json:"group_id"`
	ArtifactID string `yaml:"artifact_id"       json:"artifact_id"`
	Version    string `yaml:"version,omitempty" json:"version,omitempty"`
	File       string `yaml:"file"              json:"file"`
}

// VersionlessKey returns "groupId:artifactId".
func (a Artifact) VersionlessKey() string {
	return a.GroupID + ":" + a.ArtifactID
}

const (
	defaultMainClassesDir = "target/classes"
	defaultTestClassesDir = "target/test-classes"
)

// DefaultConfig returns the configuration used when no .jdepscheck.yaml exists.
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		FailOnWarning:    boolPtr(true),
		IncludeClasspath: boolPtr(true),
		Main:             SourceSet{ClassesDir: defaultMainClassesDir},
		Test:             SourceSet{ClassesDir: defaultTestClassesDir, FailOnWarning: boolPtr(true)},
	}
}

// WithDefaults fills every unset field that has a default.
func (c AnalysisConfig) WithDefaults() AnalysisConfig {
	d := DefaultConfig()
	if c.FailOnWarning == nil {
		c.FailOnWarning = d.FailOnWarning
	}
	if c.IncludeClasspath == nil {
		c.IncludeClasspath = d.IncludeClasspath
	}
	if c.Main.ClassesDir == "" {
		c.Main.ClassesDir = d.Main.ClassesDir
	}
	if c.Test.ClassesDir == "" {
		c.Test.ClassesDir = d.Test.ClassesDir
	}
	if c.Test.FailOnWarning == nil {
		c.Test.FailOnWarning = d.Test.FailOnWarning
	}
	return c
}

// ShouldIncludeClasspath reports whether classpath elements join the target set.
func (c AnalysisConfig) ShouldIncludeClasspath() bool {
	return c.IncludeClasspath == nil || *c.IncludeClasspath
}

// FailOnWarningFor reports whether offending packages fail the given goal.
func (c AnalysisConfig) FailOnWarningFor(g Goal) bool {
	flag := c.FailOnWarning
	if g == GoalTest {
		flag = c.Test.FailOnWarning
	}
	return flag == nil || *flag
}

// IgnoresExcludes reports whether exclude patterns are set without any
// include pattern for them to narrow. They have no effect then.
func (c AnalysisConfig) IgnoresExcludes() bool {
	return len(c.AnalyzeExcludes) > 0 && len(c.AnalyzeIncludes) == 0
}

// SourceSetFor returns the source set analyzed by the given goal.
func (c AnalysisConfig) SourceSetFor(g Goal) SourceSet {
	if g == GoalTest {
		return c.Test
	}
	return c.Main
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c AnalysisConfig) Validate() error {
	// multi_release is "base" or a release >= 9
	if c.MultiRelease != "" && c.MultiRelease != "base" {
		n, err := strconv.Atoi(c.MultiRelease)
		if err != nil || n < 9 {
			return fmt.Errorf("multi_release %q must be \"base\" or an integer >= 9", c.MultiRelease)
		}
	}

	// The main goal reads the top-level flag; test has its own.
	if c.Main.FailOnWarning != nil {
		return fmt.Errorf("main.fail_on_warning is not supported; use top-level fail_on_warning")
	}
	for _, p := range c.AnalyzeIncludes {
		if err := validatePattern(p); err != nil {
			return fmt.Errorf("dependencies_to_analyze_includes: %w", err)
		}
	}
	for _, p := range c.AnalyzeExcludes {
		if err := validatePattern(p); err != nil {
			return fmt.Errorf("dependencies_to_analyze_excludes: %w", err)
		}
	}

	for i, a := range c.Artifacts {
		if a.GroupID == "" || a.ArtifactID == "" {
			return fmt.Errorf("artifacts[%d] needs group_id and artifact_id", i)
		}
		if a.File == "" {
			return fmt.Errorf("artifacts[%d] (%s) has no file", i, a.VersionlessKey())
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", c.Timeout)
	}

	return nil
}

func validatePattern(p string) error {
	if p == "" {
		return fmt.Errorf("empty pattern")
	}
	if strings.Count(p, ":") > 1 {
		return fmt.Errorf("pattern %q must look like groupId:artifactId", p)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// BoolPtr returns a pointer to b, for building configs in callers.
func BoolPtr(b bool) *bool { return boolPtr(b) }
