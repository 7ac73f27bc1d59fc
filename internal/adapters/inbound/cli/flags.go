package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// analysisFlags are the command-line overrides of .jdepscheck.yaml. Only
// flags the user actually set are applied.
type analysisFlags struct {
	failOnWarning    bool
	multiRelease     string
	includeClasspath bool
	analyzeIncludes  []string
	analyzeExcludes  []string
	dotOutput        string
	verbose          string
	packages         []string
	include          string
	apiOnly          bool
	profile          bool
	recursive        bool
	module           string
	jdkInternals     bool
	classesDir       string
	classpath        []string
	classpathFile    string
	toolchain        string
	timeout          time.Duration
	defines          []string
}

func bindAnalysisFlags(fs *pflag.FlagSet, f *analysisFlags) {
	fs.BoolVar(&f.failOnWarning, "fail-on-warning", true, "Fail when JDK internal API usage is found")
	fs.StringVar(&f.multiRelease, "multi-release", "", "Version to use for multi-release JARs (base or 9+)")
	fs.BoolVar(&f.includeClasspath, "include-classpath", true, "Analyze classpath entries as well as the classes directory")
	fs.StringSliceVar(&f.analyzeIncludes, "analyze-include", nil, "groupId:artifactId patterns of artifacts to analyze")
	fs.StringSliceVar(&f.analyzeExcludes, "analyze-exclude", nil, "groupId:artifactId patterns removed from --analyze-include matches")
	fs.StringVar(&f.dotOutput, "dot-output", "", "Directory for DOT file output")
	fs.StringVar(&f.verbose, "verbose", "", "Print dependencies: class, package, or any other value for all")
	fs.StringArrayVar(&f.packages, "package", nil, "Restrict analysis to dependencies on this package (repeatable)")
	fs.StringVar(&f.include, "include", "", "Restrict analysis to classes matching this regex")
	fs.BoolVar(&f.apiOnly, "api-only", false, "Restrict analysis to public API signatures")
	fs.BoolVar(&f.profile, "profile", false, "Show the profile containing each package")
	fs.BoolVar(&f.recursive, "recursive", false, "Recursively traverse all dependencies")
	fs.StringVar(&f.module, "module", "", "Module name to analyze")
	fs.BoolVar(&f.jdkInternals, "jdkinternals", false, "Pass -jdkinternals to jdeps")
	fs.StringVar(&f.classesDir, "classes-dir", "", "Compiled classes directory")
	fs.StringArrayVar(&f.classpath, "classpath", nil, "Classpath entry (repeatable)")
	fs.StringVar(&f.classpathFile, "classpath-file", "", "File listing classpath entries")
	fs.StringVar(&f.toolchain, "toolchain", "", "JDK bin directory or jdeps executable to use")
	fs.DurationVar(&f.timeout, "timeout", 0, "Abort jdeps after this long (0 disables)")
	fs.StringArrayVarP(&f.defines, "define", "D", nil, "Set a property, e.g. -D jdeps.failOnWarning=false")
}

// apply overlays the changed flags on cfg for goal.
func (f *analysisFlags) apply(fs *pflag.FlagSet, cfg *domain.AnalysisConfig, goal domain.Goal) {
	ss := &cfg.Main
	if goal == domain.GoalTest {
		ss = &cfg.Test
	}

	if fs.Changed("fail-on-warning") {
		if goal == domain.GoalTest {
			ss.FailOnWarning = domain.BoolPtr(f.failOnWarning)
		} else {
			cfg.FailOnWarning = domain.BoolPtr(f.failOnWarning)
		}
	}
	if fs.Changed("multi-release") {
		cfg.MultiRelease = f.multiRelease
	}
	if fs.Changed("include-classpath") {
		cfg.IncludeClasspath = domain.BoolPtr(f.includeClasspath)
	}
	if fs.Changed("analyze-include") {
		cfg.AnalyzeIncludes = f.analyzeIncludes
	}
	if fs.Changed("analyze-exclude") {
		cfg.AnalyzeExcludes = f.analyzeExcludes
	}
	if fs.Changed("dot-output") {
		cfg.DotOutput = f.dotOutput
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("package") {
		cfg.Packages = f.packages
	}
	if fs.Changed("include") {
		cfg.Include = f.include
	}
	if fs.Changed("api-only") {
		cfg.APIOnly = f.apiOnly
	}
	if fs.Changed("profile") {
		cfg.Profile = f.profile
	}
	if fs.Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if fs.Changed("module") {
		cfg.Module = f.module
	}
	if fs.Changed("jdkinternals") {
		cfg.JDKInternals = f.jdkInternals
	}
	if fs.Changed("classes-dir") {
		ss.ClassesDir = f.classesDir
	}
	if fs.Changed("classpath") {
		ss.Classpath = f.classpath
	}
	if fs.Changed("classpath-file") {
		ss.ClasspathFile = f.classpathFile
	}
	if fs.Changed("toolchain") {
		cfg.Toolchain = domain.ToolchainConfig{JDeps: f.toolchain}
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
}
