package command

import (
	"path/filepath"
	"strings"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// Verbosity values with a dedicated jdeps flag. Anything else non-empty
// maps to -v.
const (
	VerboseClass   = "class"
	VerbosePackage = "package"
)

// BuildArgs produces the jdeps arguments for cfg and target. jdeps requires
// the classes to trail every flag, so the emission order is fixed.
//
//	jdeps [options] classes ...
func BuildArgs(cfg domain.AnalysisConfig, target domain.AnalysisTarget) []string {
	var args []string

	if cfg.DotOutput != "" {
		args = append(args, "-dotoutput", cfg.DotOutput)
	}

	switch cfg.Verbose {
	case "":
	case VerboseClass:
		args = append(args, "-verbose:class")
	case VerbosePackage:
		args = append(args, "-verbose:package")
	default:
		args = append(args, "-v")
	}

	if cp := contextClasspath(target); len(cp) > 0 {
		args = append(args, "-cp", strings.Join(cp, string(filepath.ListSeparator)))
	}

	for _, pkg := range cfg.Packages {
		args = append(args, "-p", pkg)
	}

	if cfg.Include != "" {
		args = append(args, "-include", cfg.Include)
	}

	if cfg.Profile {
		args = append(args, "-P")
	}

	if cfg.Module != "" {
		args = append(args, "-m", cfg.Module)
	}

	if cfg.MultiRelease != "" {
		args = append(args, "--multi-release", cfg.MultiRelease)
	}

	if cfg.APIOnly {
		args = append(args, "-apionly")
	}

	if cfg.Recursive {
		args = append(args, "-R")
	}

	if cfg.JDKInternals {
		args = append(args, "-jdkinternals")
	}

	// <classes> can be a .class file, a directory, a JAR file or a
	// fully-qualified class name.
	args = append(args, target.Targets...)

	return args
}

// contextClasspath drops classpath entries that are analyzed anyway and
// repeated entries; a path cannot be both a target and mere context.
func contextClasspath(target domain.AnalysisTarget) []string {
	analyzed := NewPathSet()
	for _, t := range target.Targets {
		analyzed.Add(t)
	}

	cp := NewPathSet()
	for _, p := range target.Classpath {
		if !analyzed.Contains(p) {
			cp.Add(p)
		}
	}
	return cp.Paths()
}
