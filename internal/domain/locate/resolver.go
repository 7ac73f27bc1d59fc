// Package locate finds the jdeps executable.
//
// Lookup is an ordered chain of strategies. A strategy either returns a
// path, returns domain.ErrNotApplicable to defer to the next one, or fails
// for good. A misconfigured toolchain or JAVA_HOME is a hard failure and
// never falls through.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

const toolName = "jdeps"

// Request carries the inputs of one lookup.
type Request struct {
	Hint string
	Env  map[string]string
}

// Strategy is one step of the lookup chain.
type Strategy interface {
	Name() string
	Locate(r *Resolver, req Request) (string, error)
}

// Resolver walks its strategies in order.
type Resolver struct {
	Fs         afero.Fs
	GOOS       string
	Strategies []Strategy
	// Log receives the strategy that decided each lookup; nil disables it.
	Log logrus.FieldLogger
}

// New returns a Resolver over the host filesystem and OS.
func New() *Resolver {
	return NewWith(afero.NewOsFs(), runtime.GOOS)
}

// NewWith returns a Resolver with the default strategy chain over fs,
// behaving as if running on goos.
func NewWith(fs afero.Fs, goos string) *Resolver {
	return &Resolver{
		Fs:         fs,
		GOOS:       goos,
		Strategies: []Strategy{ToolchainHint{}, JavaHome{}, SearchPath{}},
	}
}

// Locate implements domain.ExecutableLocator.
func (r *Resolver) Locate(hint string, env map[string]string) (string, error) {
	req := Request{Hint: hint, Env: env}
	for _, s := range r.Strategies {
		path, err := s.Locate(r, req)
		if errors.Is(err, domain.ErrNotApplicable) {
			continue
		}
		if err != nil {
			r.debugf("jdeps lookup failed at %s: %v", s.Name(), err)
			return "", err
		}
		r.debugf("jdeps found via %s: %s", s.Name(), path)
		return path, nil
	}
	return "", &domain.ResolutionError{
		Reason: "Unable to locate the jdeps executable. Verify that JAVA_HOME is set correctly or ensure that jdeps is available on the system PATH.",
	}
}

func (r *Resolver) debugf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Debugf(format, args...)
	}
}

// ExecutableName is the file name of jdeps on the resolver's OS.
func (r *Resolver) ExecutableName() string {
	if r.isWindows() {
		return toolName + ".exe"
	}
	return toolName
}

func (r *Resolver) isWindows() bool { return r.GOOS == "windows" }

func (r *Resolver) listSeparator() string {
	if r.isWindows() {
		return ";"
	}
	return ":"
}

func (r *Resolver) stat(path string) (os.FileInfo, bool) {
	info, err := r.Fs.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}

func (r *Resolver) isFile(path string) bool {
	info, ok := r.stat(path)
	return ok && info.Mode().IsRegular()
}

func (r *Resolver) isExecutable(path string) bool {
	info, ok := r.stat(path)
	if !ok || !info.Mode().IsRegular() {
		return false
	}
	if r.isWindows() {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ToolchainHint uses the path supplied by a configured JDK toolchain.
type ToolchainHint struct{}

func (ToolchainHint) Name() string { return "toolchain" }

func (ToolchainHint) Locate(r *Resolver, req Request) (string, error) {
	if req.Hint == "" {
		return "", domain.ErrNotApplicable
	}

	exe := req.Hint
	if info, ok := r.stat(exe); ok && info.IsDir() {
		exe = filepath.Join(exe, r.ExecutableName())
	}

	if r.isWindows() && !strings.Contains(filepath.Base(exe), ".") {
		exe += ".exe"
	}

	if !r.isFile(exe) {
		return "", &domain.ResolutionError{
			Path:   exe,
			Reason: fmt.Sprintf("The jdeps executable '%s' doesn't exist or is not a file.", exe),
		}
	}
	return absolute(exe), nil
}

// JavaHome looks in $JAVA_HOME/bin.
type JavaHome struct{}

func (JavaHome) Name() string { return "JAVA_HOME" }

func (JavaHome) Locate(r *Resolver, req Request) (string, error) {
	javaHome := req.Env["JAVA_HOME"]
	if javaHome == "" {
		return "", domain.ErrNotApplicable
	}

	info, ok := r.stat(javaHome)
	if !ok || !info.IsDir() {
		return "", &domain.ResolutionError{
			Path:   javaHome,
			Reason: fmt.Sprintf("The environment variable JAVA_HOME=%s doesn't exist or is not a valid directory.", javaHome),
		}
	}

	exe := filepath.Join(javaHome, "bin", r.ExecutableName())
	if !r.isFile(exe) {
		return "", domain.ErrNotApplicable
	}
	if !r.isExecutable(exe) {
		return "", &domain.ResolutionError{
			Path:   exe,
			Reason: fmt.Sprintf("The jdeps executable '%s' is not executable.", exe),
		}
	}
	return absolute(exe), nil
}

// SearchPath scans the directories of $PATH in order.
type SearchPath struct{}

func (SearchPath) Name() string { return "PATH" }

func (SearchPath) Locate(r *Resolver, req Request) (string, error) {
	path, ok := lookupPathVar(req.Env)
	if !ok {
		return "", domain.ErrNotApplicable
	}

	for _, dir := range strings.Split(path, r.listSeparator()) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		exe := filepath.Join(dir, r.ExecutableName())
		if r.isExecutable(exe) {
			return absolute(exe), nil
		}
	}
	return "", domain.ErrNotApplicable
}

// lookupPathVar honours the spellings used across platforms.
func lookupPathVar(env map[string]string) (string, bool) {
	for _, key := range []string{"PATH", "Path", "path"} {
		if v, ok := env[key]; ok {
			return v, true
		}
	}
	return "", false
}
