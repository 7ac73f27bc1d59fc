package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdepscheck/jdepscheck/internal/domain"
	"github.com/jdepscheck/jdepscheck/internal/domain/command"
	"github.com/jdepscheck/jdepscheck/internal/domain/jdeps"
)

// JDepsService orchestrates one goal run:
// load config → locate jdeps → assemble targets → build args → run → interpret → decide.
type JDepsService struct {
	configLoader domain.ConfigLoader
	env          domain.EnvSource
	locator      domain.ExecutableLocator
	classpath    domain.ClasspathReader
	scanner      domain.ClassScanner
	runner       domain.ProcessRunner
	history      domain.RunHistory
	reports      domain.ReportStore
	git          domain.GitInfo
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewJDepsService(
	configLoader domain.ConfigLoader,
	env domain.EnvSource,
	locator domain.ExecutableLocator,
	classpath domain.ClasspathReader,
	scanner domain.ClassScanner,
	runner domain.ProcessRunner,
	history domain.RunHistory,
	reports domain.ReportStore,
	git domain.GitInfo,
	log logrus.FieldLogger,
) *JDepsService {
	return &JDepsService{
		configLoader: configLoader,
		env:          env,
		locator:      locator,
		classpath:    classpath,
		scanner:      scanner,
		runner:       runner,
		history:      history,
		reports:      reports,
		git:          git,
		log:          log,
		now:          time.Now,
	}
}

// RunRequest selects what Run analyzes.
type RunRequest struct {
	ProjectPath string
	Goal        domain.Goal
	Config      domain.AnalysisConfig
	// NoHistory skips writing the run entry and the report.
	NoHistory bool
}

// LoadConfig reads the project configuration and overlays -D properties.
func (s *JDepsService) LoadConfig(projectPath string, props []string) (domain.AnalysisConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("loading config: %w", err)
	}
	cfg, err = cfg.ApplyProperties(props)
	if err != nil {
		return domain.AnalysisConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Resolve locates the jdeps executable the project would use.
func (s *JDepsService) Resolve(projectPath string, cfg domain.AnalysisConfig) (string, error) {
	env, err := s.env.Environ(projectPath)
	if err != nil {
		return "", fmt.Errorf("loading environment: %w", err)
	}
	return s.locate(projectPath, cfg, env)
}

func (s *JDepsService) locate(projectPath string, cfg domain.AnalysisConfig, env map[string]string) (string, error) {
	exe, err := s.locator.Locate(resolvePath(projectPath, cfg.Toolchain.Hint()), env)
	if err != nil {
		return "", fmt.Errorf("Unable to find jdeps command: %w", err)
	}
	return exe, nil
}

// Run executes the goal. The report is returned whenever jdeps ran, also
// alongside an *domain.ExecutionError or *domain.PolicyViolationError.
func (s *JDepsService) Run(ctx context.Context, req RunRequest) (*domain.Report, error) {
	projectPath, err := filepath.Abs(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}
	cfg := req.Config
	log := s.log.WithField("goal", string(req.Goal))
	ss := cfg.SourceSetFor(req.Goal)

	report := &domain.Report{
		Goal:        req.Goal,
		ProjectPath: projectPath,
		Timestamp:   s.now(),
		FailOnWarn:  cfg.FailOnWarningFor(req.Goal),
	}

	classesDir := resolvePath(projectPath, ss.ClassesDir)
	if info, err := os.Stat(classesDir); err != nil || !info.IsDir() {
		log.Debug("No classes to analyze")
		report.Skipped = true
		report.Passed = true
		return report, nil
	}

	if s.scanner != nil {
		if inv, err := s.scanner.Scan(classesDir); err != nil {
			log.WithError(err).Debug("could not inventory classes")
		} else {
			report.Inventory = inv
			log.Debugf("Analyzing %d classes in %d packages", inv.ClassFiles, len(inv.Packages))
		}
	}

	env, err := s.env.Environ(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	exe, err := s.locate(projectPath, cfg, env)
	if err != nil {
		return nil, err
	}

	if cfg.IgnoresExcludes() {
		log.Warn("dependencies_to_analyze_excludes has no effect without dependencies_to_analyze_includes")
	}

	cp, err := s.readClasspath(projectPath, ss)
	if err != nil {
		return nil, err
	}
	target, err := command.Target(command.TargetInput{
		ClassesDir:       classesDir,
		Classpath:        cp,
		IncludeClasspath: cfg.ShouldIncludeClasspath(),
		Includes:         cfg.AnalyzeIncludes,
		Excludes:         cfg.AnalyzeExcludes,
		Artifacts:        resolveArtifacts(projectPath, cfg.Artifacts),
	})
	if err != nil {
		return nil, err
	}

	cfg.DotOutput = resolvePath(projectPath, cfg.DotOutput)
	inv := domain.Invocation{
		Executable: exe,
		Args:       command.BuildArgs(cfg, target),
		Timeout:    cfg.Timeout,
		Env:        environList(env),
	}
	report.Executable = exe
	report.CommandLine = inv.CommandLine()
	log.Debugf("Executing: %s", report.CommandLine)

	state := jdeps.NewState()
	res, err := s.runner.Run(ctx, inv, func(line string) {
		state = jdeps.Step(state, line)
	})
	if err != nil {
		return nil, &domain.ExecutionError{CommandLine: report.CommandLine, Err: err}
	}
	state = jdeps.Finalize(state)

	report.ExitCode = res.ExitCode
	report.Offending = state.Offending
	report.Profiles = state.Profiles
	report.Output = state.Lines
	report.Warnings = trimmedLines(res.Stderr)

	if out := strings.TrimSpace(strings.Join(state.Lines, "\n")); out != "" {
		log.Info("\n" + out)
	}
	if len(report.Warnings) > 0 {
		log.Warn("JDeps Warnings")
		for _, w := range report.Warnings {
			log.Warn(w)
		}
	}

	if res.ExitCode != 0 {
		s.record(log, report, req.NoHistory)
		return report, &domain.ExecutionError{
			ExitCode:    res.ExitCode,
			Stderr:      strings.Join(res.Stderr, "\n"),
			CommandLine: report.CommandLine,
		}
	}

	verdict := jdeps.Decide(state, report.FailOnWarn)
	report.Passed = verdict.Passed
	if verdict.Warning != "" {
		log.Warn(verdict.Warning)
	}
	s.record(log, report, req.NoHistory)
	return report, verdict.Err
}

// ParseOutput interprets saved jdeps output and applies the verdict.
func (s *JDepsService) ParseOutput(r io.Reader, failOnWarning bool) (*domain.Report, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading jdeps output: %w", err)
	}

	state := jdeps.Interpret(lines)
	verdict := jdeps.Decide(state, failOnWarning)
	return &domain.Report{
		Timestamp:  s.now(),
		Offending:  state.Offending,
		Profiles:   state.Profiles,
		Output:     state.Lines,
		FailOnWarn: failOnWarning,
		Passed:     verdict.Passed,
	}, verdict.Err
}

// History returns past runs, oldest first. An empty goal returns every goal.
func (s *JDepsService) History(projectPath string, goal domain.Goal) ([]domain.RunEntry, error) {
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if goal == "" {
		return entries, nil
	}
	var out []domain.RunEntry
	for _, e := range entries {
		if e.Goal == goal {
			out = append(out, e)
		}
	}
	return out, nil
}

// LastReport returns the stored report of the last run of goal, or nil.
func (s *JDepsService) LastReport(projectPath string, goal domain.Goal) (*domain.Report, error) {
	return s.reports.Load(projectPath, goal)
}

func (s *JDepsService) readClasspath(projectPath string, ss domain.SourceSet) ([]string, error) {
	var entries []string
	for _, e := range ss.Classpath {
		entries = append(entries, resolvePath(projectPath, e))
	}
	if ss.ClasspathFile == "" {
		return entries, nil
	}
	fromFile, err := s.classpath.Read(resolvePath(projectPath, ss.ClasspathFile))
	if err != nil {
		return nil, &domain.ArgumentError{Err: err}
	}
	for _, e := range fromFile {
		entries = append(entries, resolvePath(projectPath, e))
	}
	return entries, nil
}

// record persists the report and a history entry. Persistence failures
// never change the outcome of the run.
func (s *JDepsService) record(log logrus.FieldLogger, report *domain.Report, skip bool) {
	if skip {
		return
	}
	if s.git != nil {
		if hash, err := s.git.CommitHash(report.ProjectPath); err == nil {
			report.CommitHash = hash
		}
	}
	if err := s.reports.Save(report); err != nil {
		log.WithError(err).Warn("could not save report")
	}
	entry := domain.RunEntry{
		Timestamp:  report.Timestamp.UTC().Format(time.RFC3339),
		CommitHash: report.CommitHash,
		Goal:       report.Goal,
		Offending:  report.Offending.Len(),
		Passed:     report.Passed,
	}
	if err := s.history.Save(report.ProjectPath, entry); err != nil {
		log.WithError(err).Warn("could not save run history")
	}
}

// IsPolicyViolation reports whether err is a failed verdict rather than a
// tool or configuration failure.
func IsPolicyViolation(err error) bool {
	var pv *domain.PolicyViolationError
	return errors.As(err, &pv)
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func resolveArtifacts(base string, in []domain.Artifact) []domain.Artifact {
	out := make([]domain.Artifact, len(in))
	for i, a := range in {
		a.File = resolvePath(base, a.File)
		out[i] = a
	}
	return out
}

func environList(env map[string]string) []string {
	if env == nil {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func trimmedLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
