package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdepscheck/jdepscheck/internal/adapters/inbound/cli"
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

const offendingOutput = `classes -> JDK removed internal API
   com.example (classes)
      -> sun.misc                                           JDK internal API (rt.jar)
`

// fakeProject creates a project with compiled main classes and a jdeps
// script that prints stdout, writes stderr and exits with code. The script
// records its arguments in args.txt next to itself.
func fakeProject(t *testing.T, stdout, stderr string, code int) (project, jdeps string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake jdeps is a shell script")
	}
	project = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, "target", "classes"), 0755))

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "out.txt"), []byte(stdout), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "err.txt"), []byte(stderr), 0644))
	jdeps = filepath.Join(bin, "jdeps")
	script := "#!/bin/sh\n" +
		"dir=$(dirname \"$0\")\n" +
		"printf '%s\\n' \"$@\" > \"$dir/args.txt\"\n" +
		"cat \"$dir/out.txt\"\n" +
		"cat \"$dir/err.txt\" >&2\n" +
		"exit " + string(rune('0'+code)) + "\n"
	require.NoError(t, os.WriteFile(jdeps, []byte(script), 0755))
	return project, jdeps
}

func recordedArgs(t *testing.T, jdeps string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(jdeps), "args.txt"))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGoalCommand_CleanRunPasses(t *testing.T) {
	project, jdeps := fakeProject(t, "classes -> java.base\n", "", 0)

	out, err := execute(t, "jdkinternals", project, "--toolchain", jdeps, "--json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Equal(t, domain.GoalMain, report.Goal)
	assert.Equal(t, []string{filepath.Join(project, "target", "classes")}, recordedArgs(t, jdeps))

	_, err = os.Stat(filepath.Join(project, ".jdepscheck", "history", "runs.json"))
	assert.NoError(t, err, "run is recorded")
}

func TestGoalCommand_OffendingFails(t *testing.T) {
	project, jdeps := fakeProject(t, offendingOutput, "", 0)

	out, err := execute(t, "jdkinternals", project, "--toolchain", jdeps)
	require.Error(t, err)

	var pv *domain.PolicyViolationError
	assert.True(t, errors.As(err, &pv))
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "sun.misc -> JDK internal API (rt.jar)")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "sun.misc")
}

func TestGoalCommand_FailOnWarningFlag(t *testing.T) {
	project, jdeps := fakeProject(t, offendingOutput, "", 0)

	out, err := execute(t, "jdkinternals", project, "--toolchain", jdeps, "--fail-on-warning=false")
	require.NoError(t, err)
	assert.Contains(t, out, "PASSED WITH WARNINGS")
}

func TestGoalCommand_DefineProperty(t *testing.T) {
	project, jdeps := fakeProject(t, offendingOutput, "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps, "-D", "jdeps.failOnWarning=false", "-D", "jdeps.jdkinternals")
	require.NoError(t, err)
	assert.Contains(t, recordedArgs(t, jdeps), "-jdkinternals")
}

func TestGoalCommand_FlagBeatsProperty(t *testing.T) {
	project, jdeps := fakeProject(t, offendingOutput, "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps,
		"-D", "jdeps.failOnWarning=false", "--fail-on-warning=true")
	assert.Error(t, err)
}

func TestGoalCommand_UnknownProperty(t *testing.T) {
	project, jdeps := fakeProject(t, "", "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps, "-D", "jdeps.bogus=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown property")
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestGoalCommand_InvalidFlagValue(t *testing.T) {
	project, jdeps := fakeProject(t, "", "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps, "--multi-release", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flags")
}

func TestGoalCommand_FlagsReachJDeps(t *testing.T) {
	project, jdeps := fakeProject(t, "", "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps,
		"--verbose", "class", "--package", "java.util", "--multi-release", "base", "--recursive", "--no-history")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-verbose:class",
		"-p", "java.util",
		"--multi-release", "base",
		"-R",
		filepath.Join(project, "target", "classes"),
	}, recordedArgs(t, jdeps))

	_, err = os.Stat(filepath.Join(project, ".jdepscheck"))
	assert.True(t, os.IsNotExist(err), "--no-history writes nothing")
}

func TestGoalCommand_TestGoalSkipsWithoutClasses(t *testing.T) {
	project, jdeps := fakeProject(t, offendingOutput, "", 0)

	out, err := execute(t, "test-jdkinternals", project, "--toolchain", jdeps)
	require.NoError(t, err)
	assert.Contains(t, out, "SKIPPED")
	_, err = os.Stat(filepath.Join(filepath.Dir(jdeps), "args.txt"))
	assert.True(t, os.IsNotExist(err), "jdeps never ran")
}

func TestGoalCommand_TestGoalWithClassesDir(t *testing.T) {
	project, jdeps := fakeProject(t, "", "", 0)
	require.NoError(t, os.MkdirAll(filepath.Join(project, "out", "test"), 0755))

	_, err := execute(t, "test-jdkinternals", project, "--toolchain", jdeps, "--classes-dir", "out/test")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(project, "out", "test")}, recordedArgs(t, jdeps))
}

func TestGoalCommand_NonZeroExit(t *testing.T) {
	project, jdeps := fakeProject(t, "", "Error: invalid class file\n", 3)

	_, err := execute(t, "jdkinternals", project, "--toolchain", jdeps)
	require.Error(t, err)

	var ee *domain.ExecutionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.ExitCode)
	assert.Contains(t, err.Error(), "Error: invalid class file")
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestGoalCommand_MissingToolchain(t *testing.T) {
	project, _ := fakeProject(t, "", "", 0)

	_, err := execute(t, "jdkinternals", project, "--toolchain", filepath.Join(project, "nope", "jdeps"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to find jdeps command:")
}

func TestGoalCommand_InvalidLogLevel(t *testing.T) {
	project, jdeps := fakeProject(t, "", "", 0)

	_, err := execute(t, "--log-level", "loud", "jdkinternals", project, "--toolchain", jdeps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, cli.ExitCode(nil))
	assert.Equal(t, 1, cli.ExitCode(&domain.PolicyViolationError{}))
	assert.Equal(t, 2, cli.ExitCode(errors.New("boom")))
}
