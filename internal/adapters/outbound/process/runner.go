// Package process runs the jdeps executable and streams its output.
package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// javaToolOptionsNotice is printed by every JVM when JAVA_TOOL_OPTIONS is set.
const javaToolOptionsNotice = "Picked up JAVA_TOOL_OPTIONS:"

const maxLine = 4 * 1024 * 1024

// waitDelay bounds how long output is still read after cancellation.
const waitDelay = 2 * time.Second

// Runner implements domain.ProcessRunner with os/exec.
type Runner struct{}

func New() *Runner {
	return &Runner{}
}

// Run starts inv and blocks until it exits. Standard output is handed to
// onStdout line by line in order; standard error is collected without the
// JAVA_TOOL_OPTIONS notice. A non-zero exit is reported in the result, not
// as an error. Errors are returned when the process cannot be started, its
// output cannot be read, or the timeout elapses.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation, onStdout func(line string)) (*domain.ProcessResult, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Executable, inv.Args...)
	if inv.Env != nil {
		cmd.Env = inv.Env
	}
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var errLines []string
	var g errgroup.Group
	g.Go(func() error {
		return scanLines(stdout, func(line string) {
			if onStdout != nil {
				onStdout(line)
			}
		})
	})
	g.Go(func() error {
		return scanLines(stderr, func(line string) {
			if !strings.HasPrefix(line, javaToolOptionsNotice) {
				errLines = append(errLines, line)
			}
		})
	})

	// Both pipes must be drained before Wait closes them. After cancellation
	// a process outside the killed group may still hold them open.
	readDone := make(chan error, 1)
	go func() { readDone <- g.Wait() }()

	var readErr error
	select {
	case readErr = <-readDone:
	case <-ctx.Done():
		select {
		case readErr = <-readDone:
		case <-time.After(waitDelay):
			_ = stdout.Close()
			_ = stderr.Close()
			readErr = <-readDone
		}
	}
	waitErr := cmd.Wait()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("timed out after %s", inv.Timeout)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, waitErr
		}
		return &domain.ProcessResult{ExitCode: exitErr.ExitCode(), Stderr: errLines}, nil
	}
	if readErr != nil {
		return nil, fmt.Errorf("reading output: %w", readErr)
	}
	return &domain.ProcessResult{ExitCode: 0, Stderr: errLines}, nil
}

// scanLines feeds each line of rd to fn. On a scan error the rest of rd is
// discarded so the child never blocks on a full pipe.
func scanLines(rd io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		fn(strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		_, _ = io.Copy(io.Discard, rd)
		return err
	}
	return nil
}
