// Package runner executes the wrapped tool as a child process.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Result holds the outcome of one wrapped invocation.
type Result struct {
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
}

// Run executes argv[0] with the remaining arguments, inheriting the process
// environment and wiring stdin/stdout/stderr straight through. It blocks
// until the child exits. A non-zero child exit is not an error; it is
// reported in Result.ExitCode. Failure to start the child at all is an error.
func Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("run: no command given")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	started := time.Now()
	err := cmd.Run()
	res := Result{
		StartedAt: started,
		Duration:  time.Since(started),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return res, nil
}
