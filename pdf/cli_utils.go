package pdf

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Process is a started child process
type Process interface {
	Wait() error
}

// Runner starts external commands. ExecRunner is the real implementation;
// tests substitute a double.
type Runner interface {
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// ExecRunner starts commands with os/exec. Arguments are passed as a list,
// never through a shell. Nil writers discard the child's output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Start launches name without waiting for it
func (r ExecRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// execCommandWithTimeout runs a command to completion and returns its combined output
func execCommandWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, TimeoutError(fmt.Sprintf("command timed out after %v", timeout), ctx.Err())
	}

	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}
