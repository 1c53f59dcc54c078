package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// EngineName is the Ghostscript executable, resolved through PATH
	EngineName = "gs"

	// CompatibilityLevel is the PDF version the engine writes
	CompatibilityLevel = "1.4"

	// EngineCheckTimeout bounds the startup availability probe
	EngineCheckTimeout = 5 * time.Second
)

// BuildArgs returns the engine arguments for plan, in the order the engine expects
func BuildArgs(plan Plan) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=" + CompatibilityLevel,
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + plan.Destination,
		"-dPDFSETTINGS=/" + strings.ToLower(plan.Mode.String()),
		plan.Source,
	}
}

// exitCoder matches errors carrying a child's exit status, such as *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// Compress runs the engine for plan and blocks until it exits.
//
// Only a failure to start or to wait on the child is an error. If the engine
// runs and exits with a non-zero status, Compress logs a warning and returns
// nil. Callers that need a guarantee must check the destination themselves.
func Compress(ctx context.Context, runner Runner, plan Plan) error {
	logger := zerolog.Ctx(ctx)
	args := BuildArgs(plan)

	logger.Debug().
		Str("engine", EngineName).
		Strs("args", args).
		Str("mode", plan.Mode.String()).
		Msg("Launching engine")

	start := time.Now()
	proc, err := runner.Start(ctx, EngineName, args...)
	if err != nil {
		return LaunchError(fmt.Sprintf("failed to start %s", EngineName), err)
	}

	if err := proc.Wait(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return TimeoutError(fmt.Sprintf("%s did not finish in time", EngineName), ctx.Err())
		}

		var exitErr exitCoder
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			logger.Warn().
				Int("exit_code", exitErr.ExitCode()).
				Str("source", plan.Source).
				Msg("Engine exited with non-zero status")
			return nil
		}
		return WaitError(fmt.Sprintf("failed to wait for %s", EngineName), err)
	}

	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Str("destination", plan.Destination).
		Msg("Engine finished")

	return nil
}

// CheckEngine verifies the engine can be launched and returns its version
func CheckEngine(ctx context.Context) (string, error) {
	output, err := execCommandWithTimeout(ctx, EngineCheckTimeout, EngineName, "--version")
	if err != nil {
		if TypeOf(err) != "" {
			return "", err
		}
		return "", LaunchError(fmt.Sprintf("%s command not found or not executable", EngineName), err)
	}
	return strings.TrimSpace(string(output)), nil
}
