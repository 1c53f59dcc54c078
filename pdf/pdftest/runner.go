// Package pdftest provides a recording pdf.Runner for tests.
package pdftest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"pdfpress/pdf"
)

// Call records one Start invocation
type Call struct {
	Name string
	Args []string
}

// Runner records every Start call instead of launching anything.
//
// StartErr fails the launch. WaitErr is returned from Wait. OnStart runs after a
// successful launch and can produce side effects such as writing the output
// file. Block makes Wait hold until the context is done.
type Runner struct {
	StartErr error
	WaitErr  error
	OnStart  func(name string, args []string) error
	Block    bool

	mu    sync.Mutex
	calls []Call
}

// Start implements pdf.Runner
func (r *Runner) Start(ctx context.Context, name string, args ...string) (pdf.Process, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	if r.StartErr != nil {
		return nil, r.StartErr
	}
	if r.OnStart != nil {
		if err := r.OnStart(name, args); err != nil {
			return nil, err
		}
	}
	return &process{ctx: ctx, err: r.WaitErr, block: r.Block}, nil
}

// Calls returns a copy of the recorded calls
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallCount returns how many times Start was called
func (r *Runner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type process struct {
	ctx   context.Context
	err   error
	block bool
}

func (p *process) Wait() error {
	if p.block {
		<-p.ctx.Done()
		return ExitStatus(-1)
	}
	return p.err
}

// ExitStatus is a wait error carrying a child exit code, like *exec.ExitError
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// ExitCode returns the status
func (e ExitStatus) ExitCode() int {
	return int(e)
}

// WriteOutput returns an OnStart hook that writes content to the -sOutputFile
// path found in args
func WriteOutput(content []byte) func(name string, args []string) error {
	return func(name string, args []string) error {
		out := OutputFile(args)
		if out == "" {
			return fmt.Errorf("no output file in args %v", args)
		}
		return os.WriteFile(out, content, 0o644)
	}
}

// OutputFile returns the value of the -sOutputFile argument, or ""
func OutputFile(args []string) string {
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "-sOutputFile="); ok {
			return v
		}
	}
	return ""
}
