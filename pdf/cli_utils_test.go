package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpress/pdf"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestExecRunner_PassesArgsWithoutShell(t *testing.T) {
	requireBinary(t, "echo")

	var out bytes.Buffer
	runner := pdf.ExecRunner{Stdout: &out}

	proc, err := runner.Start(context.Background(), "echo", "a b", "$HOME", ";", "ls")
	require.NoError(t, err)
	require.NoError(t, proc.Wait())

	assert.Equal(t, "a b $HOME ; ls\n", out.String())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := pdf.ExecRunner{}

	_, err := runner.Start(context.Background(), "pdfpress-no-such-engine")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunner_NonZeroExitCode(t *testing.T) {
	requireBinary(t, "sh")

	runner := pdf.ExecRunner{}
	proc, err := runner.Start(context.Background(), "sh", "-c", "exit 3")
	require.NoError(t, err)

	err = proc.Wait()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}
