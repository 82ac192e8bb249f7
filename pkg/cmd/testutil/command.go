package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// Result captures the output of a command run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// RunCommand executes root with args, capturing its output. args exclude the
// program name.
func RunCommand(t *testing.T, root *cli.Command, args ...string) Result {
	t.Helper()

	return RunCommandWithContext(context.Background(), t, root, args...)
}

// RunCommandWithContext executes root with a custom context.
func RunCommandWithContext(ctx context.Context, t *testing.T, root *cli.Command, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root.Writer = &stdout
	root.ErrWriter = &stderr

	fullArgs := append([]string{root.Name}, args...)
	err := root.Run(ctx, fullArgs)

	return Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
}
