package tailwind

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// runResult captures the streams of a finished subprocess.
type runResult struct {
	Stdout string
	Stderr string
}

// runner abstracts subprocess execution so tests can interpose.
type runner interface {
	// Run executes a command to completion with captured output.
	Run(ctx context.Context, dir, name string, args ...string) (runResult, error)
	// Stream executes a long-running command wired to live writers.
	Stream(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) (runResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return runResult{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

func (execRunner) Stream(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
