package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	stdout, _, err := e.run(ctx, name, args...)
	return stdout, err
}

// ExecuteStderr runs an external command and returns what it wrote to stderr
func (e *implExecutor) ExecuteStderr(ctx context.Context, name string, args ...string) (string, error) {
	_, stderr, err := e.run(ctx, name, args...)
	return stderr, err
}

func (e *implExecutor) run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// ffmpeg reports the actual reason on stderr; keep the tail
		stderrStr := tail(strings.TrimSpace(stderr.String()), 2000)
		if stderrStr != "" {
			return "", "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), stderr.String(), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
