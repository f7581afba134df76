package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteStderr runs name and returns its stderr, where ffmpeg
	// filters such as ebur128 print their reports.
	ExecuteStderr(ctx context.Context, name string, args ...string) (string, error)
}
