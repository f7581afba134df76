package watcher

import "context"

// Watcher feeds memo files dropped into the inbox to a handler.
type Watcher interface {
	// Start blocks until ctx is done, then waits for in-flight handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one memo file.
type EventHandler func(ctx context.Context, filePath string) error
