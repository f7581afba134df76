package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/parser"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	sem           *semaphore
	settle        time.Duration
	wg            sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

// Start processes memos already waiting in the inbox, then every memo
// that is created or moved into it.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Memo watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	if err := w.drainInbox(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing broadcasts to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Memo watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isMemoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-memo file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New memo detected: %s", event.Name)
			time.Sleep(w.settle)
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) drainInbox(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read inbox: %w", err)
	}

	var pending []string
	for _, e := range entries {
		if !e.IsDir() && isMemoFile(e.Name()) {
			pending = append(pending, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(pending)

	if len(pending) > 0 {
		w.logger.Info(ctx, "Found %d memos waiting in inbox", len(pending))
	}
	for _, p := range pending {
		if err := w.dispatch(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler in a goroutine once a semaphore slot is free.
// A file already being processed is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	w.mu.Lock()
	if w.inFlight[path] {
		w.mu.Unlock()
		w.logger.Debug(ctx, "Already processing %s", path)
		return nil
	}
	w.inFlight[path] = true
	w.mu.Unlock()

	if err := w.sem.acquire(ctx); err != nil {
		w.done(path)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.sem.release()
		defer w.done(path)

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

func isMemoFile(path string) bool {
	return !strings.HasPrefix(filepath.Base(path), ".") && parser.IsMemoFile(path)
}
