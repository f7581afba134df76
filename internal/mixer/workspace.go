package mixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
)

// workspace is a private temp directory for one mixer operation.
// Concurrent operations never share one.
type workspace struct {
	dir    string
	logger logger.Logger

	mu    sync.Mutex
	files []string
}

func (m *implMixer) newWorkspace(ctx context.Context) (*workspace, error) {
	dir := filepath.Join(m.cfg.TempDir, "cheercast-"+ulid.Make().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create temp workspace: %w", err)
	}
	m.logger.Debug(ctx, "Created temp workspace: %s", dir)
	return &workspace{dir: dir, logger: m.logger}, nil
}

// path returns a tracked file path inside the workspace.
func (w *workspace) path(name string) string {
	p := filepath.Join(w.dir, name)
	w.mu.Lock()
	w.files = append(w.files, p)
	w.mu.Unlock()
	return p
}

// write stores data under name and returns its path.
func (w *workspace) write(name string, data []byte) (string, error) {
	p := w.path(name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return p, nil
}

// close removes every tracked file concurrently, then the directory.
// Failures are logged, never returned.
func (w *workspace) close(ctx context.Context) {
	w.mu.Lock()
	files := w.files
	w.files = nil
	w.mu.Unlock()

	var g errgroup.Group
	for _, f := range files {
		g.Go(func() error {
			w.cleanupTempFile(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn(ctx, "Failed to remove temp workspace %s: %v", w.dir, err)
	}
}

func (w *workspace) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		w.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
