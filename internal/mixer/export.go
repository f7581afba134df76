package mixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

func (m *implMixer) Export(ctx context.Context, audio []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create output dir: %w", model.ErrExportFailed, err)
	}
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", model.ErrExportFailed, path, err)
	}

	m.logger.Info(ctx, "Exported %s (%d bytes)", path, len(audio))
	return nil
}

func (m *implMixer) Probe(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := m.executor.Execute(ctx, m.cfg.FFprobe, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe: %w", model.ErrMixingFailed, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse duration %q: %w", model.ErrMixingFailed, strings.TrimSpace(out), err)
	}
	return duration, nil
}
