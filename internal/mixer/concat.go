package mixer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

func (m *implMixer) Concatenate(ctx context.Context, clips []model.AudioClip) ([]byte, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, model.ErrNoClips)
	}

	ws, err := m.newWorkspace(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
	}
	defer ws.close(ctx)

	out := ws.path("concat.mp3")

	if len(clips) == 1 {
		if err := m.transcodeClip(ctx, ws, 0, clips[0], out); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
		}
		return readOutput(out)
	}

	parts := make([]string, len(clips))
	for i, clip := range clips {
		parts[i] = ws.path(fmt.Sprintf("clip_%03d.mp3", i))
		if err := m.transcodeClip(ctx, ws, i, clip, parts[i]); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
		}
	}

	list, err := ws.write("concat.txt", []byte(concatManifest(parts)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", list,
		"-c", "copy",
		"-y",
		out,
	}
	if _, err := m.executor.Execute(ctx, m.cfg.FFmpeg, args...); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg concat: %w", model.ErrMixingFailed, err)
	}

	m.logger.Info(ctx, "Concatenated %d clips", len(clips))
	return readOutput(out)
}

// transcodeClip encodes one clip to the output codec. Raw PCM clips
// need their format spelled out for ffmpeg.
func (m *implMixer) transcodeClip(ctx context.Context, ws *workspace, i int, clip model.AudioClip, out string) error {
	ext := "bin"
	if clip.SampleRate > 0 {
		ext = "raw"
	}
	in, err := ws.write(fmt.Sprintf("clip_%03d.%s", i, ext), clip.Data)
	if err != nil {
		return err
	}

	var args []string
	if clip.SampleRate > 0 {
		args = append(args, "-f", "s16le", "-ar", strconv.Itoa(clip.SampleRate), "-ac", "1")
	}
	args = append(args, "-i", in)
	args = append(args, m.encodeArgs()...)
	args = append(args, "-y", out)

	if _, err := m.executor.Execute(ctx, m.cfg.FFmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg transcode clip %d: %w", i, err)
	}
	return nil
}

// concatManifest renders the concat demuxer list. Single quotes in paths
// are closed, escaped and reopened.
func concatManifest(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(p, "'", `'\''`))
	}
	return b.String()
}

func readOutput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read ffmpeg output: %w", model.ErrMixingFailed, err)
	}
	return data, nil
}
