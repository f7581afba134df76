package mixer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Loudness is the ebur128 summary of a track.
type Loudness struct {
	Integrated float64 // LUFS
	Range      float64 // LU
	Peak       float64 // dBFS
}

// Used when the analysis output cannot be read.
var defaultLoudness = Loudness{Integrated: -23, Range: 7, Peak: -1}

var (
	integratedRe = regexp.MustCompile(`I:\s+(-?[\d.]+)\s+LUFS`)
	rangeRe      = regexp.MustCompile(`LRA:\s+(-?[\d.]+)\s+LU`)
	peakRe       = regexp.MustCompile(`Peak:\s+(-?[\d.]+)\s+dBFS`)
)

func (m *implMixer) Normalize(ctx context.Context, audio []byte) ([]byte, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio", model.ErrMixingFailed)
	}

	ws, err := m.newWorkspace(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
	}
	defer ws.close(ctx)

	in, err := ws.write("voice.mp3", audio)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
	}

	loudness, err := m.analyze(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMixingFailed, err)
	}

	out := ws.path("normalized.mp3")
	args := []string{"-i", in, "-af", m.normalizeFilter(loudness)}
	args = append(args, m.encodeArgs()...)
	args = append(args, "-y", out)

	if _, err := m.executor.Execute(ctx, m.cfg.FFmpeg, args...); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg normalize: %w", model.ErrMixingFailed, err)
	}

	m.logger.Info(ctx, "Normalized loudness %.1f LUFS -> %.1f LUFS", loudness.Integrated, m.cfg.TargetLoudness)
	return readOutput(out)
}

// analyze runs the ebur128 measurement pass.
func (m *implMixer) analyze(ctx context.Context, path string) (Loudness, error) {
	args := []string{
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-af", "ebur128=peak=true",
		"-f", "null",
		"-",
	}
	stderr, err := m.executor.ExecuteStderr(ctx, m.cfg.FFmpeg, args...)
	if err != nil {
		return Loudness{}, fmt.Errorf("ffmpeg loudness analysis: %w", err)
	}

	l := ParseLoudness(stderr)
	m.logger.Debug(ctx, "Loudness: I=%.1f LUFS LRA=%.1f LU peak=%.1f dBFS", l.Integrated, l.Range, l.Peak)
	return l, nil
}

func (m *implMixer) normalizeFilter(l Loudness) string {
	return fmt.Sprintf("volume=%sdB,%s", formatNumber(m.cfg.TargetLoudness-l.Integrated), m.loudnormFilter())
}

func (m *implMixer) loudnormFilter() string {
	return fmt.Sprintf("loudnorm=I=%s:TP=-1.5:LRA=11", formatNumber(m.cfg.TargetLoudness))
}

// ParseLoudness reads the ebur128 summary block. Missing fields fall back
// to -23 LUFS, 7 LU and -1 dBFS.
func ParseLoudness(stderr string) Loudness {
	if i := strings.LastIndex(stderr, "Summary:"); i >= 0 {
		stderr = stderr[i:]
	}

	l := defaultLoudness
	if v, ok := firstFloat(integratedRe, stderr); ok {
		l.Integrated = v
	}
	if v, ok := firstFloat(rangeRe, stderr); ok {
		l.Range = v
	}
	if v, ok := firstFloat(peakRe, stderr); ok {
		l.Peak = v
	}
	return l
}

func firstFloat(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
