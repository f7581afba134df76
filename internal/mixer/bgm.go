package mixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Timeline places the voice track inside the BGM track.
//
//	[0, MainStart)        intro, full volume, fade in from 0
//	[MainStart, MainEnd)  voice over ducked BGM
//	[MainEnd, Total)      outro, full volume, fade out from MainEnd
type Timeline struct {
	Intro   float64
	Outro   float64
	FadeIn  float64
	FadeOut float64
	Ducked  float64
	Full    float64
	Voice   float64
}

func (t Timeline) MainStart() float64 { return t.Intro }
func (t Timeline) MainEnd() float64   { return t.Intro + t.Voice }
func (t Timeline) Total() float64     { return t.Intro + t.Voice + t.Outro }

// VoiceDelayMs is the adelay applied to the voice track.
func (t Timeline) VoiceDelayMs() float64 { return t.Intro * 1000 }

type bgmRegion struct {
	label  string
	filter string
}

// regions returns the non-empty BGM regions in playback order.
func (t Timeline) regions() []bgmRegion {
	var out []bgmRegion
	if t.Intro > 0 {
		out = append(out, bgmRegion{
			label: "intro",
			filter: joinFilters(
				fmt.Sprintf("atrim=0:%s,volume=%s", formatNumber(t.MainStart()), formatNumber(t.Full)),
				fade("in", 0, t.FadeIn),
			),
		})
	}
	if t.Voice > 0 {
		out = append(out, bgmRegion{
			label: "main",
			filter: fmt.Sprintf("atrim=%s:%s,volume=%s,asetpts=PTS-STARTPTS",
				formatNumber(t.MainStart()), formatNumber(t.MainEnd()), formatNumber(t.Ducked)),
		})
	}
	if t.Outro > 0 {
		out = append(out, bgmRegion{
			label: "outro",
			filter: joinFilters(
				fmt.Sprintf("atrim=%s:%s,volume=%s", formatNumber(t.MainEnd()), formatNumber(t.Total()), formatNumber(t.Full)),
				fade("out", t.MainEnd(), t.FadeOut),
				"asetpts=PTS-STARTPTS",
			),
		})
	}
	return out
}

// fade returns an afade stage, or "" when there is nothing to fade.
// afade treats d=0 as its default length, not as no fade.
func fade(kind string, start, duration float64) string {
	if duration <= 0 {
		return ""
	}
	return fmt.Sprintf("afade=t=%s:st=%s:d=%s", kind, formatNumber(start), formatNumber(duration))
}

func joinFilters(stages ...string) string {
	var kept []string
	for _, s := range stages {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ",")
}

// FilterGraph builds the filter_complex for input 0 (voice) and
// input 1 (BGM). The result is labelled [final].
func FilterGraph(t Timeline, targetLoudness float64) string {
	regions := t.regions()

	var chains []string
	chains = append(chains, "[1:a]aloop=loop=-1:size=2e+09[bgm_loop]")

	switch len(regions) {
	case 0:
		chains = append(chains, "[bgm_loop]atrim=0:0[bgm]")
	case 1:
		chains = append(chains, fmt.Sprintf("[bgm_loop]%s[bgm]", regions[0].filter))
	default:
		var split, joined strings.Builder
		for i, r := range regions {
			fmt.Fprintf(&split, "[bgm_%d]", i)
			fmt.Fprintf(&joined, "[%s]", r.label)
		}
		chains = append(chains, fmt.Sprintf("[bgm_loop]asplit=%d%s", len(regions), split.String()))
		for i, r := range regions {
			chains = append(chains, fmt.Sprintf("[bgm_%d]%s[%s]", i, r.filter, r.label))
		}
		chains = append(chains, fmt.Sprintf("%sconcat=n=%d:v=0:a=1[bgm]", joined.String(), len(regions)))
	}

	chains = append(chains,
		fmt.Sprintf("[0:a]adelay=%s:all=1[voice]", formatNumber(t.VoiceDelayMs())),
		fmt.Sprintf("[voice][bgm]amix=inputs=2:duration=longest:dropout_transition=2:normalize=0,loudnorm=I=%s:TP=-1.5:LRA=11[final]",
			formatNumber(targetLoudness)),
	)

	return strings.Join(chains, ";")
}

func (m *implMixer) AddBackgroundMusic(ctx context.Context, audioPath string, opts BgmOptions) (string, error) {
	progress := func(stage string) {
		if opts.OnProgress != nil {
			opts.OnProgress(stage)
		}
	}

	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: voice track: %w", model.ErrInput, err)
	}
	if _, err := os.Stat(opts.Path); err != nil {
		return "", fmt.Errorf("%w: bgm file: %w", model.ErrInput, err)
	}

	progress("Analyzing voice track")
	voice, err := m.Probe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	tl := Timeline{
		Intro:   opts.Intro,
		Outro:   opts.Outro,
		FadeIn:  opts.FadeIn,
		FadeOut: opts.FadeOut,
		Ducked:  opts.Ducking,
		Full:    opts.Volume,
		Voice:   voice,
	}

	dest := opts.Output
	if dest == "" {
		dest = audioPath
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %w", model.ErrExportFailed, err)
	}

	// ffmpeg cannot write to one of its inputs, so always render next to
	// the destination and rename over it.
	ext := filepath.Ext(dest)
	tmp := filepath.Join(filepath.Dir(dest),
		fmt.Sprintf("%s_temp_bgm_%s%s", strings.TrimSuffix(filepath.Base(dest), ext), ulid.Make().String(), ext))

	args := []string{
		"-i", audioPath,
		"-i", opts.Path,
		"-filter_complex", FilterGraph(tl, m.cfg.TargetLoudness),
		"-map", "[final]",
	}
	args = append(args, m.encodeArgs()...)
	args = append(args, "-y", tmp)

	progress("Mixing background music")
	m.logger.Info(ctx, "Mixing BGM %s under %s (voice %.1fs, total %.1fs)", opts.Path, audioPath, voice, tl.Total())

	if _, err := m.executor.Execute(ctx, m.cfg.FFmpeg, args...); err != nil {
		m.removeTemp(ctx, tmp)
		return "", fmt.Errorf("%w: ffmpeg bgm mix: %w", model.ErrMixingFailed, err)
	}

	progress("Finalizing output")
	if err := os.Rename(tmp, dest); err != nil {
		m.removeTemp(ctx, tmp)
		return "", fmt.Errorf("%w: replace %s: %w", model.ErrExportFailed, dest, err)
	}

	progress("Background music added")
	return dest, nil
}

func (m *implMixer) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
