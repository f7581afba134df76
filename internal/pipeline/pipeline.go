package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nguyentantai21042004/cheercast/internal/generator"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
	"github.com/nguyentantai21042004/cheercast/internal/mixer"
	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/internal/voice"
)

// Run executes parse -> generate -> synthesize -> mix -> export -> [bgm].
func (p *implPipeline) Run(ctx context.Context, req Request) (res *Result, err error) {
	ctx = logger.WithRunID(ctx, ulid.Make().String())
	startTime := time.Now()
	defer func() { p.stages.Metrics.ObserveRun(err) }()

	if err := p.prepare(&req); err != nil {
		return nil, err
	}
	progress := progressFunc(req.OnProgress)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting broadcast generation: style=%s duration=%dm preview=%t", req.Style, req.DurationMinutes, req.Preview)
	p.logger.Info(ctx, "========================================")

	// Step 1: Parse memo
	progress("Parsing memo")
	var memo *model.ParsedMemo
	if err := p.stage(ctx, metrics.StageParse, func() (err error) {
		memo, err = p.parse(ctx, req)
		return err
	}); err != nil {
		return nil, err
	}

	// Step 2: Generate script
	progress("Generating script")
	var script *model.Script
	if err := p.stage(ctx, metrics.StageGenerate, func() (err error) {
		script, err = p.stages.Generator.Generate(ctx, memo, generator.Options{
			Style:           req.Style,
			DurationMinutes: req.DurationMinutes,
		})
		return err
	}); err != nil {
		return nil, err
	}

	if req.TranscriptPath != "" {
		progress("Writing transcript")
		if err := p.stage(ctx, metrics.StageTranscript, func() error {
			return p.stages.Transcript.Write(ctx, script, req.TranscriptPath)
		}); err != nil {
			return nil, err
		}
	}

	if req.Preview {
		progress("Done")
		p.logger.Info(ctx, "Preview ready in %s", time.Since(startTime))
		return &Result{Script: script}, nil
	}

	// Step 3: Synthesize speech
	progress("Synthesizing speech")
	var clips []model.AudioClip
	if err := p.stage(ctx, metrics.StageSynthesize, func() (err error) {
		clips, err = p.stages.Synthesizer.Synthesize(ctx, script, voice.Options{Speed: req.Speed})
		return err
	}); err != nil {
		return nil, err
	}

	// Step 4: Concatenate and normalize
	progress("Mixing audio")
	var audio []byte
	if err := p.stage(ctx, metrics.StageMix, func() (err error) {
		if audio, err = p.stages.Mixer.Concatenate(ctx, clips); err != nil {
			return err
		}
		audio, err = p.stages.Mixer.Normalize(ctx, audio)
		return err
	}); err != nil {
		return nil, err
	}

	// Step 5: Export
	progress("Exporting")
	if err := p.stage(ctx, metrics.StageExport, func() error {
		return p.stages.Mixer.Export(ctx, audio, req.OutputPath)
	}); err != nil {
		return nil, err
	}

	// Step 6: Optional background music, replacing the export in place
	if req.Bgm != nil {
		progress("Adding background music")
		if err := p.stage(ctx, metrics.StageBGM, func() error {
			_, err := p.stages.Mixer.AddBackgroundMusic(ctx, req.OutputPath, bgmOptions(*req.Bgm, "", nil))
			return err
		}); err != nil {
			return nil, err
		}
	}

	duration, probeErr := p.stages.Mixer.Probe(ctx, req.OutputPath)
	if probeErr != nil {
		p.logger.Warn(ctx, "Could not probe output duration, using estimate: %v", probeErr)
		duration = estimatedDuration(clips, req.Bgm)
	}

	progress("Done")
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Broadcast completed successfully!")
	p.logger.Info(ctx, "Output audio: %s (%.1fs)", req.OutputPath, duration)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return &Result{Script: script, OutputPath: req.OutputPath, DurationSeconds: duration}, nil
}

func (p *implPipeline) AddBackgroundMusic(ctx context.Context, req BgmRequest) (string, error) {
	if err := p.check(&req); err != nil {
		return "", err
	}

	var out string
	err := p.stage(ctx, metrics.StageBGM, func() (err error) {
		out, err = p.stages.Mixer.AddBackgroundMusic(ctx, req.AudioPath, bgmOptions(req.Bgm, req.OutputPath, req.OnProgress))
		return err
	})
	return out, err
}

func (p *implPipeline) parse(ctx context.Context, req Request) (*model.ParsedMemo, error) {
	if req.SourceText != "" {
		return p.stages.Parser.Parse(ctx, []byte(req.SourceText), "")
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInput, err)
	}
	if info.IsDir() {
		return p.stages.Parser.ParseDir(ctx, req.SourcePath)
	}
	return p.stages.Parser.ParseFile(ctx, req.SourcePath)
}

// stage times fn and records the outcome.
func (p *implPipeline) stage(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.stages.Metrics.ObserveStage(name, elapsed, err)

	if err != nil {
		p.logger.Error(ctx, "Stage %s failed after %s: %v", name, elapsed, err)
		return err
	}
	p.logger.Debug(ctx, "Stage %s finished in %s", name, elapsed)
	return nil
}

func bgmOptions(spec BgmSpec, output string, onProgress func(string)) mixer.BgmOptions {
	return mixer.BgmOptions{
		Path:       spec.Path,
		Output:     output,
		Volume:     spec.Volume,
		Ducking:    spec.Ducking,
		FadeIn:     spec.FadeIn,
		FadeOut:    spec.FadeOut,
		Intro:      spec.Intro,
		Outro:      spec.Outro,
		OnProgress: onProgress,
	}
}

func estimatedDuration(clips []model.AudioClip, bgm *BgmSpec) float64 {
	var total float64
	for _, c := range clips {
		total += c.DurationSeconds
	}
	if bgm != nil {
		total += bgm.Intro + bgm.Outro
	}
	return total
}

func progressFunc(fn func(string)) func(string) {
	if fn == nil {
		return func(string) {}
	}
	return fn
}
