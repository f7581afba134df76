package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/pkg/retry"
)

func (g *implGenerator) Generate(ctx context.Context, memo *model.ParsedMemo, opts Options) (*model.Script, error) {
	if memo == nil {
		return nil, fmt.Errorf("%w: nil memo", model.ErrInput)
	}

	prompt := g.buildPrompt(memo, opts)
	g.logger.Debug(ctx, "Script prompt (%s mode, %d chars)", g.cfg.Mode, len([]rune(prompt)))

	src, err := retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (ScriptSource, error) {
		return g.request(ctx, prompt)
	}, func(attempt int, err error, wait time.Duration) {
		g.logger.Warn(ctx, "Script generation attempt %d failed, retrying in %s: %v", attempt, wait, err)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: call model: %w", model.ErrGenerationFailed, err)
	}

	segments, err := src.segments(g.cfg.Personas)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrGenerationFailed, err)
	}

	script := &model.Script{
		Title:           scriptTitle(memo, g.cfg.ShowName),
		Date:            memo.Date,
		DurationMinutes: opts.DurationMinutes,
		Segments:        segments,
	}

	g.logger.Info(ctx, "Generated script %q: %d segments, %d lines", script.Title, len(segments), len(script.Lines()))
	return script, nil
}

func (g *implGenerator) request(ctx context.Context, prompt string) (ScriptSource, error) {
	if g.cfg.Mode == ModeFreeform {
		text, err := g.text.GenerateText(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return FreeformSource{Text: text}, nil
	}

	raw, err := g.text.GenerateJSON(ctx, prompt, scriptSchema(g.cfg.Personas))
	if err != nil {
		return nil, err
	}
	return StructuredSource{Raw: raw}, nil
}
