package voice

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/pkg/retry"
)

var errEmptyScript = errors.New("script has no dialogue")

func (s *implSynthesizer) Synthesize(ctx context.Context, script *model.Script, opts Options) ([]model.AudioClip, error) {
	if script == nil || len(script.Lines()) == 0 {
		return nil, fmt.Errorf("%w: %w", model.ErrSynthesisFailed, errEmptyScript)
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}

	turns, err := s.turns(script)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSynthesisFailed, err)
	}

	clip, err := s.synthesizeMulti(ctx, turns, opts)
	if err == nil {
		return []model.AudioClip{clip}, nil
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSynthesisFailed, ctx.Err())
	}

	s.logger.Warn(ctx, "Multi-speaker synthesis failed, falling back to per-line synthesis: %v", err)
	return s.synthesizeLines(ctx, turns, opts)
}

func (s *implSynthesizer) synthesizeMulti(ctx context.Context, turns []model.Turn, opts Options) (model.AudioClip, error) {
	data, err := s.speech.SynthesizeMulti(ctx, turns)
	if err != nil {
		return model.AudioClip{}, err
	}

	var duration float64
	for _, t := range turns {
		duration += s.estimateDuration(t, opts.Speed)
	}

	s.logger.Info(ctx, "Synthesized %d lines in one multi-speaker call (~%.1fs)", len(turns), duration)
	return model.AudioClip{Data: data, SampleRate: s.cfg.SampleRate, DurationSeconds: duration}, nil
}

// synthesizeLines renders turns one by one. Any failure aborts the whole run.
func (s *implSynthesizer) synthesizeLines(ctx context.Context, turns []model.Turn, opts Options) ([]model.AudioClip, error) {
	clips := make([]model.AudioClip, 0, len(turns))

	for i, t := range turns {
		data, err := retry.Do(ctx, s.cfg.Retry, func(ctx context.Context) ([]byte, error) {
			return s.speech.Synthesize(ctx, t.Text, t.Voice)
		}, func(attempt int, err error, wait time.Duration) {
			s.logger.Warn(ctx, "Line %d/%d attempt %d failed, retrying in %s: %v", i+1, len(turns), attempt, wait, err)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: line %d (%s): %w", model.ErrSynthesisFailed, i+1, t.Speaker, err)
		}

		clips = append(clips, model.AudioClip{
			Data:            data,
			SampleRate:      s.cfg.SampleRate,
			DurationSeconds: s.estimateDuration(t, opts.Speed),
		})
		s.logger.Debug(ctx, "[%d/%d] Synthesized line for %s", i+1, len(turns), t.Speaker)
	}

	s.logger.Info(ctx, "Synthesized %d lines individually", len(clips))
	return clips, nil
}

func (s *implSynthesizer) turns(script *model.Script) ([]model.Turn, error) {
	lines := script.Lines()
	turns := make([]model.Turn, 0, len(lines))
	for _, l := range lines {
		p, ok := s.cfg.Personas.Lookup(l.Speaker)
		if !ok {
			return nil, fmt.Errorf("unknown speaker %q", l.Speaker)
		}
		turns = append(turns, model.Turn{Speaker: l.Speaker, Text: l.Text, Voice: p.Voice})
	}
	return turns, nil
}

// estimateDuration assumes a fixed number of characters per minute,
// scaled by the requested speed and the speaker's base rate.
func (s *implSynthesizer) estimateDuration(t model.Turn, speed float64) float64 {
	rate := speed
	if p, ok := s.cfg.Personas.Lookup(t.Speaker); ok && p.SpeakingRate > 0 {
		rate *= p.SpeakingRate
	}
	return float64(utf8.RuneCountInString(t.Text)) / (s.cfg.CharsPerMinute * rate) * 60
}
