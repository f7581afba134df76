package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/generator"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
	"github.com/nguyentantai21042004/cheercast/internal/mixer"
	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/internal/parser"
	"github.com/nguyentantai21042004/cheercast/internal/voice"
)

const scenarioMemo = "2024-01-20\n仕事のプロジェクトを完了させた。英語の勉強を1時間した。"

type fakeGenerator struct {
	memo *model.ParsedMemo
	opts generator.Options
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, memo *model.ParsedMemo, opts generator.Options) (*model.Script, error) {
	f.memo, f.opts = memo, opts
	if f.err != nil {
		return nil, f.err
	}
	return &model.Script{
		Title: "2024年1月20日のToday's You",
		Date:  memo.Date,
		Segments: []model.Segment{{
			Type:  model.SegmentOpening,
			Lines: []model.DialogueLine{{Speaker: "あかり", Text: "こんにちは"}},
		}},
	}, nil
}

type fakeSynth struct {
	calls int
	speed float64
	err   error
}

func (f *fakeSynth) Synthesize(ctx context.Context, script *model.Script, opts voice.Options) ([]model.AudioClip, error) {
	f.calls++
	f.speed = opts.Speed
	if f.err != nil {
		return nil, f.err
	}
	return []model.AudioClip{{Data: []byte("pcm"), SampleRate: 24000, DurationSeconds: 12}}, nil
}

type fakeMixer struct {
	steps []string
	bgm   mixer.BgmOptions
}

func (f *fakeMixer) Concatenate(ctx context.Context, clips []model.AudioClip) ([]byte, error) {
	f.steps = append(f.steps, "concat")
	return []byte("joined"), nil
}

func (f *fakeMixer) Normalize(ctx context.Context, audio []byte) ([]byte, error) {
	f.steps = append(f.steps, "normalize")
	return append(audio, []byte("+norm")...), nil
}

func (f *fakeMixer) Export(ctx context.Context, audio []byte, path string) error {
	f.steps = append(f.steps, "export")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, audio, 0644)
}

func (f *fakeMixer) Probe(ctx context.Context, path string) (float64, error) {
	f.steps = append(f.steps, "probe")
	return 17, nil
}

func (f *fakeMixer) AddBackgroundMusic(ctx context.Context, audioPath string, opts mixer.BgmOptions) (string, error) {
	f.steps = append(f.steps, "bgm")
	f.bgm = opts
	if opts.Output != "" {
		return opts.Output, nil
	}
	return audioPath, nil
}

type fakeTranscript struct {
	path string
}

func (f *fakeTranscript) Write(ctx context.Context, script *model.Script, path string) error {
	f.path = path
	return nil
}

type fixture struct {
	pipeline   Pipeline
	cfg        *config.Config
	generator  *fakeGenerator
	synth      *fakeSynth
	mixer      *fakeMixer
	transcript *fakeTranscript
	metrics    *metrics.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{Paths: config.PathsConfig{
		Input:    filepath.Join(root, "inbox"),
		Output:   filepath.Join(root, "output"),
		Archived: filepath.Join(root, "archived"),
		Temp:     filepath.Join(root, "temp"),
	}}
	require.NoError(t, cfg.Validate())

	f := &fixture{
		cfg:        cfg,
		generator:  &fakeGenerator{},
		synth:      &fakeSynth{},
		mixer:      &fakeMixer{},
		transcript: &fakeTranscript{},
		metrics:    metrics.New(),
	}
	f.pipeline = New(cfg, Stages{
		Parser:      parser.New(logger.NewNop()),
		Generator:   f.generator,
		Synthesizer: f.synth,
		Mixer:       f.mixer,
		Transcript:  f.transcript,
		Metrics:     f.metrics,
	}, logger.NewNop())
	return f
}

func (f *fixture) metricsBody(t *testing.T) string {
	rec := httptest.NewRecorder()
	f.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestRunPreview(t *testing.T) {
	f := newFixture(t)

	var stages []string
	res, err := f.pipeline.Run(context.Background(), Request{
		SourceText: scenarioMemo,
		Preview:    true,
		OnProgress: func(s string) { stages = append(stages, s) },
	})
	require.NoError(t, err)

	require.NotNil(t, res.Script)
	assert.Empty(t, res.OutputPath)
	assert.Zero(t, f.synth.calls)
	assert.Empty(t, f.mixer.steps)
	assert.Equal(t, []string{"Parsing memo", "Generating script", "Done"}, stages)

	// configured defaults fill the zero fields
	assert.Equal(t, model.StyleAnalytical, f.generator.opts.Style)
	assert.Equal(t, 10, f.generator.opts.DurationMinutes)
	require.Len(t, f.generator.memo.Activities, 2)
}

func TestRunFull(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "show.mp3")

	res, err := f.pipeline.Run(context.Background(), Request{
		SourceText:      scenarioMemo,
		Style:           model.StyleComprehensive,
		DurationMinutes: 5,
		Speed:           1.2,
		OutputPath:      out,
		TranscriptPath:  filepath.Join(t.TempDir(), "show.docx"),
		Bgm:             &BgmSpec{Path: "bgm.mp3", Volume: 0.3, Ducking: 0.15, Intro: 3, Outro: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, out, res.OutputPath)
	assert.Equal(t, 17.0, res.DurationSeconds)
	assert.Equal(t, []string{"concat", "normalize", "export", "bgm", "probe"}, f.mixer.steps)
	assert.Equal(t, 1.2, f.synth.speed)
	assert.Equal(t, model.StyleComprehensive, f.generator.opts.Style)
	assert.Empty(t, f.mixer.bgm.Output, "bgm replaces the exported file")
	assert.Equal(t, 3.0, f.mixer.bgm.Intro)
	assert.NotEmpty(t, f.transcript.path)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "joined+norm", string(data))

	assert.Contains(t, f.metricsBody(t), `cheercast_runs_total{outcome="success"} 1`)
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "no source", req: Request{OutputPath: "out.mp3"}},
		{name: "both sources", req: Request{SourceText: "x", SourcePath: "memo.txt", OutputPath: "out.mp3"}},
		{name: "no output", req: Request{SourceText: "x"}},
		{name: "duration too long", req: Request{SourceText: "x", OutputPath: "out.mp3", DurationMinutes: 90}},
		{name: "negative speed", req: Request{SourceText: "x", OutputPath: "out.mp3", Speed: -1}},
		{name: "unknown style", req: Request{SourceText: "x", OutputPath: "out.mp3", Style: "gentle"}},
		{name: "bgm volume", req: Request{SourceText: "x", OutputPath: "out.mp3", Bgm: &BgmSpec{Path: "b.mp3", Volume: 1.5}}},
		{name: "bgm negative intro", req: Request{SourceText: "x", OutputPath: "out.mp3", Bgm: &BgmSpec{Path: "b.mp3", Intro: -1}}},
		{name: "bgm without path", req: Request{SourceText: "x", OutputPath: "out.mp3", Bgm: &BgmSpec{Volume: 0.3}}},
		{name: "missing file", req: Request{SourcePath: "/nonexistent/memo.txt", OutputPath: "out.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.pipeline.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, model.ErrInput)
			assert.Nil(t, f.generator.memo, "generator must not run")
		})
	}
}

func TestRunStageFailure(t *testing.T) {
	f := newFixture(t)
	f.synth.err = model.ErrSynthesisFailed

	res, err := f.pipeline.Run(context.Background(), Request{SourceText: scenarioMemo, OutputPath: filepath.Join(t.TempDir(), "x.mp3")})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, model.ErrSynthesisFailed)
	assert.Empty(t, f.mixer.steps)

	body := f.metricsBody(t)
	assert.Contains(t, body, `cheercast_stage_failures_total{stage="synthesize"} 1`)
	assert.Contains(t, body, `cheercast_runs_total{outcome="failure"} 1`)
}

func TestRunDirectory(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mon.txt"), []byte("2024-01-15\n会議で企画を発表した。"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tue.txt"), []byte("2024-01-16\nジムで運動した。"), 0644))

	_, err := f.pipeline.Run(context.Background(), Request{SourcePath: dir, Preview: true})
	require.NoError(t, err)

	require.NotNil(t, f.generator.memo.DateRange)
	assert.Len(t, f.generator.memo.Activities, 2)
}

func TestAddBackgroundMusic(t *testing.T) {
	f := newFixture(t)

	out, err := f.pipeline.AddBackgroundMusic(context.Background(), BgmRequest{
		AudioPath:  "show.mp3",
		OutputPath: "final.mp3",
		Bgm:        BgmSpec{Path: "bgm.mp3", Volume: 0.3, Ducking: 0.15},
	})
	require.NoError(t, err)
	assert.Equal(t, "final.mp3", out)
	assert.Equal(t, "bgm.mp3", f.mixer.bgm.Path)

	_, err = f.pipeline.AddBackgroundMusic(context.Background(), BgmRequest{AudioPath: "show.mp3"})
	assert.ErrorIs(t, err, model.ErrInput)
}

func TestProcessFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.cfg.Paths.Input, 0755))
	memo := filepath.Join(f.cfg.Paths.Input, "2024-01-20.txt")
	require.NoError(t, os.WriteFile(memo, []byte(scenarioMemo), 0644))

	require.NoError(t, f.pipeline.ProcessFile(context.Background(), memo))

	assert.FileExists(t, filepath.Join(f.cfg.Paths.Output, "2024-01-20.mp3"))
	assert.Equal(t, filepath.Join(f.cfg.Paths.Output, "2024-01-20.docx"), f.transcript.path)
	assert.NoFileExists(t, memo)
	assert.FileExists(t, filepath.Join(f.cfg.Paths.Archived, "2024-01-20.txt"))
	assert.NotContains(t, f.mixer.steps, "bgm", "no bgm configured")
}

func TestProcessFileFailureKeepsMemo(t *testing.T) {
	f := newFixture(t)
	f.generator.err = model.ErrGenerationFailed
	require.NoError(t, os.MkdirAll(f.cfg.Paths.Input, 0755))
	memo := filepath.Join(f.cfg.Paths.Input, "today.md")
	require.NoError(t, os.WriteFile(memo, []byte(scenarioMemo), 0644))

	err := f.pipeline.ProcessFile(context.Background(), memo)
	assert.ErrorIs(t, err, model.ErrGenerationFailed)
	assert.FileExists(t, memo)
}
