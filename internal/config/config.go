package config

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Show        ShowConfig        `yaml:"show"`
	Personas    model.Personas    `yaml:"personas"`
	Audio       AudioConfig       `yaml:"audio"`
	BGM         BGMConfig         `yaml:"bgm"`
	Retry       RetryConfig       `yaml:"retry"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type GeminiConfig struct {
	APIKeys      []string `yaml:"api_keys"`
	Model        string   `yaml:"model"`
	TTSModel     string   `yaml:"tts_model"`
	Temperature  float32  `yaml:"temperature"`
	ResponseMode string   `yaml:"response_mode"`
}

type ShowConfig struct {
	Name string `yaml:"name"`
}

type AudioConfig struct {
	Duration       int     `yaml:"duration"`
	Style          string  `yaml:"style"`
	Speed          float64 `yaml:"speed"`
	CharsPerMinute float64 `yaml:"chars_per_minute"`
	SampleRate     int     `yaml:"sample_rate"`
	Codec          string  `yaml:"codec"`
	Bitrate        string  `yaml:"bitrate"`
	TargetLoudness float64 `yaml:"target_loudness"`
}

// BGMConfig holds the defaults for background music. Path is only used
// by inbox processing; CLI runs take the track as a flag. Zero levels
// fall back to their defaults one by one.
type BGMConfig struct {
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"`
	Ducking float64 `yaml:"ducking"`
	FadeIn  float64 `yaml:"fade_in"`
	FadeOut float64 `yaml:"fade_out"`
	Intro   float64 `yaml:"intro"`
	Outro   float64 `yaml:"outro"`
}

type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
}

type FFmpegConfig struct {
	Binary      string `yaml:"binary"`
	ProbeBinary string `yaml:"probe_binary"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Validate checks required fields and fills defaults in place.
func (c *Config) Validate() error {
	if c.Personas.Host.Name == "" {
		c.Personas.Host = model.Persona{Name: "あかり", Voice: "Kore", Character: "落ち着いた進行役のメインキャスター"}
	}
	if c.Personas.Commentator.Name == "" {
		c.Personas.Commentator = model.Persona{Name: "けんた", Voice: "Puck", Character: "データを深掘りする分析好きのコメンテーター"}
	}
	if c.Personas.Host.Name == c.Personas.Commentator.Name {
		return fmt.Errorf("personas.host.name and personas.commentator.name must differ")
	}
	if c.Personas.Host.Voice == "" || c.Personas.Commentator.Voice == "" {
		return fmt.Errorf("personas.*.voice is required")
	}
	for _, p := range []*model.Persona{&c.Personas.Host, &c.Personas.Commentator} {
		if p.SpeakingRate == 0 {
			p.SpeakingRate = 0.95
		}
	}

	switch c.Gemini.ResponseMode {
	case "":
		c.Gemini.ResponseMode = "structured"
	case "structured", "freeform":
	default:
		return fmt.Errorf("gemini.response_mode must be structured or freeform, got %q", c.Gemini.ResponseMode)
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.TTSModel == "" {
		c.Gemini.TTSModel = "gemini-2.5-flash-preview-tts"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}

	if c.Show.Name == "" {
		c.Show.Name = "Today's You"
	}

	if c.Audio.Duration == 0 {
		c.Audio.Duration = 10
	}
	if c.Audio.Duration < 1 || c.Audio.Duration > 60 {
		return fmt.Errorf("audio.duration must be between 1 and 60 minutes")
	}
	if c.Audio.Style == "" {
		c.Audio.Style = string(model.StyleAnalytical)
	}
	if _, err := model.ParseStyle(c.Audio.Style); err != nil {
		return fmt.Errorf("audio.style: %w", err)
	}
	if c.Audio.Speed == 0 {
		c.Audio.Speed = 1.0
	}
	if c.Audio.CharsPerMinute == 0 {
		c.Audio.CharsPerMinute = 300
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 24000
	}
	if c.Audio.Codec == "" {
		c.Audio.Codec = "libmp3lame"
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "192k"
	}
	if c.Audio.TargetLoudness == 0 {
		c.Audio.TargetLoudness = -16
	}

	bgmDefaults := []struct {
		field *float64
		value float64
	}{
		{&c.BGM.Volume, 0.3},
		{&c.BGM.Ducking, 0.15},
		{&c.BGM.FadeIn, 3},
		{&c.BGM.FadeOut, 3},
		{&c.BGM.Intro, 3},
		{&c.BGM.Outro, 2},
	}
	for _, d := range bgmDefaults {
		if *d.field == 0 {
			*d.field = d.value
		}
	}
	if c.BGM.Volume < 0 || c.BGM.Volume > 1 || c.BGM.Ducking < 0 || c.BGM.Ducking > 1 {
		return fmt.Errorf("bgm.volume and bgm.ducking must be between 0 and 1")
	}

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialDelay == 0 {
		c.Retry.InitialDelay = time.Second
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
