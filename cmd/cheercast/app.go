package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/gemini"
	"github.com/nguyentantai21042004/cheercast/internal/generator"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
	"github.com/nguyentantai21042004/cheercast/internal/mixer"
	"github.com/nguyentantai21042004/cheercast/internal/parser"
	"github.com/nguyentantai21042004/cheercast/internal/pipeline"
	"github.com/nguyentantai21042004/cheercast/internal/transcript"
	"github.com/nguyentantai21042004/cheercast/internal/voice"
	"github.com/nguyentantai21042004/cheercast/pkg/executor"
	"github.com/nguyentantai21042004/cheercast/pkg/retry"
)

type app struct {
	cfg      *config.Config
	log      logger.Logger
	metrics  *metrics.Recorder
	pipeline pipeline.Pipeline
}

// loadConfig reads the dotenv file, the YAML config and applies
// environment and flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if len(cfg.Gemini.APIKeys) == 0 {
		cfg.Gemini.APIKeys = splitKeys(os.Getenv("GEMINI_API_KEY"))
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// newApp wires every pipeline stage from cfg.
func newApp(cmd *cobra.Command, needModel bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if needModel && len(cfg.Gemini.APIKeys) == 0 {
		return nil, errors.New("no Gemini API key: set GEMINI_API_KEY or gemini.api_keys")
	}

	log := logger.NewWithOptions(cfg.Logging.Level, logger.Options{
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	policy := retry.Policy{MaxAttempts: cfg.Retry.MaxAttempts, InitialDelay: cfg.Retry.InitialDelay}
	client := gemini.New(gemini.Options{
		APIKeys:     cfg.Gemini.APIKeys,
		Model:       cfg.Gemini.Model,
		TTSModel:    cfg.Gemini.TTSModel,
		Temperature: cfg.Gemini.Temperature,
	}, log)
	rec := metrics.New()

	stages := pipeline.Stages{
		Parser: parser.New(log),
		Generator: generator.New(client, generator.Config{
			ShowName: cfg.Show.Name,
			Personas: cfg.Personas,
			Mode:     generator.ResponseMode(cfg.Gemini.ResponseMode),
			Retry:    policy,
		}, log),
		Synthesizer: voice.New(client, voice.Config{
			Personas:       cfg.Personas,
			CharsPerMinute: cfg.Audio.CharsPerMinute,
			SampleRate:     cfg.Audio.SampleRate,
			Retry:          policy,
		}, log),
		Mixer: mixer.New(executor.New(), mixer.Config{
			FFmpeg:         cfg.FFmpeg.Binary,
			FFprobe:        cfg.FFmpeg.ProbeBinary,
			TempDir:        cfg.Paths.Temp,
			Codec:          cfg.Audio.Codec,
			Bitrate:        cfg.Audio.Bitrate,
			TargetLoudness: cfg.Audio.TargetLoudness,
		}, log),
		Transcript: transcript.New(cfg.Personas, log),
		Metrics:    rec,
	}

	return &app{
		cfg:      cfg,
		log:      log,
		metrics:  rec,
		pipeline: pipeline.New(cfg, stages, log),
	}, nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// printProgress reports stage boundaries on stderr.
func printProgress(cmd *cobra.Command) func(string) {
	return func(stage string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "→ %s\n", stage)
	}
}
