package mixer

import (
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/pkg/executor"
)

// Config selects the audio tools and the output encoding.
type Config struct {
	FFmpeg         string
	FFprobe        string
	TempDir        string
	Codec          string
	Bitrate        string
	TargetLoudness float64
}

type implMixer struct {
	executor executor.Executor
	cfg      Config
	logger   logger.Logger
}

// New creates a new Mixer instance
func New(exec executor.Executor, cfg Config, log logger.Logger) Mixer {
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.FFprobe == "" {
		cfg.FFprobe = "ffprobe"
	}
	if cfg.Codec == "" {
		cfg.Codec = "libmp3lame"
	}
	if cfg.Bitrate == "" {
		cfg.Bitrate = "192k"
	}
	if cfg.TargetLoudness == 0 {
		cfg.TargetLoudness = -16
	}
	return &implMixer{
		executor: exec,
		cfg:      cfg,
		logger:   log,
	}
}

// encodeArgs are the output options shared by every encoding step.
func (m *implMixer) encodeArgs() []string {
	return []string{"-c:a", m.cfg.Codec, "-b:a", m.cfg.Bitrate}
}
