package voice

import (
	"github.com/nguyentantai21042004/cheercast/internal/gemini"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/pkg/retry"
)

// Config describes the voices and the PCM they produce.
type Config struct {
	Personas       model.Personas
	CharsPerMinute float64
	SampleRate     int
	Retry          retry.Policy
}

type implSynthesizer struct {
	speech gemini.SpeechModel
	cfg    Config
	logger logger.Logger
}

// New creates a new Synthesizer instance
func New(speech gemini.SpeechModel, cfg Config, log logger.Logger) Synthesizer {
	if cfg.CharsPerMinute <= 0 {
		cfg.CharsPerMinute = 300
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 24000
	}
	return &implSynthesizer{
		speech: speech,
		cfg:    cfg,
		logger: log,
	}
}
