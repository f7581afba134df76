package pipeline

import (
	"github.com/go-playground/validator/v10"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/generator"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
	"github.com/nguyentantai21042004/cheercast/internal/mixer"
	"github.com/nguyentantai21042004/cheercast/internal/parser"
	"github.com/nguyentantai21042004/cheercast/internal/transcript"
	"github.com/nguyentantai21042004/cheercast/internal/voice"
)

// Stages are the components a pipeline drives, in order.
type Stages struct {
	Parser      parser.Parser
	Generator   generator.Generator
	Synthesizer voice.Synthesizer
	Mixer       mixer.Mixer
	Transcript  transcript.Writer
	Metrics     *metrics.Recorder
}

type implPipeline struct {
	cfg      *config.Config
	stages   Stages
	validate *validator.Validate
	logger   logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, stages Stages, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:      cfg,
		stages:   stages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}
