package generator

import (
	"github.com/nguyentantai21042004/cheercast/internal/gemini"
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/model"
	"github.com/nguyentantai21042004/cheercast/pkg/retry"
)

// ResponseMode selects how the model is asked to shape its answer.
type ResponseMode string

const (
	ModeStructured ResponseMode = "structured"
	ModeFreeform   ResponseMode = "freeform"
)

// Config holds everything a Generator needs besides the model.
type Config struct {
	ShowName string
	Personas model.Personas
	Mode     ResponseMode
	Retry    retry.Policy
}

type implGenerator struct {
	text   gemini.TextModel
	cfg    Config
	logger logger.Logger
}

// New creates a new Generator instance
func New(text gemini.TextModel, cfg Config, log logger.Logger) Generator {
	if cfg.Mode == "" {
		cfg.Mode = ModeStructured
	}
	return &implGenerator{
		text:   text,
		cfg:    cfg,
		logger: log,
	}
}
