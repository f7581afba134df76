package transcript

import (
	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/model"
)

type implWriter struct {
	personas model.Personas
	logger   logger.Logger
}

// New creates a new Writer instance
func New(personas model.Personas, log logger.Logger) Writer {
	return &implWriter{
		personas: personas,
		logger:   log,
	}
}
