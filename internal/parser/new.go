package parser

import (
	"time"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
)

type implParser struct {
	logger logger.Logger
	now    func() time.Time
}

// New creates a new Parser instance
func New(log logger.Logger) Parser {
	return &implParser{
		logger: log,
		now:    time.Now,
	}
}
