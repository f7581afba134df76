package generator

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Options tunes a single generation.
type Options struct {
	Style           model.Style
	DurationMinutes int
}

// Generator writes a two-speaker broadcast script from a parsed memo.
type Generator interface {
	Generate(ctx context.Context, memo *model.ParsedMemo, opts Options) (*model.Script, error)
}
