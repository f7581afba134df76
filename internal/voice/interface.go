package voice

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Options tunes a single synthesis run.
type Options struct {
	// Speed multiplies each persona's base speaking rate.
	Speed float64
}

// Synthesizer renders a script into ordered audio clips.
type Synthesizer interface {
	Synthesize(ctx context.Context, script *model.Script, opts Options) ([]model.AudioClip, error)
}
