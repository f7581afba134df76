package mixer

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Mixer turns synthesized clips into one finished broadcast file.
// The pipeline drives it as Concatenate -> Normalize -> Export, then
// optionally AddBackgroundMusic on the exported file.
type Mixer interface {
	Concatenate(ctx context.Context, clips []model.AudioClip) ([]byte, error)
	Normalize(ctx context.Context, audio []byte) ([]byte, error)
	Export(ctx context.Context, audio []byte, path string) error
	// Probe returns the duration of an encoded file in seconds.
	Probe(ctx context.Context, path string) (float64, error)
	// AddBackgroundMusic mixes BGM under audioPath and returns the written path.
	AddBackgroundMusic(ctx context.Context, audioPath string, opts BgmOptions) (string, error)
}

// BgmOptions places background music around and under the voice track.
// Times are seconds, volumes are linear gain.
type BgmOptions struct {
	Path    string
	Output  string // empty or equal to the input replaces the input
	Volume  float64
	Ducking float64
	FadeIn  float64
	FadeOut float64
	Intro   float64
	Outro   float64

	OnProgress func(stage string)
}
