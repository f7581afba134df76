package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// Pipeline turns a memo into a finished broadcast.
type Pipeline interface {
	Run(ctx context.Context, req Request) (*Result, error)
	// AddBackgroundMusic mixes BGM into an already exported broadcast.
	AddBackgroundMusic(ctx context.Context, req BgmRequest) (string, error)
	// ProcessFile runs one inbox memo with configured defaults and archives it.
	ProcessFile(ctx context.Context, path string) error
}

// Request describes one run. Zero Style, DurationMinutes and Speed fall
// back to the configured defaults.
type Request struct {
	SourceText      string
	SourcePath      string `validate:"required_without=SourceText,excluded_with=SourceText"`
	Style           model.Style
	DurationMinutes int     `validate:"omitempty,min=1,max=60"`
	Speed           float64 `validate:"omitempty,gt=0,lte=4"`
	OutputPath      string  `validate:"required_unless=Preview true"`
	Preview         bool
	Bgm             *BgmSpec `validate:"omitempty"`
	TranscriptPath  string

	OnProgress func(stage string) `validate:"-"`
}

// BgmSpec places background music under the voice track.
type BgmSpec struct {
	Path    string  `validate:"required"`
	Volume  float64 `validate:"gte=0,lte=1"`
	Ducking float64 `validate:"gte=0,lte=1"`
	FadeIn  float64 `validate:"gte=0"`
	FadeOut float64 `validate:"gte=0"`
	Intro   float64 `validate:"gte=0"`
	Outro   float64 `validate:"gte=0"`
}

// BgmRequest adds music to an existing file.
type BgmRequest struct {
	AudioPath  string  `validate:"required"`
	OutputPath string
	Bgm        BgmSpec `validate:"required"`

	OnProgress func(stage string) `validate:"-"`
}

// Result is what a run produced. OutputPath is empty for previews.
type Result struct {
	Script          *model.Script
	OutputPath      string
	DurationSeconds float64
}
