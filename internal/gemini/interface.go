package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

// TextModel generates script text.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON constrains the response to schema and returns the raw JSON.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// SpeechModel turns text into raw 16-bit PCM.
type SpeechModel interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	// SynthesizeMulti renders a whole dialogue in one call, one voice per speaker.
	SynthesizeMulti(ctx context.Context, turns []model.Turn) ([]byte, error)
}

// Client is the Gemini API surface used by the pipeline.
type Client interface {
	TextModel
	SpeechModel
}
