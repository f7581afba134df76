package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/cheercast/internal/model"
)

const dialoguePreamble = "Please read aloud the following in a podcast interview style:\n\n"

func (c *implClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: prebuiltVoice(voice),
		},
	}

	result, err := c.generate(ctx, c.opts.TTSModel, genai.Text(text), cfg)
	if err != nil {
		return nil, err
	}
	return collectAudio(result)
}

func (c *implClient) SynthesizeMulti(ctx context.Context, turns []model.Turn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, errors.New("no dialogue turns")
	}

	var speakers []*genai.SpeakerVoiceConfig
	seen := make(map[string]bool)
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Speaker, t.Text))
		if seen[t.Speaker] {
			continue
		}
		seen[t.Speaker] = true
		speakers = append(speakers, &genai.SpeakerVoiceConfig{
			Speaker:     t.Speaker,
			VoiceConfig: prebuiltVoice(t.Voice),
		})
	}

	// The multi-speaker API requires exactly two voices.
	if len(speakers) != 2 {
		return nil, fmt.Errorf("multi-speaker synthesis needs 2 speakers, got %d", len(speakers))
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
				SpeakerVoiceConfigs: speakers,
			},
		},
	}

	prompt := dialoguePreamble + strings.Join(lines, "\n\n")
	result, err := c.generate(ctx, c.opts.TTSModel, genai.Text(prompt), cfg)
	if err != nil {
		return nil, err
	}
	return collectAudio(result)
}

func prebuiltVoice(name string) *genai.VoiceConfig {
	return &genai.VoiceConfig{
		PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: name},
	}
}

func collectAudio(result *genai.GenerateContentResponse) ([]byte, error) {
	var data []byte
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			data = append(data, part.InlineData.Data...)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("no audio data in Gemini response")
	}
	return data, nil
}
