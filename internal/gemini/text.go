package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

const maxOutputTokens = 8192

func (c *implClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := c.generate(ctx, c.opts.Model, genai.Text(prompt), c.textConfig())
	if err != nil {
		return "", err
	}

	text := collectText(result)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty text in Gemini response")
	}
	return text, nil
}

func (c *implClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	cfg := c.textConfig()
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = schema

	result, err := c.generate(ctx, c.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(collectText(result))
	if text == "" {
		return nil, errors.New("empty JSON in Gemini response")
	}
	return []byte(text), nil
}

func (c *implClient) textConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.opts.Temperature),
		MaxOutputTokens: maxOutputTokens,
	}
}

func collectText(result *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
