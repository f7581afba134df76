package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var errNoAPIKeys = errors.New("no Gemini API keys configured")

// generate sends one request, rotating API keys on 429 / quota errors.
// Every key is tried at most once per call.
func (c *implClient) generate(ctx context.Context, modelName string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if len(c.opts.APIKeys) == 0 {
		return nil, errNoAPIKeys
	}

	var lastErr error
	for range len(c.opts.APIKeys) {
		idx, client, err := c.client(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, modelName, contents, cfg)
		if err != nil {
			if isQuotaError(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				c.rotateKey(idx)
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate content: %w", err)
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return nil, errors.New("empty response from Gemini")
		}
		return result, nil
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// client returns the genai client for the current key, creating it on first use.
func (c *implClient) client(ctx context.Context) (int, *genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.currentKey
	key := c.opts.APIKeys[idx]
	if cl, ok := c.clients[key]; ok {
		return idx, cl, nil
	}

	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return idx, nil, err
	}
	c.clients[key] = cl
	return idx, cl, nil
}

// rotateKey advances past failed. A concurrent caller may already have moved on.
func (c *implClient) rotateKey(failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == failed {
		c.currentKey = (c.currentKey + 1) % len(c.opts.APIKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
