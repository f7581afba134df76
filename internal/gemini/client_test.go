package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
	"github.com/nguyentantai21042004/cheercast/internal/model"
)

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 429, Message: too many requests"), true},
		{errors.New("exceeded your current quota"), true},
		{errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{errors.New("Error 400, Message: invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, isQuotaError(tt.err))
		})
	}
}

func TestRotateKey(t *testing.T) {
	c := New(Options{APIKeys: []string{"a", "b", "c"}}, logger.NewNop()).(*implClient)

	c.rotateKey(0)
	assert.Equal(t, 1, c.currentKey)

	// stale rotation from a caller that still saw key 0
	c.rotateKey(0)
	assert.Equal(t, 1, c.currentKey)

	c.rotateKey(1)
	c.rotateKey(2)
	assert.Equal(t, 0, c.currentKey)
}

func TestGenerateWithoutKeys(t *testing.T) {
	c := New(Options{Model: "gemini-2.5-flash"}, logger.NewNop())

	_, err := c.GenerateText(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoAPIKeys)
}

func TestSynthesizeMultiNeedsTwoSpeakers(t *testing.T) {
	c := New(Options{APIKeys: []string{"k"}}, logger.NewNop())

	_, err := c.SynthesizeMulti(context.Background(), []model.Turn{
		{Speaker: "あかり", Text: "こんにちは", Voice: "Kore"},
		{Speaker: "あかり", Text: "続けます", Voice: "Kore"},
	})
	assert.ErrorContains(t, err, "needs 2 speakers")

	_, err = c.SynthesizeMulti(context.Background(), nil)
	assert.Error(t, err)
}
