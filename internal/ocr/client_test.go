package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokens(t *testing.T) {
	payload := []byte(`[
		{"text": "1. Jakarta", "confidence": 0.91, "bbox": {"x0": 10, "y0": 20, "x1": 120, "y1": 48}},
		{"text": "2. Bandung", "confidence": 0.42}
	]`)

	tokens, err := decodeTokens(payload)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "1. Jakarta", tokens[0].Text)
	assert.InDelta(t, 0.91, tokens[0].Confidence, 1e-9)
	require.NotNil(t, tokens[0].BBox)
	assert.Equal(t, 10, tokens[0].BBox.X0)
	assert.Equal(t, 48, tokens[0].BBox.Y1)

	assert.Nil(t, tokens[1].BBox)
}

func TestDecodeTokensEmptyArray(t *testing.T) {
	tokens, err := decodeTokens([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestDecodeTokensMalformed(t *testing.T) {
	_, err := decodeTokens([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
