package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(text string, confidence float64) Token {
	return Token{Text: text, Confidence: confidence}
}

func TestExtractNumberedAnswers(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{
		tok("1. A", 0.9),
		tok("2. B", 0.9),
		tok("3. C", 0.9),
	}, 1)

	require.Len(t, answers, 3)
	for i, want := range []struct {
		number int
		raw    string
	}{{1, "A"}, {2, "B"}, {3, "C"}} {
		assert.Equal(t, want.number, answers[i].QuestionNumber)
		assert.Equal(t, want.raw, answers[i].RawAnswer)
		assert.Equal(t, 1, answers[i].PageNumber)
		assert.False(t, answers[i].Flagged)
	}
}

func TestExtractSplitTokens(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	// Number and answer arrive as separate OCR fragments.
	answers := e.Extract([]Token{
		tok("1.", 0.8),
		tok("A", 0.8),
		tok("2.", 0.8),
		tok("B", 0.8),
	}, 1)

	require.Len(t, answers, 2)
	assert.Equal(t, 1, answers[0].QuestionNumber)
	assert.Equal(t, "A", answers[0].RawAnswer)
	assert.Equal(t, 2, answers[1].QuestionNumber)
	assert.Equal(t, "B", answers[1].RawAnswer)
}

func TestExtractSeparatorVariants(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{
		tok("1) Jakarta", 0.9),
		tok("2: Bandung", 0.9),
		tok("3 Surabaya", 0.9),
	}, 1)

	require.Len(t, answers, 3)
	assert.Equal(t, "Jakarta", answers[0].RawAnswer)
	assert.Equal(t, "Bandung", answers[1].RawAnswer)
	assert.Equal(t, "Surabaya", answers[2].RawAnswer)
}

func TestExtractQuestionWordPattern(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{
		tok("Question 1: Madrid", 0.8),
		tok("q2) True", 0.8),
	}, 1)

	require.Len(t, answers, 2)
	assert.Equal(t, 1, answers[0].QuestionNumber)
	assert.Equal(t, "Madrid", answers[0].RawAnswer)
	assert.Equal(t, 2, answers[1].QuestionNumber)
	assert.Equal(t, "True", answers[1].RawAnswer)
}

func TestExtractDropsOutOfOrderNumbers(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{
		tok("2.", 0.9),
		tok("B", 0.9),
		tok("1.", 0.9),
		tok("A", 0.9),
	}, 1)

	// The out-of-order "1. A" is dropped, not reordered.
	require.Len(t, answers, 1)
	assert.Equal(t, 2, answers[0].QuestionNumber)
	assert.Equal(t, "B", answers[0].RawAnswer)
}

func TestExtractImplicitShortAnswers(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	// No digits anywhere: short groups become answers to successive
	// questions starting at 1.
	answers := e.Extract([]Token{
		tok("cat", 0.9),
		tok("dog", 0.9),
	}, 2)

	require.Len(t, answers, 2)
	assert.Equal(t, 1, answers[0].QuestionNumber)
	assert.Equal(t, "cat", answers[0].RawAnswer)
	assert.Equal(t, 2, answers[1].QuestionNumber)
	assert.Equal(t, "dog", answers[1].RawAnswer)
	assert.Equal(t, 2, answers[0].PageNumber)
}

func TestExtractImplicitRespectsConfidenceFloor(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	// Too low for the implicit path and lastQuestionNumber is still 0,
	// so the end-of-stream flush does not fire either.
	answers := e.Extract([]Token{tok("cat", 0.2)}, 1)
	assert.Empty(t, answers)
}

func TestExtractFlagsLowConfidence(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{tok("1. A", 0.5)}, 1)

	require.Len(t, answers, 1)
	assert.True(t, answers[0].Flagged)
	assert.InDelta(t, 0.5, answers[0].Confidence, 1e-9)
}

func TestExtractEndOfStreamFlush(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	// The trailing "B" is below the implicit floor so it survives to the
	// end of the stream, where it is flushed and always flagged.
	answers := e.Extract([]Token{
		tok("1. A", 0.9),
		tok("B", 0.3),
	}, 1)

	require.Len(t, answers, 2)
	assert.Equal(t, 2, answers[1].QuestionNumber)
	assert.Equal(t, "B", answers[1].RawAnswer)
	assert.True(t, answers[1].Flagged)
}

func TestExtractIgnoresPunctuationTokens(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	answers := e.Extract([]Token{
		tok("...", 0.9),
		tok("--", 0.9),
		tok("1. A", 0.9),
	}, 1)

	require.Len(t, answers, 1)
	assert.Equal(t, 1, answers[0].QuestionNumber)
}

func TestExtractBufferCapClearsRunawayText(t *testing.T) {
	e := NewExtractor(ExtractorOptions{BufferCap: 40})

	long := strings.Repeat("unrelated heading text ", 3)
	answers := e.Extract([]Token{
		tok(long, 0.9),
		tok("1. A", 0.9),
	}, 1)

	require.Len(t, answers, 1)
	assert.Equal(t, 1, answers[0].QuestionNumber)
	assert.Equal(t, "A", answers[0].RawAnswer)
}

func TestExtractEmptyStream(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})
	assert.Empty(t, e.Extract(nil, 1))
}

func TestExtractFoldStateTransitions(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})

	st := foldState{}

	// Number fragment alone accumulates without emitting.
	st, emitted := e.step(st, tok("1.", 0.9), 1)
	assert.Nil(t, emitted)
	assert.Equal(t, "1.", st.buffer)
	assert.Equal(t, 0, st.lastQuestion)

	// The answer fragment completes the pattern.
	st, emitted = e.step(st, tok("A", 0.9), 1)
	require.NotNil(t, emitted)
	assert.Equal(t, 1, emitted.QuestionNumber)
	assert.Equal(t, "A", emitted.RawAnswer)
	assert.Equal(t, "", st.buffer)
	assert.Equal(t, 1, st.lastQuestion)

	// An out-of-order match leaves the buffer unreset.
	st, emitted = e.step(st, tok("1. duplicate", 0.9), 1)
	assert.Nil(t, emitted)
	assert.Equal(t, "1. duplicate", st.buffer)
	assert.Equal(t, 1, st.lastQuestion)
}
