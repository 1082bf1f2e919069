package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerKeyCSV(t *testing.T) {
	input := strings.Join([]string{
		"question_number,answer,points",
		"2,Paris|paris|PARIS,2",
		"1,A,1",
		"3,True|T|Yes,",
	}, "\n")

	entries, err := ParseAnswerKeyCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 2, entries[0].QuestionNumber)
	assert.Equal(t, "Paris", entries[0].CorrectAnswer)
	assert.Equal(t, []string{"paris", "PARIS"}, entries[0].VariantList())
	assert.InDelta(t, 2.0, entries[0].Points, 1e-9)

	assert.Equal(t, 1, entries[1].QuestionNumber)
	assert.Empty(t, entries[1].VariantList())
	assert.InDelta(t, 1.0, entries[1].Points, 1e-9)

	// Blank points cell falls back to the 1.0 default.
	assert.InDelta(t, 1.0, entries[2].Points, 1e-9)
	assert.Equal(t, []string{"T", "Yes"}, entries[2].VariantList())
}

func TestParseAnswerKeyCSVAlternateHeaders(t *testing.T) {
	input := "question,correct_answer\n1,Jakarta\n"

	entries, err := ParseAnswerKeyCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jakarta", entries[0].CorrectAnswer)
	assert.InDelta(t, 1.0, entries[0].Points, 1e-9)
}

func TestParseAnswerKeyCSVErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "missing columns", input: "foo,bar\n1,A\n"},
		{name: "no data rows", input: "question_number,answer\n"},
		{name: "duplicate question", input: "question_number,answer\n1,A\n1,B\n"},
		{name: "non-numeric question", input: "question_number,answer\nx,A\n"},
		{name: "zero question number", input: "question_number,answer\n0,A\n"},
		{name: "empty answer", input: "question_number,answer\n1, \n"},
		{name: "negative points", input: "question_number,answer,points\n1,A,-2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAnswerKeyCSV(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}
