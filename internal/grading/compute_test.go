package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputerGrade(t *testing.T) {
	c := NewComputer()

	key := []KeyEntry{
		{QuestionNumber: 1, CorrectAnswer: "A", Points: 1.0},
		{QuestionNumber: 2, CorrectAnswer: "Paris", Variants: []string{"paris"}, Points: 2.0},
	}
	responses := []Response{
		{QuestionNumber: 1, NormalizedAnswer: "a"},
		{QuestionNumber: 2, NormalizedAnswer: "paris"},
	}

	grades := c.Grade(responses, key)

	require.Len(t, grades, 2)
	assert.Equal(t, Grade{QuestionNumber: 1, IsCorrect: true, PointsEarned: 1, PointsPossible: 1}, grades[0])
	assert.Equal(t, Grade{QuestionNumber: 2, IsCorrect: true, PointsEarned: 2, PointsPossible: 2}, grades[1])

	summary := c.Summarize(grades, 0)
	assert.InDelta(t, 3.0, summary.TotalEarned, 1e-9)
	assert.InDelta(t, 3.0, summary.TotalPossible, 1e-9)
	assert.InDelta(t, 100.0, summary.Percentage, 1e-9)
	assert.Equal(t, "A+", summary.LetterGrade)
}

func TestComputerGradeWrongAnswerEarnsZero(t *testing.T) {
	c := NewComputer()

	grades := c.Grade(
		[]Response{{QuestionNumber: 1, NormalizedAnswer: "london"}},
		[]KeyEntry{{QuestionNumber: 1, CorrectAnswer: "Paris", Points: 2.5}},
	)

	require.Len(t, grades, 1)
	assert.False(t, grades[0].IsCorrect)
	assert.Zero(t, grades[0].PointsEarned)
	assert.InDelta(t, 2.5, grades[0].PointsPossible, 1e-9)
}

func TestComputerGradeSkipsMissingKeyEntries(t *testing.T) {
	c := NewComputer()

	grades := c.Grade(
		[]Response{
			{QuestionNumber: 1, NormalizedAnswer: "a"},
			{QuestionNumber: 3, NormalizedAnswer: "orphan"},
		},
		[]KeyEntry{{QuestionNumber: 1, CorrectAnswer: "A", Points: 1}},
	)

	// Question 3 has no key entry: no grade row, no error.
	require.Len(t, grades, 1)
	assert.Equal(t, 1, grades[0].QuestionNumber)
}

func TestComputerGradeIdempotent(t *testing.T) {
	c := NewComputer()

	key := []KeyEntry{
		{QuestionNumber: 2, CorrectAnswer: "True", Variants: []string{"T"}, Points: 1},
		{QuestionNumber: 1, CorrectAnswer: "Paris", Points: 2},
	}
	responses := []Response{
		{QuestionNumber: 2, NormalizedAnswer: "t"},
		{QuestionNumber: 1, NormalizedAnswer: "paris"},
	}

	first := c.Grade(responses, key)
	second := c.Grade(responses, key)
	assert.Equal(t, first, second)

	// Output is ordered by question number regardless of input order.
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].QuestionNumber)
	assert.Equal(t, 2, first[1].QuestionNumber)
}

func TestSummarizeEmptyGradeSet(t *testing.T) {
	c := NewComputer()
	summary := c.Summarize(nil, 2)
	assert.Zero(t, summary.Percentage)
	assert.Equal(t, "F", summary.LetterGrade)
	assert.Equal(t, 2, summary.Flagged)
}

func TestLetterGrade(t *testing.T) {
	testCases := []struct {
		pct  float64
		want string
	}{
		{100, "A+"}, {97, "A+"}, {96.99, "A"}, {93, "A"}, {90, "A-"},
		{87, "B+"}, {83, "B"}, {80, "B-"},
		{77, "C+"}, {73, "C"}, {70, "C-"},
		{67, "D+"}, {63, "D"}, {60, "D-"},
		{59.99, "F"}, {0, "F"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, LetterGrade(tc.pct), "pct %v", tc.pct)
	}
}

func TestSummarizeClass(t *testing.T) {
	cs := SummarizeClass([]StudentSummary{
		{Percentage: 100, Flagged: 1},
		{Percentage: 50, Flagged: 2},
		{Percentage: 75},
	})

	assert.Equal(t, 3, cs.Students)
	assert.InDelta(t, 75.0, cs.AveragePct, 1e-9)
	assert.InDelta(t, 50.0, cs.MinPct, 1e-9)
	assert.InDelta(t, 100.0, cs.MaxPct, 1e-9)
	assert.Equal(t, 3, cs.TotalFlagged)

	empty := SummarizeClass(nil)
	assert.Zero(t, empty.Students)
	assert.Zero(t, empty.AveragePct)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 66.67, Round2(66.666666), 1e-9)
	assert.InDelta(t, 33.33, Round2(100.0/3.0), 1e-9)
}
