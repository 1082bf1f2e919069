package service

import (
	"bytes"
	"strings"
	"testing"

	"tamanedu_backend/internal/grading"
	"tamanedu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionStats(t *testing.T) {
	grades := []model.Grade{
		{StudentID: 1, QuestionNumber: 1, IsCorrect: true},
		{StudentID: 2, QuestionNumber: 1, IsCorrect: false},
		{StudentID: 1, QuestionNumber: 2, IsCorrect: true},
		{StudentID: 2, QuestionNumber: 2, IsCorrect: true},
	}

	stats := questionStats(grades)
	require.Len(t, stats, 2)

	assert.Equal(t, 1, stats[0].QuestionNumber)
	assert.Equal(t, 2, stats[0].Graded)
	assert.Equal(t, 1, stats[0].Correct)
	assert.InDelta(t, 50.0, stats[0].CorrectRate, 1e-9)

	assert.Equal(t, 2, stats[1].QuestionNumber)
	assert.InDelta(t, 100.0, stats[1].CorrectRate, 1e-9)
}

func TestQuestionStatsEmpty(t *testing.T) {
	assert.Empty(t, questionStats(nil))
}

func TestWriteCSV(t *testing.T) {
	report := &SessionReport{
		SessionID: 7,
		Students: []StudentReport{
			{
				StudentID:  1,
				Name:       "Sari",
				ExternalID: "S-001",
				Summary: grading.StudentSummary{
					TotalEarned:   3,
					TotalPossible: 3,
					Percentage:    100,
					LetterGrade:   "A+",
					Graded:        3,
					Correct:       3,
				},
			},
			{
				StudentID: 2,
				Name:      "Budi",
				Summary: grading.StudentSummary{
					TotalEarned:   1,
					TotalPossible: 3,
					Percentage:    33.33,
					LetterGrade:   "F",
					Graded:        3,
					Correct:       1,
					Flagged:       2,
				},
			},
		},
		Class: grading.ClassSummary{
			Students:     2,
			AveragePct:   66.67,
			TotalFlagged: 2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "student,external_id,earned,possible,percentage,letter,correct,graded,flagged", lines[0])
	assert.Equal(t, "Sari,S-001,3.00,3.00,100.00,A+,3,3,0", lines[1])
	assert.Equal(t, "Budi,,1.00,3.00,33.33,F,1,3,2", lines[2])
	assert.Equal(t, "CLASS (2 students),,,,66.67,,,,2", lines[3])
}
