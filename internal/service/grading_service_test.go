package service

import (
	"context"
	"testing"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGradingService(t *testing.T) (*GradingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewGradingService(
		db,
		repository.NewGradeRepository(db),
		repository.NewResponseRepository(db),
		repository.NewAnswerKeyRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSessionRepository(db),
		newTestCache(),
		&config.Config{},
	), db
}

func TestEditResponseRejectsForeignSessionBeforeWriting(t *testing.T) {
	svc, db := newGradingService(t)

	resp := model.Response{
		SessionID:        2,
		StudentID:        9,
		QuestionNumber:   1,
		RawAnswer:        "B",
		NormalizedAnswer: "b",
		IsFlagged:        true,
	}
	require.NoError(t, db.Create(&resp).Error)

	_, err := svc.EditResponse(context.Background(), 1, resp.ID, "C")
	assert.ErrorIs(t, err, util.ErrResponseNotFound)

	// The stored row must be untouched.
	var stored model.Response
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.Equal(t, "B", stored.RawAnswer)
	assert.True(t, stored.IsFlagged)
	assert.False(t, stored.ManuallyEdited)

	var grades int64
	require.NoError(t, db.Model(&model.Grade{}).Count(&grades).Error)
	assert.Zero(t, grades)
}

func TestEditResponseUpdatesResponseAndGrade(t *testing.T) {
	svc, db := newGradingService(t)

	resp := model.Response{
		SessionID:        2,
		StudentID:        9,
		QuestionNumber:   1,
		RawAnswer:        "8",
		NormalizedAnswer: "8",
		Confidence:       0.41,
		IsFlagged:        true,
	}
	require.NoError(t, db.Create(&resp).Error)
	require.NoError(t, db.Create(&model.AnswerKeyEntry{
		SessionID:      2,
		QuestionNumber: 1,
		CorrectAnswer:  "Paris",
		Points:         2,
	}).Error)

	edited, err := svc.EditResponse(context.Background(), 2, resp.ID, "Paris!")
	require.NoError(t, err)

	assert.Equal(t, "Paris!", edited.RawAnswer)
	assert.Equal(t, "paris", edited.NormalizedAnswer)
	assert.True(t, edited.ManuallyEdited)
	assert.False(t, edited.IsFlagged)

	var grade model.Grade
	require.NoError(t, db.Where("session_id = ? AND student_id = ? AND question_number = ?", 2, 9, 1).
		First(&grade).Error)
	assert.True(t, grade.IsCorrect)
	assert.InDelta(t, 2.0, grade.PointsEarned, 1e-9)
	assert.InDelta(t, 2.0, grade.PointsPossible, 1e-9)
}

func TestEditResponseUnknownID(t *testing.T) {
	svc, _ := newGradingService(t)

	_, err := svc.EditResponse(context.Background(), 1, 12345, "x")
	assert.ErrorIs(t, err, util.ErrResponseNotFound)
}

func TestGradeSessionRequiresKeyAndStudents(t *testing.T) {
	svc, db := newGradingService(t)

	_, err := svc.GradeSession(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrNoAnswerKey)

	require.NoError(t, db.Create(&model.AnswerKeyEntry{
		SessionID: 1, QuestionNumber: 1, CorrectAnswer: "A", Points: 1,
	}).Error)

	_, err = svc.GradeSession(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrNothingToGrade)
}

func TestGradeSessionReplacesGradesPerStudent(t *testing.T) {
	svc, db := newGradingService(t)

	require.NoError(t, db.Create(&model.GradingSession{TeacherID: 1, Name: "quiz"}).Error)
	student := model.Student{SessionID: 1, Name: "Sari"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&model.AnswerKeyEntry{
		SessionID: 1, QuestionNumber: 1, CorrectAnswer: "A", Points: 1,
	}).Error)
	require.NoError(t, db.Create(&model.Response{
		SessionID: 1, StudentID: student.ID, QuestionNumber: 1,
		RawAnswer: "A", NormalizedAnswer: "a", Confidence: 0.9,
	}).Error)

	result, err := svc.GradeSession(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StudentsGraded)
	assert.Equal(t, 1, result.GradesWritten)

	// A second run replaces rather than duplicates.
	result, err = svc.GradeSession(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.GradesWritten)

	var count int64
	require.NoError(t, db.Model(&model.Grade{}).
		Where("session_id = ? AND student_id = ?", 1, student.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
