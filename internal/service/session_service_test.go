package service

import (
	"testing"

	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionService(t *testing.T) (*SessionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewStudentRepository(db),
	), db
}

func TestGetOwned(t *testing.T) {
	svc, db := newSessionService(t)

	require.NoError(t, db.Create(&model.GradingSession{TeacherID: 1, Name: "quiz"}).Error)

	_, err := svc.GetOwned(1, 1, model.Teacher)
	assert.NoError(t, err)

	_, err = svc.GetOwned(1, 2, model.Teacher)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Admins bypass ownership.
	_, err = svc.GetOwned(1, 2, model.Admin)
	assert.NoError(t, err)

	_, err = svc.GetOwned(99, 1, model.Teacher)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestRemoveStudentScopedToSession(t *testing.T) {
	svc, db := newSessionService(t)

	mine := model.Student{SessionID: 1, Name: "Sari"}
	other := model.Student{SessionID: 2, Name: "Budi"}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&other).Error)

	// A student id from another session must not be deletable through this
	// session.
	err := svc.RemoveStudent(1, other.ID)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Student{}).Where("id = ?", other.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.RemoveStudent(1, mine.ID))
	require.NoError(t, db.Model(&model.Student{}).Where("id = ?", mine.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRemoveStudentDeletesExtractedData(t *testing.T) {
	svc, db := newSessionService(t)

	student := model.Student{SessionID: 1, Name: "Sari"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&model.Response{
		SessionID: 1, StudentID: student.ID, QuestionNumber: 1, RawAnswer: "A",
	}).Error)
	require.NoError(t, db.Create(&model.Grade{
		SessionID: 1, StudentID: student.ID, QuestionNumber: 1, IsCorrect: true,
	}).Error)

	require.NoError(t, svc.RemoveStudent(1, student.ID))

	var responses, grades int64
	require.NoError(t, db.Model(&model.Response{}).Where("student_id = ?", student.ID).Count(&responses).Error)
	require.NoError(t, db.Model(&model.Grade{}).Where("student_id = ?", student.ID).Count(&grades).Error)
	assert.Zero(t, responses)
	assert.Zero(t, grades)
}
