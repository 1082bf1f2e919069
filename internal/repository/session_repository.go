package repository

import (
	"tamanedu_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.GradingSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.GradingSession, error) {
	var s model.GradingSession
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SessionRepository) ListByTeacher(teacherID uint, page, limit int) ([]model.GradingSession, int64, error) {
	var sessions []model.GradingSession
	var total int64

	query := r.DB.Model(&model.GradingSession{}).Where("teacher_id = ?", teacherID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}

func (r *SessionRepository) Update(session *model.GradingSession) error {
	return r.DB.Save(session).Error
}

func (r *SessionRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&model.GradingSession{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a session and everything hanging off it in one
// transaction.
func (r *SessionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Grade{}, &model.Response{}, &model.Worksheet{},
			&model.AnswerKeyEntry{}, &model.Student{},
		} {
			if err := tx.Where("session_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.GradingSession{}, id).Error
	})
}
