package repository

import (
	"tamanedu_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerKeyRepository struct {
	DB *gorm.DB
}

func NewAnswerKeyRepository(db *gorm.DB) *AnswerKeyRepository {
	return &AnswerKeyRepository{DB: db}
}

// ReplaceForSession swaps the whole answer key for a session in one
// transaction. A re-upload never leaves a mix of old and new rows.
func (r *AnswerKeyRepository) ReplaceForSession(sessionID uint, entries []model.AnswerKeyEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("session_id = ?", sessionID).Delete(&model.AnswerKeyEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *AnswerKeyRepository) ListBySession(sessionID uint) ([]model.AnswerKeyEntry, error) {
	var entries []model.AnswerKeyEntry
	err := r.DB.Where("session_id = ?", sessionID).
		Order("question_number asc").
		Find(&entries).Error
	return entries, err
}

func (r *AnswerKeyRepository) FindBySessionAndQuestion(sessionID uint, questionNumber int) (*model.AnswerKeyEntry, error) {
	var entry model.AnswerKeyEntry
	err := r.DB.Where("session_id = ? AND question_number = ?", sessionID, questionNumber).
		First(&entry).Error
	return &entry, err
}
