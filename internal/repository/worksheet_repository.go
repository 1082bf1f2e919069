package repository

import (
	"tamanedu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type WorksheetRepository struct {
	DB *gorm.DB
}

func NewWorksheetRepository(db *gorm.DB) *WorksheetRepository {
	return &WorksheetRepository{DB: db}
}

func (r *WorksheetRepository) Create(ws *model.Worksheet) error {
	return r.DB.Create(ws).Error
}

func (r *WorksheetRepository) FindByID(id uint) (*model.Worksheet, error) {
	var ws model.Worksheet
	err := r.DB.First(&ws, id).Error
	return &ws, err
}

func (r *WorksheetRepository) ListBySession(sessionID uint) ([]model.Worksheet, error) {
	var sheets []model.Worksheet
	err := r.DB.Where("session_id = ?", sessionID).
		Order("student_id asc, page_number asc").
		Find(&sheets).Error
	return sheets, err
}

func (r *WorksheetRepository) ListPendingBySession(sessionID uint) ([]model.Worksheet, error) {
	var sheets []model.Worksheet
	err := r.DB.Where("session_id = ? AND status = ?", sessionID, model.WorksheetPending).
		Order("student_id asc, page_number asc").
		Find(&sheets).Error
	return sheets, err
}

func (r *WorksheetRepository) MarkProcessed(id uint) error {
	now := time.Now()
	return r.DB.Model(&model.Worksheet{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        model.WorksheetProcessed,
		"error_message": "",
		"processed_at":  &now,
	}).Error
}

func (r *WorksheetRepository) MarkFailed(id uint, message string) error {
	return r.DB.Model(&model.Worksheet{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        model.WorksheetFailed,
		"error_message": message,
	}).Error
}

func (r *WorksheetRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Worksheet{}, id).Error
}
