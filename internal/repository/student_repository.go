package repository

import (
	"tamanedu_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *StudentRepository) ListBySession(sessionID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("session_id = ?", sessionID).Order("name asc, id asc").Find(&students).Error
	return students, err
}

// Delete removes a student and their extracted data. The delete is scoped
// to sessionID; an id from another session matches nothing and reports
// gorm.ErrRecordNotFound.
func (r *StudentRepository) Delete(sessionID, id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND session_id = ?", id, sessionID).Delete(&model.Student{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		for _, m := range []interface{}{&model.Grade{}, &model.Response{}, &model.Worksheet{}} {
			if err := tx.Where("session_id = ? AND student_id = ?", sessionID, id).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
