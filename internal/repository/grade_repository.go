package repository

import (
	"tamanedu_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// ReplaceForStudent swaps one student's whole grade set in a single
// transaction: delete the prior set, insert the new one, commit or roll
// back as one unit. A crash mid-replace never leaves a partial grade set.
func (r *GradeRepository) ReplaceForStudent(sessionID, studentID uint, grades []model.Grade) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("session_id = ? AND student_id = ?", sessionID, studentID).
			Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if len(grades) == 0 {
			return nil
		}
		return tx.Create(&grades).Error
	})
}

// UpsertOne replaces the grade for a single question, used by the manual
// edit path. The response update and the grade update travel in the same
// transaction.
func (r *GradeRepository) UpsertOne(tx *gorm.DB, grade *model.Grade) error {
	var existing model.Grade
	err := tx.Where("session_id = ? AND student_id = ? AND question_number = ?",
		grade.SessionID, grade.StudentID, grade.QuestionNumber).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(grade).Error
	}
	if err != nil {
		return err
	}

	existing.IsCorrect = grade.IsCorrect
	existing.PointsEarned = grade.PointsEarned
	existing.PointsPossible = grade.PointsPossible
	return tx.Save(&existing).Error
}

func (r *GradeRepository) ListByStudent(sessionID, studentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Order("question_number asc").
		Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) ListBySession(sessionID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Where("session_id = ?", sessionID).
		Order("student_id asc, question_number asc").
		Find(&grades).Error
	return grades, err
}
