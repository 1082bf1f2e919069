package repository

import (
	"tamanedu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// UpsertBatch writes extracted answers keyed by
// (session, student, question); reprocessing a worksheet overwrites the
// previous extraction instead of duplicating rows.
func (r *ResponseRepository) UpsertBatch(responses []model.Response) error {
	if len(responses) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "session_id"}, {Name: "student_id"}, {Name: "question_number"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"raw_answer", "normalized_answer", "confidence", "is_flagged",
			"page_number", "manually_edited", "updated_at",
		}),
	}).Create(&responses).Error
}

func (r *ResponseRepository) FindByID(id uint) (*model.Response, error) {
	var resp model.Response
	err := r.DB.First(&resp, id).Error
	return &resp, err
}

func (r *ResponseRepository) ListByStudent(sessionID, studentID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Order("question_number asc").
		Find(&responses).Error
	return responses, err
}

func (r *ResponseRepository) ListFlaggedBySession(sessionID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Where("session_id = ? AND is_flagged = ?", sessionID, true).
		Order("student_id asc, question_number asc").
		Find(&responses).Error
	return responses, err
}

func (r *ResponseRepository) Update(resp *model.Response) error {
	return r.DB.Save(resp).Error
}

func (r *ResponseRepository) CountFlaggedByStudent(sessionID, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).
		Where("session_id = ? AND student_id = ? AND is_flagged = ?", sessionID, studentID, true).
		Count(&count).Error
	return count, err
}
