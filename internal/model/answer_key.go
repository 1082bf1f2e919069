package model

import "strings"

// AnswerKeyEntry is one row of the uploaded answer key. Accepted variants
// are stored pipe-joined, the same shape the upload uses.
// swagger:model AnswerKeyEntry
type AnswerKeyEntry struct {
	BaseModel
	SessionID      uint    `gorm:"uniqueIndex:idx_key_session_question;not null" json:"sessionId"`
	QuestionNumber int     `gorm:"uniqueIndex:idx_key_session_question;not null" json:"questionNumber"`
	CorrectAnswer  string  `gorm:"size:512;not null" json:"correctAnswer"`
	Variants       string  `gorm:"type:text" json:"variants"`
	Points         float64 `gorm:"default:1" json:"points"`
}

func (AnswerKeyEntry) TableName() string {
	return "answer_key_entries"
}

func (e *AnswerKeyEntry) VariantList() []string {
	if e.Variants == "" {
		return nil
	}
	return strings.Split(e.Variants, "|")
}
