package model

// Grade is derived from a Response and its AnswerKeyEntry. The full set for
// one student is replaced atomically on every grading run.
// swagger:model Grade
type Grade struct {
	BaseModel
	SessionID      uint    `gorm:"uniqueIndex:idx_grade_session_student_question;not null" json:"sessionId"`
	StudentID      uint    `gorm:"uniqueIndex:idx_grade_session_student_question;not null" json:"studentId"`
	QuestionNumber int     `gorm:"uniqueIndex:idx_grade_session_student_question;not null" json:"questionNumber"`
	IsCorrect      bool    `json:"isCorrect"`
	PointsEarned   float64 `json:"pointsEarned"`
	PointsPossible float64 `json:"pointsPossible"`
}

func (Grade) TableName() string {
	return "grades"
}
