package model

// Response is one extracted (or hand-corrected) student answer.
// NormalizedAnswer is always derived from RawAnswer, never authored.
// swagger:model Response
type Response struct {
	BaseModel
	SessionID        uint    `gorm:"uniqueIndex:idx_resp_session_student_question;not null" json:"sessionId"`
	StudentID        uint    `gorm:"uniqueIndex:idx_resp_session_student_question;not null" json:"studentId"`
	QuestionNumber   int     `gorm:"uniqueIndex:idx_resp_session_student_question;not null" json:"questionNumber"`
	RawAnswer        string  `gorm:"size:512" json:"rawAnswer"`
	NormalizedAnswer string  `gorm:"size:512" json:"normalizedAnswer"`
	Confidence       float64 `json:"confidence"`
	IsFlagged        bool    `gorm:"default:false;index" json:"isFlagged"`
	PageNumber       int     `gorm:"default:1" json:"pageNumber"`
	ManuallyEdited   bool    `gorm:"default:false" json:"manuallyEdited"`
}

func (Response) TableName() string {
	return "responses"
}
