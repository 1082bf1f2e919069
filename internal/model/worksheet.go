package model

import "time"

// Worksheet processing states.
const (
	WorksheetPending   = "pending"
	WorksheetProcessed = "processed"
	WorksheetFailed    = "failed"
)

// Worksheet is one uploaded scan page for one student.
// swagger:model Worksheet
type Worksheet struct {
	BaseModel
	SessionID    uint       `gorm:"index;not null" json:"sessionId"`
	StudentID    uint       `gorm:"index;not null" json:"studentId"`
	PageNumber   int        `gorm:"default:1" json:"pageNumber"`
	FileName     string     `gorm:"size:255;not null" json:"fileName"`
	FileURL      string     `gorm:"size:512" json:"fileUrl"`
	LocalPath    string     `gorm:"size:512" json:"-"`
	Status       string     `gorm:"size:20;default:'pending'" json:"status"`
	ErrorMessage string     `gorm:"type:text" json:"errorMessage,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Worksheet) TableName() string {
	return "worksheets"
}
