package model

// Session status values.
const (
	SessionDraft   = "draft"
	SessionScanned = "scanned"
	SessionGraded  = "graded"
)

// GradingSession groups one worksheet's answer key, students, scans and
// grades under the teacher who created it.
// swagger:model GradingSession
type GradingSession struct {
	BaseModel
	TeacherID   uint   `gorm:"index;not null" json:"teacherId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Subject     string `gorm:"size:100" json:"subject"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'draft'" json:"status"`

	Teacher *User `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (GradingSession) TableName() string {
	return "grading_sessions"
}
