package model

// swagger:model Student
type Student struct {
	BaseModel
	SessionID  uint   `gorm:"index;not null" json:"sessionId"`
	Name       string `gorm:"size:100;not null" json:"name"`
	ExternalID string `gorm:"size:100" json:"externalId"` // roster / student number
}

func (Student) TableName() string {
	return "students"
}
