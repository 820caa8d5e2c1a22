package model

// swagger:model Subject
type Subject struct {
	UUIDBase
	ClassID   string `gorm:"size:36;not null;index" json:"classId"`
	Name      string `gorm:"size:150;not null" json:"name"`
	CreatedBy string `gorm:"size:36;index" json:"createdBy"`
}

func (Subject) TableName() string {
	return "subjects"
}
