package model

// Class is the root of the content hierarchy: Class -> Subject -> Chapter -> Question.
// swagger:model Class
type Class struct {
	UUIDBase
	Name      string `gorm:"size:150;not null" json:"name"`
	CreatedBy string `gorm:"size:36;index" json:"createdBy"`
}

func (Class) TableName() string {
	return "classes"
}
