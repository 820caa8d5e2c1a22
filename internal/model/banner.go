package model

// swagger:model Banner
type Banner struct {
	UUIDBase
	Title     string `gorm:"size:200" json:"title"`
	ImageURL  string `gorm:"size:500;not null" json:"imageUrl"`
	CreatedBy string `gorm:"size:36;index" json:"createdBy"`
}

func (Banner) TableName() string {
	return "banners"
}
