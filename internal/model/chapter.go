package model

type ChapterType string

const (
	ChapterText ChapterType = "text"
	ChapterPDF  ChapterType = "pdf"
)

// Chapter carries either rich-text content or a reference to an uploaded PDF,
// depending on ChapterType. Both parent ids are kept so the full hierarchy path
// can be rebuilt from the record alone.
// swagger:model Chapter
type Chapter struct {
	UUIDBase
	ClassID     string      `gorm:"size:36;not null;index" json:"classId"`
	SubjectID   string      `gorm:"size:36;not null;index" json:"subjectId"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	ChapterType ChapterType `gorm:"size:10;default:'text'" json:"chapterType"`
	Content     string      `gorm:"type:longtext" json:"content"`
	PDFURL      string      `gorm:"size:500" json:"pdfUrl,omitempty"`
	CreatedBy   string      `gorm:"size:36;index" json:"createdBy"`
}

func (Chapter) TableName() string {
	return "chapters"
}
