package model

import "encoding/json"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question lives under a specific chapter; the full path (class, subject,
// chapter) is stored on the row. Options is a JSON array of exactly four
// strings and CorrectIndex points into it. The canonical representation is
// index-based; any letter-labelled view (A-D) is a display concern.
// swagger:model Question
type Question struct {
	UUIDBase
	ClassID      string          `gorm:"size:36;not null;index" json:"classId"`
	SubjectID    string          `gorm:"size:36;not null;index" json:"subjectId"`
	ChapterID    string          `gorm:"size:36;not null;index" json:"chapterId"`
	Text         string          `gorm:"type:text;not null" json:"question"`
	Options      json.RawMessage `gorm:"type:json;not null" json:"options"`
	CorrectIndex int             `gorm:"not null" json:"correctIndex"`
	Explanation  string          `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty   Difficulty      `gorm:"size:10;default:'easy'" json:"difficulty"`
	Marks        int             `gorm:"default:1" json:"marks"`
	Usage        json.RawMessage `gorm:"type:json" json:"usage,omitempty"`
	CreatedBy    string          `gorm:"size:36;index" json:"createdBy"`
}

func (Question) TableName() string {
	return "questions"
}

// UsageEntry records, informationally, which quiz references this question.
// It is bookkeeping for the authoring UI, not referential enforcement.
type UsageEntry struct {
	QuizID     string `json:"quizId"`
	QuizTitle  string `json:"quizTitle"`
	LevelLabel string `json:"levelLabel"` // "class", "subject" or "chapter"
}

// OptionList decodes the stored options array. A malformed column yields nil.
func (q *Question) OptionList() []string {
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}
