package model

import "encoding/json"

type QuizType string

const (
	QuizClass   QuizType = "class"
	QuizSubject QuizType = "subject"
	QuizChapter QuizType = "chapter"
)

// QuestionRef is a lightweight pointer stored inside a quiz. Question content
// is never embedded; refs are resolved when an attempt session starts.
type QuestionRef struct {
	QuestionID string `json:"questionId"`
	ClassID    string `json:"classId"`
	SubjectID  string `json:"subjectId"`
	ChapterID  string `json:"chapterId"`
}

// Quiz is attached at one of three hierarchy levels. Type decides which parent
// ids are required: class quizzes need ClassID only, subject quizzes add
// SubjectID, chapter quizzes add ChapterID as well.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Type            QuizType        `gorm:"size:10;not null;index" json:"type"`
	ClassID         string          `gorm:"size:36;not null;index" json:"classId"`
	SubjectID       string          `gorm:"size:36;index" json:"subjectId,omitempty"`
	ChapterID       string          `gorm:"size:36;index" json:"chapterId,omitempty"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int             `gorm:"not null" json:"durationMinutes"`
	Questions       json.RawMessage `gorm:"type:json;not null" json:"questions"`
	TotalQuestions  int             `gorm:"not null" json:"totalQuestions"`
	CreatedBy       string          `gorm:"size:36;index" json:"createdBy"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionRefs decodes the stored ref array, preserving selection order.
func (q *Quiz) QuestionRefs() []QuestionRef {
	var refs []QuestionRef
	if err := json.Unmarshal(q.Questions, &refs); err != nil {
		return nil
	}
	return refs
}
