package model

import "encoding/json"

// AnswerStatus classifies a single question inside a completed attempt.
type AnswerStatus string

const (
	AnswerCorrect AnswerStatus = "correct"
	AnswerWrong   AnswerStatus = "wrong"
	AnswerSkipped AnswerStatus = "skipped"
)

// AttemptDetail is the per-question snapshot stored inside an attempt.
// SelectedOption is -1 when the question was left unanswered.
type AttemptDetail struct {
	QuestionID     string       `json:"questionId"`
	Question       string       `json:"question"`
	SelectedOption int          `json:"selectedOption"`
	CorrectOption  int          `json:"correctOption"`
	IsCorrect      bool         `json:"isCorrect"`
	Status         AnswerStatus `json:"status"`
}

// Attempt is the immutable record of one completed quiz session. Quiz title,
// type and scope ids are denormalized at save time so the record stays
// readable after the quiz or its questions are edited or deleted.
// swagger:model Attempt
type Attempt struct {
	UUIDBase
	UserID         string          `gorm:"size:36;not null;index" json:"userId"`
	QuizID         string          `gorm:"size:36;not null;index" json:"quizId"`
	QuizTitle      string          `gorm:"size:200;not null" json:"quizTitle"`
	QuizType       QuizType        `gorm:"size:10;not null" json:"quizType"`
	ClassID        string          `gorm:"size:36" json:"classId"`
	SubjectID      string          `gorm:"size:36" json:"subjectId,omitempty"`
	ChapterID      string          `gorm:"size:36" json:"chapterId,omitempty"`
	TotalQuestions int             `json:"totalQuestions"`
	Correct        int             `json:"correct"`
	Wrong          int             `json:"wrong"`
	Skipped        int             `json:"skipped"`
	Score          int             `json:"score"`
	TimedOut       bool            `json:"timedOut"`
	Detail         json.RawMessage `gorm:"type:json" json:"detailed"`
}

func (Attempt) TableName() string {
	return "attempts"
}
