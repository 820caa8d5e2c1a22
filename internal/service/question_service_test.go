package service

import (
	"errors"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/util"
	"strings"
	"testing"
)

func validInput() QuestionInput {
	return QuestionInput{
		Text:         "pick B",
		Options:      []string{"A", "B", "C", "D"},
		CorrectIndex: 1,
	}
}

func TestBulkUploadRejectsBadRowBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")

	bad := validInput()
	bad.CorrectIndex = 4

	req := &BulkQuestionRequest{Questions: []QuestionInput{validInput(), validInput(), bad}}

	_, err := env.questionSvc.CreateBatch(class.ID, subject.ID, chapter.ID, req, "")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "question 2") {
		t.Errorf("error %q does not name the offending row", err)
	}

	// nothing written
	var count int64
	env.db.Model(&model.Question{}).Count(&count)
	if count != 0 {
		t.Errorf("question rows = %d, want 0", count)
	}
}

func TestBulkUploadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuestionInput)
	}{
		{"empty text", func(q *QuestionInput) { q.Text = "" }},
		{"too few options", func(q *QuestionInput) { q.Options = []string{"A", "B", "C"} }},
		{"too many options", func(q *QuestionInput) { q.Options = []string{"A", "B", "C", "D", "E"} }},
		{"empty option", func(q *QuestionInput) { q.Options[2] = "" }},
		{"negative index", func(q *QuestionInput) { q.CorrectIndex = -1 }},
		{"index out of range", func(q *QuestionInput) { q.CorrectIndex = 4 }},
		{"negative marks", func(q *QuestionInput) { q.Marks = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			class := env.seedClass(t, "c")
			subject := env.seedSubject(t, class.ID, "s")
			chapter := env.seedChapter(t, class.ID, subject.ID, "ch")

			in := validInput()
			tt.mutate(&in)
			req := &BulkQuestionRequest{Questions: []QuestionInput{in}}

			if _, err := env.questionSvc.CreateBatch(class.ID, subject.ID, chapter.ID, req, ""); err == nil {
				t.Error("expected validation error")
			}

			var count int64
			env.db.Model(&model.Question{}).Count(&count)
			if count != 0 {
				t.Errorf("question rows = %d, want 0", count)
			}
		})
	}
}

func TestBulkUploadStoresDefaults(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "c")
	subject := env.seedSubject(t, class.ID, "s")
	chapter := env.seedChapter(t, class.ID, subject.ID, "ch")

	req := &BulkQuestionRequest{Questions: []QuestionInput{validInput()}}
	created, err := env.questionSvc.CreateBatch(class.ID, subject.ID, chapter.ID, req, "admin-1")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created = %d, want 1", len(created))
	}

	q := created[0]
	if q.Difficulty != model.DifficultyEasy {
		t.Errorf("Difficulty = %s, want easy default", q.Difficulty)
	}
	if q.Marks != 1 {
		t.Errorf("Marks = %d, want 1 default", q.Marks)
	}
	if got := q.OptionList(); len(got) != util.OptionCount {
		t.Errorf("options = %v, want 4 entries", got)
	}
}

func TestBulkUploadWrongChapterPath(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "c")
	other := env.seedClass(t, "other")
	subject := env.seedSubject(t, class.ID, "s")
	chapter := env.seedChapter(t, class.ID, subject.ID, "ch")

	req := &BulkQuestionRequest{Questions: []QuestionInput{validInput()}}
	_, err := env.questionSvc.CreateBatch(other.ID, subject.ID, chapter.ID, req, "")
	if !errors.Is(err, util.ErrScopeMismatch) {
		t.Errorf("err = %v, want ErrScopeMismatch", err)
	}
}

func TestListByChapterUnknownPathIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	questions, err := env.questionSvc.ListByChapter("no-class", "no-subject", "no-chapter")
	if err != nil {
		t.Fatalf("ListByChapter: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("questions = %d, want 0", len(questions))
	}
}
