package repository

import (
	"gyanbrix_backend/internal/model"
	"testing"
	"time"
)

func TestListByUserOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		attempt := &model.Attempt{
			UserID:         "user-1",
			QuizID:         "quiz-1",
			QuizTitle:      "t",
			QuizType:       model.QuizChapter,
			TotalQuestions: 5,
			Score:          i * 10,
		}
		if err := repo.Create(attempt); err != nil {
			t.Fatal(err)
		}
		// space the rows out so ordering is deterministic
		db.Model(attempt).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}

	other := &model.Attempt{UserID: "user-2", QuizID: "quiz-1", QuizTitle: "t", QuizType: model.QuizClass}
	if err := repo.Create(other); err != nil {
		t.Fatal(err)
	}

	attempts, total, err := repo.ListByUser("user-1", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(attempts) != 3 {
		t.Fatalf("attempts = %d, want 3", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i].CreatedAt.After(attempts[i-1].CreatedAt) {
			t.Errorf("attempts out of order at %d", i)
		}
	}

	page, total, err := repo.ListByUser("user-1", 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(page) != 2 {
		t.Errorf("page = %d of %d, want 2 of 3", len(page), total)
	}
}

func TestListByUserAndQuizFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	base := time.Now().Add(-time.Hour)
	rows := []struct {
		user string
		quiz string
	}{
		{"user-1", "quiz-1"},
		{"user-1", "quiz-1"},
		{"user-1", "quiz-2"},
		{"user-2", "quiz-1"},
	}
	for i, r := range rows {
		attempt := &model.Attempt{UserID: r.user, QuizID: r.quiz, QuizTitle: "t", QuizType: model.QuizChapter}
		if err := repo.Create(attempt); err != nil {
			t.Fatal(err)
		}
		db.Model(attempt).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}

	attempts, total, err := repo.ListByUserAndQuiz("user-1", "quiz-1", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(attempts) != 2 {
		t.Fatalf("got %d of %d, want 2 of 2", len(attempts), total)
	}
	for _, a := range attempts {
		if a.UserID != "user-1" || a.QuizID != "quiz-1" {
			t.Errorf("row %s/%s leaked into filtered history", a.UserID, a.QuizID)
		}
	}
	if attempts[1].CreatedAt.After(attempts[0].CreatedAt) {
		t.Error("filtered attempts not newest first")
	}

	page, total, err := repo.ListByUserAndQuiz("user-1", "quiz-1", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(page) != 1 {
		t.Errorf("page = %d of %d, want 1 of 2", len(page), total)
	}
}
