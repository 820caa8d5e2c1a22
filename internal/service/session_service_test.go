package service

import (
	"errors"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/util"
	"sync"
	"testing"
)

func startSession(t *testing.T, env *testEnv, questionCount int) (*SessionView, []*model.Question) {
	t.Helper()
	class := env.seedClass(t, "Class 10")
	subject := env.seedSubject(t, class.ID, "Physics")
	chapter := env.seedChapter(t, class.ID, subject.ID, "Motion")

	questions := make([]*model.Question, 0, questionCount)
	ids := make([]string, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 1)
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}

	quiz := env.seedQuiz(t, class.ID, subject.ID, chapter.ID, ids, 30)

	view, err := env.sessionSvc.Start("user-1", quiz.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return view, questions
}

func TestSessionStart(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 3)

	if view.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", view.TotalQuestions)
	}
	if view.RemainingSeconds <= 0 || view.RemainingSeconds > 30*60 {
		t.Errorf("RemainingSeconds = %d, want (0, 1800]", view.RemainingSeconds)
	}
	if view.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", view.CurrentIndex)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("Questions length = %d, want 3", len(view.Questions))
	}
	for i, q := range view.Questions {
		if q.ID != questions[i].ID {
			t.Errorf("question %d id = %s, want %s", i, q.ID, questions[i].ID)
		}
		if len(q.Options) != util.OptionCount {
			t.Errorf("question %d options = %d, want %d", i, len(q.Options), util.OptionCount)
		}
	}
}

func TestSessionStartUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.sessionSvc.Start("user-1", "nope"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSessionAnswerToggle(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 2)
	qid := questions[0].ID

	v, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-1", qid, 2)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got, ok := v.Answers[qid]; !ok || got != 2 {
		t.Errorf("answer = %v (%v), want 2", got, ok)
	}

	// same option again clears the selection
	v, err = env.sessionSvc.SelectAnswer(view.SessionID, "user-1", qid, 2)
	if err != nil {
		t.Fatalf("deselect: %v", err)
	}
	if _, ok := v.Answers[qid]; ok {
		t.Error("answer still present after toggle off")
	}

	// a different option replaces, not toggles
	if _, err = env.sessionSvc.SelectAnswer(view.SessionID, "user-1", qid, 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	v, err = env.sessionSvc.SelectAnswer(view.SessionID, "user-1", qid, 3)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := v.Answers[qid]; got != 3 {
		t.Errorf("answer = %d, want 3", got)
	}
}

func TestSessionAnswerValidation(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 1)

	if _, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-1", questions[0].ID, 4); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("option 4: err = %v, want ErrInvalidOption", err)
	}
	if _, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-1", questions[0].ID, -1); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("option -1: err = %v, want ErrInvalidOption", err)
	}
	if _, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-1", "other-question", 0); !errors.Is(err, util.ErrQuestionNotInQuiz) {
		t.Errorf("foreign question: err = %v, want ErrQuestionNotInQuiz", err)
	}
	if _, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-2", questions[0].ID, 0); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("other user: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionNavigateClamps(t *testing.T) {
	env := newTestEnv(t)
	view, _ := startSession(t, env, 3)

	tests := []struct {
		target int
		want   int
	}{
		{1, 1},
		{-5, 0},
		{99, 2},
		{0, 0},
	}
	for _, tt := range tests {
		v, err := env.sessionSvc.Navigate(view.SessionID, "user-1", tt.target)
		if err != nil {
			t.Fatalf("navigate %d: %v", tt.target, err)
		}
		if v.CurrentIndex != tt.want {
			t.Errorf("navigate %d: index = %d, want %d", tt.target, v.CurrentIndex, tt.want)
		}
	}
}

func TestSessionSubmit(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 4)

	// two correct, one wrong, one skipped
	mustSelect(t, env, view.SessionID, questions[0].ID, 1)
	mustSelect(t, env, view.SessionID, questions[1].ID, 1)
	mustSelect(t, env, view.SessionID, questions[2].ID, 0)

	attempt, err := env.sessionSvc.Submit(view.SessionID, "user-1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if attempt.Correct != 2 || attempt.Wrong != 2 || attempt.Skipped != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/2/1", attempt.Correct, attempt.Wrong, attempt.Skipped)
	}
	if attempt.Score != 50 {
		t.Errorf("Score = %d, want 50", attempt.Score)
	}
	if attempt.TimedOut {
		t.Error("TimedOut = true for a manual submit")
	}

	// persisted exactly once
	var count int64
	env.db.Model(&model.Attempt{}).Count(&count)
	if count != 1 {
		t.Errorf("attempt rows = %d, want 1", count)
	}

	// the session is gone
	if _, err := env.sessionSvc.Get(view.SessionID, "user-1"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("Get after submit: err = %v, want ErrSessionNotFound", err)
	}
	if _, err := env.sessionSvc.Submit(view.SessionID, "user-1"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("second submit: err = %v, want ErrSessionNotFound", err)
	}
}

func mustSelect(t *testing.T, env *testEnv, sessionID, questionID string, option int) {
	t.Helper()
	if _, err := env.sessionSvc.SelectAnswer(sessionID, "user-1", questionID, option); err != nil {
		t.Fatalf("select %s: %v", questionID, err)
	}
}

// A manual submit racing the deadline expiry must record exactly one attempt.
func TestSessionSubmitExpiryRace(t *testing.T) {
	env := newTestEnv(t)
	view, _ := startSession(t, env, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		env.sessionSvc.Submit(view.SessionID, "user-1")
	}()
	go func() {
		defer wg.Done()
		env.sessionSvc.expire(view.SessionID)
	}()
	wg.Wait()

	var count int64
	env.db.Model(&model.Attempt{}).Count(&count)
	if count != 1 {
		t.Errorf("attempt rows = %d, want exactly 1", count)
	}
}

func TestSessionExpiryAutoSubmits(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 2)

	mustSelect(t, env, view.SessionID, questions[0].ID, 1)

	env.sessionSvc.expire(view.SessionID)

	var attempts []model.Attempt
	env.db.Find(&attempts)
	if len(attempts) != 1 {
		t.Fatalf("attempt rows = %d, want 1", len(attempts))
	}
	a := attempts[0]
	if !a.TimedOut {
		t.Error("TimedOut = false for an expired session")
	}
	if a.Correct != 1 || a.Wrong != 1 || a.Skipped != 1 {
		t.Errorf("counters = %d/%d/%d, want 1/1/1", a.Correct, a.Wrong, a.Skipped)
	}

	// expiring again is a no-op
	env.sessionSvc.expire(view.SessionID)
	var count int64
	env.db.Model(&model.Attempt{}).Count(&count)
	if count != 1 {
		t.Errorf("attempt rows after double expire = %d, want 1", count)
	}
}

func TestSessionAbandon(t *testing.T) {
	env := newTestEnv(t)
	view, _ := startSession(t, env, 2)

	if err := env.sessionSvc.Abandon(view.SessionID, "user-1"); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	var count int64
	env.db.Model(&model.Attempt{}).Count(&count)
	if count != 0 {
		t.Errorf("attempt rows = %d, want 0 after abandon", count)
	}

	if _, err := env.sessionSvc.Get(view.SessionID, "user-1"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("Get after abandon: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionDeadlineFixedAtStart(t *testing.T) {
	env := newTestEnv(t)
	view, questions := startSession(t, env, 1)

	before := view.RemainingSeconds
	v, err := env.sessionSvc.SelectAnswer(view.SessionID, "user-1", questions[0].ID, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if v.RemainingSeconds > before {
		t.Errorf("RemainingSeconds grew from %d to %d", before, v.RemainingSeconds)
	}
}
