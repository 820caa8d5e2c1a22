package service

import (
	"encoding/json"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/util"
)

// AttemptService reads the immutable attempt history. Writes happen only
// through session finalization.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
}

func NewAttemptService(attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{attemptRepo: attemptRepo}
}

// AttemptSummary is the list-view projection: counters without the
// per-question detail payload.
type AttemptSummary struct {
	ID             string         `json:"id"`
	QuizID         string         `json:"quizId"`
	QuizTitle      string         `json:"quizTitle"`
	QuizType       model.QuizType `json:"quizType"`
	TotalQuestions int            `json:"totalQuestions"`
	Correct        int            `json:"correct"`
	Wrong          int            `json:"wrong"`
	Skipped        int            `json:"skipped"`
	Score          int            `json:"score"`
	TimedOut       bool           `json:"timedOut"`
	AttemptedAt    string         `json:"attemptedAt"`
}

type AttemptHistory struct {
	Attempts []AttemptSummary `json:"attempts"`
	Total    int64            `json:"total"`
}

// History lists the user's attempts, optionally narrowed to one quiz.
func (s *AttemptService) History(userID, quizID string, limit, offset int) (*AttemptHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		attempts []model.Attempt
		total    int64
		err      error
	)
	if quizID != "" {
		attempts, total, err = s.attemptRepo.ListByUserAndQuiz(userID, quizID, limit, offset)
	} else {
		attempts, total, err = s.attemptRepo.ListByUser(userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		summaries = append(summaries, AttemptSummary{
			ID:             a.ID,
			QuizID:         a.QuizID,
			QuizTitle:      a.QuizTitle,
			QuizType:       a.QuizType,
			TotalQuestions: a.TotalQuestions,
			Correct:        a.Correct,
			Wrong:          a.Wrong,
			Skipped:        a.Skipped,
			Score:          a.Score,
			TimedOut:       a.TimedOut,
			AttemptedAt:    a.CreatedAt.Format(util.TimeFormat),
		})
	}

	return &AttemptHistory{Attempts: summaries, Total: total}, nil
}

// AttemptDetailView is one stored attempt with its per-question review rows
// decoded.
type AttemptDetailView struct {
	Attempt *model.Attempt        `json:"attempt"`
	Detail  []model.AttemptDetail `json:"detail"`
}

func (s *AttemptService) Detail(userID, attemptID string) (*AttemptDetailView, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	var detail []model.AttemptDetail
	if len(attempt.Detail) > 0 {
		if err := json.Unmarshal(attempt.Detail, &detail); err != nil {
			return nil, err
		}
	}

	return &AttemptDetailView{Attempt: attempt, Detail: detail}, nil
}
