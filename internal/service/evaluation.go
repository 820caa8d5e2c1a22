package service

import (
	"gyanbrix_backend/internal/model"
)

// EvaluationResult is the outcome of grading one answer sheet.
// Invariants: Correct + Wrong == Total, Skipped <= Wrong (a skipped question
// counts as wrong in the aggregate), 0 <= Score <= 100.
type EvaluationResult struct {
	Total   int                   `json:"total"`
	Correct int                   `json:"correct"`
	Wrong   int                   `json:"wrong"`
	Skipped int                   `json:"skipped"`
	Score   int                   `json:"score"`
	Detail  []model.AttemptDetail `json:"detail"`
}

// Evaluate grades answers against questions. It is a pure function of its
// inputs: no clock, no storage, no session state. answers maps question id to
// selected option index; a missing key or a -1 value is an unanswered
// question, which scores as wrong but is reported as skipped in the detail.
// Score is the percentage of correct answers rounded half up.
func Evaluate(questions []model.Question, answers map[string]int) EvaluationResult {
	result := EvaluationResult{
		Total:  len(questions),
		Detail: make([]model.AttemptDetail, 0, len(questions)),
	}

	for i := range questions {
		q := &questions[i]
		selected, ok := answers[q.ID]
		if !ok {
			selected = -1
		}

		detail := model.AttemptDetail{
			QuestionID:     q.ID,
			Question:       q.Text,
			SelectedOption: selected,
			CorrectOption:  q.CorrectIndex,
		}

		switch {
		case selected == q.CorrectIndex:
			detail.IsCorrect = true
			detail.Status = model.AnswerCorrect
			result.Correct++
		case selected < 0:
			detail.Status = model.AnswerSkipped
			result.Wrong++
			result.Skipped++
		default:
			detail.Status = model.AnswerWrong
			result.Wrong++
		}

		result.Detail = append(result.Detail, detail)
	}

	if result.Total > 0 {
		// integer round-half-up of correct/total*100
		result.Score = (result.Correct*100*2 + result.Total) / (result.Total * 2)
	}

	return result
}
