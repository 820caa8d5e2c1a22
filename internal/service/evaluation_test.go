package service

import (
	"encoding/json"
	"gyanbrix_backend/internal/model"
	"testing"
)

func makeQuestions(t *testing.T, n int, correctIndex int) []model.Question {
	t.Helper()
	opts, err := json.Marshal([]string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatal(err)
	}

	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			Text:         "q",
			Options:      opts,
			CorrectIndex: correctIndex,
		}
		q.ID = model.GenerateUUID()
		questions = append(questions, q)
	}
	return questions
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		answered    int // first N questions answered correctly
		wrong       int // next N questions answered incorrectly
		wantCorrect int
		wantWrong   int
		wantSkipped int
		wantScore   int
	}{
		{
			name:  "all correct",
			total: 10, answered: 10,
			wantCorrect: 10, wantWrong: 0, wantSkipped: 0, wantScore: 100,
		},
		{
			name:  "all skipped",
			total: 10,
			wantCorrect: 0, wantWrong: 10, wantSkipped: 10, wantScore: 0,
		},
		{
			name:  "mixed",
			total: 10, answered: 6, wrong: 2,
			wantCorrect: 6, wantWrong: 4, wantSkipped: 2, wantScore: 60,
		},
		{
			name:  "rounds half up",
			total: 8, answered: 3,
			wantCorrect: 3, wantWrong: 5, wantSkipped: 5, wantScore: 38, // 37.5 -> 38
		},
		{
			name:  "rounds down below half",
			total: 3, answered: 1,
			wantCorrect: 1, wantWrong: 2, wantSkipped: 2, wantScore: 33, // 33.33 -> 33
		},
		{
			name:  "rounds up above half",
			total: 3, answered: 2,
			wantCorrect: 2, wantWrong: 1, wantSkipped: 1, wantScore: 67, // 66.67 -> 67
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := makeQuestions(t, tt.total, 1)
			answers := make(map[string]int)
			for i := 0; i < tt.answered; i++ {
				answers[questions[i].ID] = 1
			}
			for i := tt.answered; i < tt.answered+tt.wrong; i++ {
				answers[questions[i].ID] = 2
			}

			result := Evaluate(questions, answers)

			if result.Total != tt.total {
				t.Errorf("Total = %d, want %d", result.Total, tt.total)
			}
			if result.Correct != tt.wantCorrect {
				t.Errorf("Correct = %d, want %d", result.Correct, tt.wantCorrect)
			}
			if result.Wrong != tt.wantWrong {
				t.Errorf("Wrong = %d, want %d", result.Wrong, tt.wantWrong)
			}
			if result.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", result.Skipped, tt.wantSkipped)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", result.Score, tt.wantScore)
			}

			if result.Correct+result.Wrong != result.Total {
				t.Errorf("Correct+Wrong = %d, want Total %d", result.Correct+result.Wrong, result.Total)
			}
			if result.Skipped > result.Wrong {
				t.Errorf("Skipped %d exceeds Wrong %d", result.Skipped, result.Wrong)
			}
			if result.Score < 0 || result.Score > 100 {
				t.Errorf("Score %d out of range", result.Score)
			}
		})
	}
}

func TestEvaluateEmpty(t *testing.T) {
	result := Evaluate(nil, nil)
	if result.Total != 0 || result.Score != 0 {
		t.Errorf("empty evaluation = %+v, want zeroes", result)
	}
	if len(result.Detail) != 0 {
		t.Errorf("Detail length = %d, want 0", len(result.Detail))
	}
}

func TestEvaluateDetailStatuses(t *testing.T) {
	questions := makeQuestions(t, 3, 0)
	answers := map[string]int{
		questions[0].ID: 0, // correct
		questions[1].ID: 3, // wrong
		// questions[2] unanswered
	}

	result := Evaluate(questions, answers)

	if len(result.Detail) != 3 {
		t.Fatalf("Detail length = %d, want 3", len(result.Detail))
	}

	if result.Detail[0].Status != model.AnswerCorrect || !result.Detail[0].IsCorrect {
		t.Errorf("detail[0] = %+v, want correct", result.Detail[0])
	}
	if result.Detail[1].Status != model.AnswerWrong || result.Detail[1].IsCorrect {
		t.Errorf("detail[1] = %+v, want wrong", result.Detail[1])
	}
	if result.Detail[2].Status != model.AnswerSkipped {
		t.Errorf("detail[2] status = %s, want skipped", result.Detail[2].Status)
	}
	if result.Detail[2].SelectedOption != -1 {
		t.Errorf("detail[2] selected = %d, want -1", result.Detail[2].SelectedOption)
	}
}

// Evaluating the same inputs twice must produce identical results: grading
// depends on nothing but questions and answers.
func TestEvaluateDeterministic(t *testing.T) {
	questions := makeQuestions(t, 5, 2)
	answers := map[string]int{
		questions[0].ID: 2,
		questions[1].ID: 0,
		questions[3].ID: 2,
	}

	first := Evaluate(questions, answers)
	second := Evaluate(questions, answers)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("results differ:\n%s\n%s", a, b)
	}
}

func TestEvaluatePreservesQuestionOrder(t *testing.T) {
	questions := makeQuestions(t, 4, 0)
	result := Evaluate(questions, nil)

	for i, d := range result.Detail {
		if d.QuestionID != questions[i].ID {
			t.Errorf("detail[%d] question = %s, want %s", i, d.QuestionID, questions[i].ID)
		}
	}
}
