package service

import (
	"encoding/json"
	"fmt"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/util"
)

// QuestionService owns the per-chapter question bank. Bulk uploads are
// validated completely before anything is written, and written atomically
// after that.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	chapterRepo  *repository.ChapterRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, chapterRepo *repository.ChapterRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		chapterRepo:  chapterRepo,
	}
}

type QuestionInput struct {
	Text         string   `json:"question" binding:"required"`
	Options      []string `json:"options" binding:"required"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Marks        int      `json:"marks" binding:"omitempty,min=1"`
}

type BulkQuestionRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// validateInput checks one question's shape; idx is echoed back so the caller
// knows which row of a bulk upload was rejected.
func validateInput(in *QuestionInput, idx int) error {
	if in.Text == "" {
		return fmt.Errorf("question %d: text is empty", idx)
	}
	if len(in.Options) != util.OptionCount {
		return fmt.Errorf("question %d: expected %d options, got %d", idx, util.OptionCount, len(in.Options))
	}
	for i, opt := range in.Options {
		if opt == "" {
			return fmt.Errorf("question %d: option %d is empty", idx, i)
		}
	}
	if in.CorrectIndex < 0 || in.CorrectIndex >= util.OptionCount {
		return fmt.Errorf("question %d: correctIndex %d out of range", idx, in.CorrectIndex)
	}
	if in.Marks < 0 {
		return fmt.Errorf("question %d: marks %d is negative", idx, in.Marks)
	}
	return nil
}

// CreateBatch validates every question first, so a bad row rejects the whole
// upload before any insert happens.
func (s *QuestionService) CreateBatch(classID, subjectID, chapterID string, req *BulkQuestionRequest, createdBy string) ([]*model.Question, error) {
	chapter, err := s.chapterRepo.FindByID(chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.ClassID != classID || chapter.SubjectID != subjectID {
		return nil, util.ErrScopeMismatch
	}

	for i := range req.Questions {
		if err := validateInput(&req.Questions[i], i); err != nil {
			return nil, err
		}
	}

	questions := make([]*model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		in := &req.Questions[i]
		opts, err := json.Marshal(in.Options)
		if err != nil {
			return nil, err
		}

		difficulty := model.Difficulty(in.Difficulty)
		if difficulty == "" {
			difficulty = model.DifficultyEasy
		}
		marks := in.Marks
		if marks == 0 {
			marks = 1
		}

		questions = append(questions, &model.Question{
			ClassID:      classID,
			SubjectID:    subjectID,
			ChapterID:    chapterID,
			Text:         in.Text,
			Options:      opts,
			CorrectIndex: in.CorrectIndex,
			Explanation:  in.Explanation,
			Difficulty:   difficulty,
			Marks:        marks,
			CreatedBy:    createdBy,
		})
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) ListByChapter(classID, subjectID, chapterID string) ([]model.Question, error) {
	return s.questionRepo.ListByChapter(classID, subjectID, chapterID)
}

func (s *QuestionService) Update(id string, in *QuestionInput) (*model.Question, error) {
	if err := validateInput(in, 0); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	opts, err := json.Marshal(in.Options)
	if err != nil {
		return nil, err
	}

	question.Text = in.Text
	question.Options = opts
	question.CorrectIndex = in.CorrectIndex
	question.Explanation = in.Explanation
	if in.Difficulty != "" {
		question.Difficulty = model.Difficulty(in.Difficulty)
	}
	if in.Marks > 0 {
		question.Marks = in.Marks
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes a question outright. Quizzes referencing it keep their refs;
// resolution at attempt start skips ids that no longer exist.
func (s *QuestionService) Delete(id string) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return err
	}
	return s.questionRepo.Delete(id)
}

// RecordUsage appends a quiz-membership entry to each referenced question.
// Failures on individual rows are tolerated: usage is informational.
func (s *QuestionService) RecordUsage(questionIDs []string, entry model.UsageEntry) {
	for _, id := range questionIDs {
		question, err := s.questionRepo.FindByID(id)
		if err != nil {
			continue
		}

		var usage []model.UsageEntry
		if len(question.Usage) > 0 {
			_ = json.Unmarshal(question.Usage, &usage)
		}

		found := false
		for _, u := range usage {
			if u.QuizID == entry.QuizID {
				found = true
				break
			}
		}
		if found {
			continue
		}

		usage = append(usage, entry)
		raw, err := json.Marshal(usage)
		if err != nil {
			continue
		}
		_ = s.questionRepo.UpdateUsage(id, raw)
	}
}

// RemoveUsage drops a quiz's entry from each referenced question.
func (s *QuestionService) RemoveUsage(questionIDs []string, quizID string) {
	for _, id := range questionIDs {
		question, err := s.questionRepo.FindByID(id)
		if err != nil {
			continue
		}

		var usage []model.UsageEntry
		if len(question.Usage) == 0 {
			continue
		}
		if err := json.Unmarshal(question.Usage, &usage); err != nil {
			continue
		}

		kept := usage[:0]
		for _, u := range usage {
			if u.QuizID != quizID {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(usage) {
			continue
		}

		raw, err := json.Marshal(kept)
		if err != nil {
			continue
		}
		_ = s.questionRepo.UpdateUsage(id, raw)
	}
}
