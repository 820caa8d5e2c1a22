package repository

import (
	"gyanbrix_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateBatch inserts all questions in one transaction so a single bad row
// rejects the whole upload.
func (r *QuestionRepository) CreateBatch(questions []*model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, q := range questions {
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs returns the questions that exist among the given IDs; missing IDs
// are simply absent from the result.
func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByChapter returns the chapter's questions. An unknown chapter path
// yields an empty list, not an error.
func (r *QuestionRepository) ListByChapter(classID, subjectID, chapterID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("class_id = ? AND subject_id = ? AND chapter_id = ?", classID, subjectID, chapterID).
		Order("created_at asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}

// UpdateUsage rewrites the quiz-membership summary stored on a question.
func (r *QuestionRepository) UpdateUsage(id string, usage []byte) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Update("usage", usage).Error
}
