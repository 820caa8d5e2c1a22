package repository

import (
	"errors"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByClass(classID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("type = ? AND class_id = ?", model.QuizClass, classID).
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) ListBySubject(classID, subjectID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("type = ? AND class_id = ? AND subject_id = ?", model.QuizSubject, classID, subjectID).
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) ListByChapter(classID, subjectID, chapterID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("type = ? AND class_id = ? AND subject_id = ? AND chapter_id = ?",
			model.QuizChapter, classID, subjectID, chapterID).
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.db.Delete(&model.Quiz{}, "id = ?", id).Error
}
