package repository

import (
	"gyanbrix_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListByUser returns the user's attempts, most recent first.
func (r *AttemptRepository) ListByUser(userID string, limit, offset int) ([]model.Attempt, int64, error) {
	var attempts []model.Attempt
	var total int64

	q := r.db.Model(&model.Attempt{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// ListByUserAndQuiz narrows the history to one quiz, most recent first.
func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID string, limit, offset int) ([]model.Attempt, int64, error) {
	var attempts []model.Attempt
	var total int64

	q := r.db.Model(&model.Attempt{}).Where("user_id = ? AND quiz_id = ?", userID, quizID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}
