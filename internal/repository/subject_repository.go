package repository

import (
	"gyanbrix_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.db.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) ListByClass(classID string) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.Where("class_id = ?", classID).Order("created_at asc").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.db.Save(subject).Error
}

func (r *SubjectRepository) Delete(id string) error {
	return r.db.Delete(&model.Subject{}, "id = ?", id).Error
}

// CountChapters reports how many chapters still reference the subject.
func (r *SubjectRepository) CountChapters(subjectID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Chapter{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
