package repository

import (
	"gyanbrix_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.db.Create(class).Error
}

func (r *ClassRepository) FindByID(id string) (*model.Class, error) {
	var class model.Class
	if err := r.db.First(&class, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) List() ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.Order("created_at asc").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.db.Save(class).Error
}

func (r *ClassRepository) Delete(id string) error {
	return r.db.Delete(&model.Class{}, "id = ?", id).Error
}

// CountSubjects reports how many subjects still reference the class.
func (r *ClassRepository) CountSubjects(classID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subject{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}
