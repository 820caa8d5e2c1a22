package repository

import (
	"gyanbrix_backend/internal/model"

	"gorm.io/gorm"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) Create(banner *model.Banner) error {
	return r.db.Create(banner).Error
}

func (r *BannerRepository) List() ([]model.Banner, error) {
	var banners []model.Banner
	if err := r.db.Order("created_at desc").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *BannerRepository) Delete(id string) error {
	return r.db.Delete(&model.Banner{}, "id = ?", id).Error
}
