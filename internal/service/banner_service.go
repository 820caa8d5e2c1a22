package service

import (
	"context"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"mime/multipart"
)

type BannerService struct {
	bannerRepo *repository.BannerRepository
	storage    *StorageService
}

func NewBannerService(bannerRepo *repository.BannerRepository, storage *StorageService) *BannerService {
	return &BannerService{
		bannerRepo: bannerRepo,
		storage:    storage,
	}
}

func (s *BannerService) Create(ctx context.Context, title string, image *multipart.FileHeader, createdBy string) (*model.Banner, error) {
	url, err := s.storage.UploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	banner := &model.Banner{
		Title:     title,
		ImageURL:  url,
		CreatedBy: createdBy,
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) List() ([]model.Banner, error) {
	return s.bannerRepo.List()
}

func (s *BannerService) Delete(id string) error {
	return s.bannerRepo.Delete(id)
}
