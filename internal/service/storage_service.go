package service

import (
	"context"
	"fmt"
	"gyanbrix_backend/internal/config"
	"gyanbrix_backend/internal/util"
	"gyanbrix_backend/pkg/logger"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstracts where uploaded files land. Upload returns a URL
// the client can fetch the object from.
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, objectName string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

type StorageService struct {
	provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var provider StorageProvider
	var err error

	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err = newMinioProvider(&cfg.Storage)
	case util.StorageLocal:
		provider = &localProvider{basePath: cfg.Storage.LocalPath}
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
	if err != nil {
		return nil, err
	}

	return &StorageService{provider: provider}, nil
}

// UploadPDF stores a chapter PDF after sniffing its content type.
func (s *StorageService) UploadPDF(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "chapters", []string{util.MimePDF})
}

// UploadImage stores a banner image after sniffing its content type.
func (s *StorageService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "banners", []string{util.MimeImage})
}

func (s *StorageService) Delete(ctx context.Context, objectName string) error {
	return s.provider.Delete(ctx, objectName)
}

func (s *StorageService) upload(ctx context.Context, file *multipart.FileHeader, prefix string, allowed []string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, allowed); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	url, err := s.provider.Upload(ctx, file, objectName)
	if err != nil {
		return "", err
	}

	logger.Log.Info("File uploaded",
		zap.String("object", objectName),
		zap.Int64("size", file.Size))
	return url, nil
}

type localProvider struct {
	basePath string
}

func (p *localProvider) Upload(_ context.Context, file *multipart.FileHeader, objectName string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dstPath := filepath.Join(p.basePath, objectName)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + objectName, nil
}

func (p *localProvider) Delete(_ context.Context, objectName string) error {
	objectName = strings.TrimPrefix(objectName, "/uploads/")
	return os.Remove(filepath.Join(p.basePath, objectName))
}

type minioProvider struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

func newMinioProvider(cfg *config.StorageConfig) (*minioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &minioProvider{
		client:   client,
		bucket:   cfg.MinioBucket,
		endpoint: cfg.MinioEndpoint,
	}, nil
}

func (p *minioProvider) Upload(ctx context.Context, file *multipart.FileHeader, objectName string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	_, err = p.client.PutObject(ctx, p.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s/%s/%s", p.endpoint, p.bucket, objectName), nil
}

func (p *minioProvider) Delete(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.bucket, objectName, minio.RemoveObjectOptions{})
}
