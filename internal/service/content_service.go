package service

import (
	"context"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/util"
	"gyanbrix_backend/pkg/logger"
	"mime/multipart"

	"go.uber.org/zap"
)

// ContentService manages the Class -> Subject -> Chapter hierarchy. Deletion
// is structural: a node cannot be removed while children reference it.
type ContentService struct {
	classRepo   *repository.ClassRepository
	subjectRepo *repository.SubjectRepository
	chapterRepo *repository.ChapterRepository
	storage     *StorageService
}

func NewContentService(
	classRepo *repository.ClassRepository,
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
	storage *StorageService,
) *ContentService {
	return &ContentService{
		classRepo:   classRepo,
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		storage:     storage,
	}
}

type ClassRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

type SubjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

type ChapterRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	ChapterType model.ChapterType `json:"chapterType" binding:"omitempty,oneof=text pdf"`
	Content     string            `json:"content"`
}

func (s *ContentService) CreateClass(req *ClassRequest, createdBy string) (*model.Class, error) {
	class := &model.Class{
		Name:      req.Name,
		CreatedBy: createdBy,
	}
	if err := s.classRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ContentService) ListClasses() ([]model.Class, error) {
	return s.classRepo.List()
}

func (s *ContentService) UpdateClass(id string, req *ClassRequest) (*model.Class, error) {
	class, err := s.classRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	class.Name = req.Name
	if err := s.classRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ContentService) DeleteClass(id string) error {
	if _, err := s.classRepo.FindByID(id); err != nil {
		return err
	}
	count, err := s.classRepo.CountSubjects(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrClassNotEmpty
	}
	return s.classRepo.Delete(id)
}

func (s *ContentService) CreateSubject(classID string, req *SubjectRequest, createdBy string) (*model.Subject, error) {
	if _, err := s.classRepo.FindByID(classID); err != nil {
		return nil, err
	}
	subject := &model.Subject{
		ClassID:   classID,
		Name:      req.Name,
		CreatedBy: createdBy,
	}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *ContentService) ListSubjects(classID string) ([]model.Subject, error) {
	return s.subjectRepo.ListByClass(classID)
}

func (s *ContentService) UpdateSubject(id string, req *SubjectRequest) (*model.Subject, error) {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	subject.Name = req.Name
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *ContentService) DeleteSubject(id string) error {
	if _, err := s.subjectRepo.FindByID(id); err != nil {
		return err
	}
	count, err := s.subjectRepo.CountChapters(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrSubjectNotEmpty
	}
	return s.subjectRepo.Delete(id)
}

func (s *ContentService) CreateChapter(classID, subjectID string, req *ChapterRequest, createdBy string) (*model.Chapter, error) {
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, err
	}
	if subject.ClassID != classID {
		return nil, util.ErrScopeMismatch
	}

	chapterType := req.ChapterType
	if chapterType == "" {
		chapterType = model.ChapterText
	}

	chapter := &model.Chapter{
		ClassID:     classID,
		SubjectID:   subjectID,
		Title:       req.Title,
		ChapterType: chapterType,
		Content:     req.Content,
		CreatedBy:   createdBy,
	}
	if err := s.chapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ContentService) GetChapter(id string) (*model.Chapter, error) {
	return s.chapterRepo.FindByID(id)
}

func (s *ContentService) ListChapters(subjectID string) ([]model.Chapter, error) {
	return s.chapterRepo.ListBySubject(subjectID)
}

func (s *ContentService) UpdateChapter(id string, req *ChapterRequest) (*model.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	chapter.Title = req.Title
	if req.ChapterType != "" {
		chapter.ChapterType = req.ChapterType
	}
	chapter.Content = req.Content
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ContentService) DeleteChapter(id string) error {
	if _, err := s.chapterRepo.FindByID(id); err != nil {
		return err
	}
	count, err := s.chapterRepo.CountQuestions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrChapterNotEmpty
	}
	return s.chapterRepo.Delete(id)
}

// AttachPDF uploads a chapter PDF and flips the chapter into pdf mode.
func (s *ContentService) AttachPDF(ctx context.Context, chapterID string, file *multipart.FileHeader) (*model.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(chapterID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.UploadPDF(ctx, file)
	if err != nil {
		return nil, err
	}

	chapter.ChapterType = model.ChapterPDF
	chapter.PDFURL = url
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, err
	}

	logger.Log.Info("Chapter PDF attached",
		zap.String("chapter_id", chapterID),
		zap.String("url", url))
	return chapter, nil
}
