package service

import (
	"context"
	"encoding/json"
	"fmt"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/util"
	"gyanbrix_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const candidatePoolTTL = 5 * time.Minute

// QuizService owns quiz definitions and the candidate pools admins pick
// questions from. A quiz stores question references only; content is resolved
// fresh when a session starts.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	classRepo    *repository.ClassRepository
	subjectRepo  *repository.SubjectRepository
	chapterRepo  *repository.ChapterRepository
	questionSvc  *QuestionService
	redisClient  *redis.Client
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	classRepo *repository.ClassRepository,
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
	questionSvc *QuestionService,
	redisClient *redis.Client,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		classRepo:    classRepo,
		subjectRepo:  subjectRepo,
		chapterRepo:  chapterRepo,
		questionSvc:  questionSvc,
		redisClient:  redisClient,
	}
}

type QuizRequest struct {
	Type            model.QuizType `json:"type" binding:"required,oneof=class subject chapter"`
	ClassID         string         `json:"classId" binding:"required"`
	SubjectID       string         `json:"subjectId"`
	ChapterID       string         `json:"chapterId"`
	Title           string         `json:"title" binding:"required,min=1,max=200"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"durationMinutes" binding:"required,min=1"`
	QuestionIDs     []string       `json:"questionIds" binding:"required,min=1"`
}

// Candidate is one pickable question in an aggregation pool, tagged with
// where in the hierarchy it came from.
type Candidate struct {
	Question    model.Question `json:"question"`
	SubjectName string         `json:"subjectName"`
	ChapterName string         `json:"chapterName"`
}

func (s *QuizService) validateScope(req *QuizRequest) error {
	if _, err := s.classRepo.FindByID(req.ClassID); err != nil {
		return err
	}

	switch req.Type {
	case model.QuizClass:
		return nil
	case model.QuizSubject:
		if req.SubjectID == "" {
			return util.ErrScopeMismatch
		}
		subject, err := s.subjectRepo.FindByID(req.SubjectID)
		if err != nil {
			return err
		}
		if subject.ClassID != req.ClassID {
			return util.ErrScopeMismatch
		}
		return nil
	case model.QuizChapter:
		if req.SubjectID == "" || req.ChapterID == "" {
			return util.ErrScopeMismatch
		}
		chapter, err := s.chapterRepo.FindByID(req.ChapterID)
		if err != nil {
			return err
		}
		if chapter.ClassID != req.ClassID || chapter.SubjectID != req.SubjectID {
			return util.ErrScopeMismatch
		}
		return nil
	default:
		return util.ErrScopeMismatch
	}
}

// buildRefs loads the picked questions and verifies each sits inside the
// quiz's scope before turning it into a stored reference.
func (s *QuizService) buildRefs(req *QuizRequest) ([]model.QuestionRef, error) {
	questions, err := s.questionRepo.FindByIDs(req.QuestionIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	// The selection is a set keyed by question id; repeated ids collapse to
	// their first occurrence.
	seen := make(map[string]bool, len(req.QuestionIDs))
	refs := make([]model.QuestionRef, 0, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("question %s not found", id)
		}
		if q.ClassID != req.ClassID {
			return nil, util.ErrScopeMismatch
		}
		if req.Type == model.QuizSubject && q.SubjectID != req.SubjectID {
			return nil, util.ErrScopeMismatch
		}
		if req.Type == model.QuizChapter && q.ChapterID != req.ChapterID {
			return nil, util.ErrScopeMismatch
		}
		refs = append(refs, model.QuestionRef{
			QuestionID: q.ID,
			ClassID:    q.ClassID,
			SubjectID:  q.SubjectID,
			ChapterID:  q.ChapterID,
		})
	}
	return refs, nil
}

func (s *QuizService) Create(req *QuizRequest, createdBy string) (*model.Quiz, error) {
	if err := s.validateScope(req); err != nil {
		return nil, err
	}

	refs, err := s.buildRefs(req)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Type:            req.Type,
		ClassID:         req.ClassID,
		SubjectID:       req.SubjectID,
		ChapterID:       req.ChapterID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Questions:       raw,
		TotalQuestions:  len(refs),
		CreatedBy:       createdBy,
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}

	s.questionSvc.RecordUsage(req.QuestionIDs, model.UsageEntry{
		QuizID:     quiz.ID,
		QuizTitle:  quiz.Title,
		LevelLabel: string(quiz.Type),
	})

	return quiz, nil
}

func (s *QuizService) Update(id string, req *QuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateScope(req); err != nil {
		return nil, err
	}

	refs, err := s.buildRefs(req)
	if err != nil {
		return nil, err
	}

	oldIDs := refIDs(quiz.QuestionRefs())

	raw, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}

	quiz.Type = req.Type
	quiz.ClassID = req.ClassID
	quiz.SubjectID = req.SubjectID
	quiz.ChapterID = req.ChapterID
	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.DurationMinutes = req.DurationMinutes
	quiz.Questions = raw
	quiz.TotalQuestions = len(refs)

	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}

	s.questionSvc.RemoveUsage(oldIDs, quiz.ID)
	s.questionSvc.RecordUsage(req.QuestionIDs, model.UsageEntry{
		QuizID:     quiz.ID,
		QuizTitle:  quiz.Title,
		LevelLabel: string(quiz.Type),
	})

	return quiz, nil
}

func (s *QuizService) Delete(id string) error {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.quizRepo.Delete(id); err != nil {
		return err
	}

	s.questionSvc.RemoveUsage(refIDs(quiz.QuestionRefs()), quiz.ID)
	return nil
}

func (s *QuizService) Get(id string) (*model.Quiz, error) {
	return s.quizRepo.FindByID(id)
}

func (s *QuizService) ListByClass(classID string) ([]model.Quiz, error) {
	return s.quizRepo.ListByClass(classID)
}

func (s *QuizService) ListBySubject(classID, subjectID string) ([]model.Quiz, error) {
	return s.quizRepo.ListBySubject(classID, subjectID)
}

func (s *QuizService) ListByChapter(classID, subjectID, chapterID string) ([]model.Quiz, error) {
	return s.quizRepo.ListByChapter(classID, subjectID, chapterID)
}

// AggregateCandidates walks the hierarchy below the requested scope and
// returns every question in it, tagged with subject and chapter names. Pools
// are cached briefly in Redis; when Redis is absent the walk runs every time.
func (s *QuizService) AggregateCandidates(ctx context.Context, quizType model.QuizType, classID, subjectID, chapterID string) ([]Candidate, error) {
	cacheKey := fmt.Sprintf("candidates:%s:%s:%s:%s", quizType, classID, subjectID, chapterID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var pool []Candidate
			if json.Unmarshal(cached, &pool) == nil {
				return pool, nil
			}
		}
	}

	var pool []Candidate
	var err error

	switch quizType {
	case model.QuizClass:
		pool, err = s.aggregateClass(classID)
	case model.QuizSubject:
		pool, err = s.aggregateSubject(classID, subjectID)
	case model.QuizChapter:
		pool, err = s.aggregateChapter(classID, subjectID, chapterID)
	default:
		return nil, util.ErrScopeMismatch
	}
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if raw, err := json.Marshal(pool); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, raw, candidatePoolTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache candidate pool",
					zap.String("key", cacheKey),
					zap.Error(err))
			}
		}
	}

	return pool, nil
}

func (s *QuizService) aggregateClass(classID string) ([]Candidate, error) {
	subjects, err := s.subjectRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}

	pool := []Candidate{}
	for i := range subjects {
		part, err := s.aggregateSubjectNamed(&subjects[i])
		if err != nil {
			return nil, err
		}
		pool = append(pool, part...)
	}
	return pool, nil
}

func (s *QuizService) aggregateSubject(classID, subjectID string) ([]Candidate, error) {
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, err
	}
	if subject.ClassID != classID {
		return nil, util.ErrScopeMismatch
	}
	return s.aggregateSubjectNamed(subject)
}

func (s *QuizService) aggregateSubjectNamed(subject *model.Subject) ([]Candidate, error) {
	chapters, err := s.chapterRepo.ListBySubject(subject.ID)
	if err != nil {
		return nil, err
	}

	pool := []Candidate{}
	for i := range chapters {
		ch := &chapters[i]
		questions, err := s.questionRepo.ListByChapter(ch.ClassID, ch.SubjectID, ch.ID)
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			pool = append(pool, Candidate{
				Question:    q,
				SubjectName: subject.Name,
				ChapterName: ch.Title,
			})
		}
	}
	return pool, nil
}

func (s *QuizService) aggregateChapter(classID, subjectID, chapterID string) ([]Candidate, error) {
	chapter, err := s.chapterRepo.FindByID(chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.ClassID != classID || chapter.SubjectID != subjectID {
		return nil, util.ErrScopeMismatch
	}
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByChapter(classID, subjectID, chapterID)
	if err != nil {
		return nil, err
	}

	pool := make([]Candidate, 0, len(questions))
	for _, q := range questions {
		pool = append(pool, Candidate{
			Question:    q,
			SubjectName: subject.Name,
			ChapterName: chapter.Title,
		})
	}
	return pool, nil
}

// ResolveQuestions turns a quiz's stored refs into live question rows,
// preserving ref order. Refs whose question no longer exists are skipped; a
// quiz whose refs all dangle yields ErrQuizNoQuestions.
func (s *QuizService) ResolveQuestions(quiz *model.Quiz) ([]model.Question, error) {
	refs := quiz.QuestionRefs()
	if len(refs) == 0 {
		return nil, util.ErrQuizNoQuestions
	}

	questions, err := s.questionRepo.FindByIDs(refIDs(refs))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	resolved := make([]model.Question, 0, len(refs))
	for _, ref := range refs {
		q, ok := byID[ref.QuestionID]
		if !ok {
			logger.Log.Warn("Skipping dangling question reference",
				zap.String("quiz_id", quiz.ID),
				zap.String("question_id", ref.QuestionID))
			continue
		}
		resolved = append(resolved, *q)
	}

	if len(resolved) == 0 {
		return nil, util.ErrQuizNoQuestions
	}
	return resolved, nil
}

func refIDs(refs []model.QuestionRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.QuestionID)
	}
	return ids
}
