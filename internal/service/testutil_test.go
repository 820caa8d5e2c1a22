package service

import (
	"encoding/json"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/pkg/logger"
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	classRepo   *repository.ClassRepository
	subjectRepo *repository.SubjectRepository
	chapterRepo *repository.ChapterRepository
	questRepo   *repository.QuestionRepository
	quizRepo    *repository.QuizRepository
	attemptRepo *repository.AttemptRepository

	questionSvc *QuestionService
	quizSvc     *QuizService
	sessionSvc  *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.Class{},
		&model.Subject{},
		&model.Chapter{},
		&model.Question{},
		&model.Quiz{},
		&model.Attempt{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:          db,
		classRepo:   repository.NewClassRepository(db),
		subjectRepo: repository.NewSubjectRepository(db),
		chapterRepo: repository.NewChapterRepository(db),
		questRepo:   repository.NewQuestionRepository(db),
		quizRepo:    repository.NewQuizRepository(db),
		attemptRepo: repository.NewAttemptRepository(db),
	}
	env.questionSvc = NewQuestionService(env.questRepo, env.chapterRepo)
	env.quizSvc = NewQuizService(
		env.quizRepo, env.questRepo, env.classRepo, env.subjectRepo, env.chapterRepo,
		env.questionSvc, nil)
	env.sessionSvc = NewSessionService(env.quizSvc, env.attemptRepo)
	return env
}

func (env *testEnv) seedClass(t *testing.T, name string) *model.Class {
	t.Helper()
	class := &model.Class{Name: name}
	if err := env.classRepo.Create(class); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return class
}

func (env *testEnv) seedSubject(t *testing.T, classID, name string) *model.Subject {
	t.Helper()
	subject := &model.Subject{ClassID: classID, Name: name}
	if err := env.subjectRepo.Create(subject); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	return subject
}

func (env *testEnv) seedChapter(t *testing.T, classID, subjectID, title string) *model.Chapter {
	t.Helper()
	chapter := &model.Chapter{
		ClassID:     classID,
		SubjectID:   subjectID,
		Title:       title,
		ChapterType: model.ChapterText,
	}
	if err := env.chapterRepo.Create(chapter); err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	return chapter
}

func (env *testEnv) seedQuestion(t *testing.T, classID, subjectID, chapterID string, correctIndex int) *model.Question {
	t.Helper()
	opts, _ := json.Marshal([]string{"A", "B", "C", "D"})
	question := &model.Question{
		ClassID:      classID,
		SubjectID:    subjectID,
		ChapterID:    chapterID,
		Text:         "what is the answer",
		Options:      opts,
		CorrectIndex: correctIndex,
		Difficulty:   model.DifficultyEasy,
		Marks:        1,
	}
	if err := env.questRepo.CreateBatch([]*model.Question{question}); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

// seedQuiz builds a chapter quiz over the given questions.
func (env *testEnv) seedQuiz(t *testing.T, classID, subjectID, chapterID string, questionIDs []string, durationMinutes int) *model.Quiz {
	t.Helper()
	req := &QuizRequest{
		Type:            model.QuizChapter,
		ClassID:         classID,
		SubjectID:       subjectID,
		ChapterID:       chapterID,
		Title:           "chapter quiz",
		DurationMinutes: durationMinutes,
		QuestionIDs:     questionIDs,
	}
	quiz, err := env.quizSvc.Create(req, "")
	if err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}
