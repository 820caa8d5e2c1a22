// Seeds a demo dataset for local development: an admin account, one class
// with a subject and chapter, a handful of questions and a chapter quiz.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"encoding/json"
	"gyanbrix_backend/internal/config"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/pkg/database"
	"gyanbrix_backend/pkg/logger"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	questionSvc := service.NewQuestionService(questionRepo, chapterRepo)
	quizSvc := service.NewQuizService(quizRepo, questionRepo, classRepo, subjectRepo, chapterRepo, questionSvc, nil)

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := &model.User{
		Name:     "Demo Admin",
		Email:    "admin@gyanbrix.local",
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Failed to create admin (already seeded?): %v", err)
	}

	class := &model.Class{Name: "Class 10", CreatedBy: admin.ID}
	if err := classRepo.Create(class); err != nil {
		log.Fatal(err)
	}
	subject := &model.Subject{ClassID: class.ID, Name: "Physics", CreatedBy: admin.ID}
	if err := subjectRepo.Create(subject); err != nil {
		log.Fatal(err)
	}
	chapter := &model.Chapter{
		ClassID:     class.ID,
		SubjectID:   subject.ID,
		Title:       "Laws of Motion",
		ChapterType: model.ChapterText,
		Content:     "A body at rest stays at rest unless acted on by a net force.",
		CreatedBy:   admin.ID,
	}
	if err := chapterRepo.Create(chapter); err != nil {
		log.Fatal(err)
	}

	seed := []struct {
		text    string
		options []string
		correct int
	}{
		{"SI unit of force?", []string{"Joule", "Newton", "Watt", "Pascal"}, 1},
		{"F = ma is which law?", []string{"First", "Second", "Third", "Zeroth"}, 1},
		{"Action and reaction act on", []string{"The same body", "Different bodies", "No body", "The ground"}, 1},
		{"Inertia is measured by", []string{"Weight", "Mass", "Speed", "Volume"}, 1},
		{"A net zero force means", []string{"Zero velocity", "Constant velocity", "Increasing speed", "Free fall"}, 1},
	}

	questions := make([]*model.Question, 0, len(seed))
	ids := make([]string, 0, len(seed))
	for _, s := range seed {
		opts, err := json.Marshal(s.options)
		if err != nil {
			log.Fatal(err)
		}
		q := &model.Question{
			ClassID:      class.ID,
			SubjectID:    subject.ID,
			ChapterID:    chapter.ID,
			Text:         s.text,
			Options:      opts,
			CorrectIndex: s.correct,
			Difficulty:   model.DifficultyEasy,
			Marks:        1,
			CreatedBy:    admin.ID,
		}
		q.ID = model.GenerateUUID()
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := questionRepo.CreateBatch(questions); err != nil {
		log.Fatal(err)
	}

	quiz, err := quizSvc.Create(&service.QuizRequest{
		Type:            model.QuizChapter,
		ClassID:         class.ID,
		SubjectID:       subject.ID,
		ChapterID:       chapter.ID,
		Title:           "Laws of Motion: Quick Check",
		DurationMinutes: 10,
		QuestionIDs:     ids,
	}, admin.ID)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Seeded demo data: class=%s quiz=%s admin=admin@gyanbrix.local / admin12345", class.ID, quiz.ID)
}
