package app

import (
	"context"
	"gyanbrix_backend/internal/config"
	"gyanbrix_backend/internal/controller"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/service"
	"gyanbrix_backend/pkg/database"
	"gyanbrix_backend/pkg/logger"
	"gyanbrix_backend/pkg/monitoring"
	"gyanbrix_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Repositories struct {
	User     *repository.UserRepository
	Class    *repository.ClassRepository
	Subject  *repository.SubjectRepository
	Chapter  *repository.ChapterRepository
	Question *repository.QuestionRepository
	Quiz     *repository.QuizRepository
	Attempt  *repository.AttemptRepository
	Banner   *repository.BannerRepository
}

type Services struct {
	Auth     *service.AuthService
	Content  *service.ContentService
	Question *service.QuestionService
	Quiz     *service.QuizService
	Session  *service.SessionService
	Attempt  *service.AttemptService
	Storage  *service.StorageService
	Banner   *service.BannerService
}

type Controllers struct {
	Auth     *controller.AuthController
	Content  *controller.ContentController
	Question *controller.QuestionController
	Quiz     *controller.QuizController
	Attempt  *controller.AttemptController
	Banner   *controller.BannerController
	Health   *controller.HealthController
}

type App struct {
	cfg    *config.Config
	cfgMu  sync.RWMutex
	db     *gorm.DB
	rdb    *redis.Client
	tp     *sdktrace.TracerProvider
	router *gin.Engine

	repos       *Repositories
	services    *Services
	controllers *Controllers
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	monitoring.Init()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release deployments migrate explicitly via the -migrate flags
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	var rdb *redis.Client
	rdb, err = database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, candidate pools will not be cached", zap.Error(err))
		rdb = nil
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer("gyanbrix-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
	}

	app := &App{
		cfg: cfg,
		db:  db,
		rdb: rdb,
		tp:  tp,
	}

	app.buildLayers()
	app.buildRouter()

	return app
}

func (a *App) buildLayers() {
	repos := &Repositories{
		User:     repository.NewUserRepository(a.db),
		Class:    repository.NewClassRepository(a.db),
		Subject:  repository.NewSubjectRepository(a.db),
		Chapter:  repository.NewChapterRepository(a.db),
		Question: repository.NewQuestionRepository(a.db),
		Quiz:     repository.NewQuizRepository(a.db),
		Attempt:  repository.NewAttemptRepository(a.db),
		Banner:   repository.NewBannerRepository(a.db),
	}

	storageSvc, err := service.NewStorageService(a.cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	questionSvc := service.NewQuestionService(repos.Question, repos.Chapter)
	quizSvc := service.NewQuizService(
		repos.Quiz, repos.Question, repos.Class, repos.Subject, repos.Chapter,
		questionSvc, a.rdb)

	services := &Services{
		Auth:     service.NewAuthService(repos.User, a.cfg),
		Content:  service.NewContentService(repos.Class, repos.Subject, repos.Chapter, storageSvc),
		Question: questionSvc,
		Quiz:     quizSvc,
		Session:  service.NewSessionService(quizSvc, repos.Attempt),
		Attempt:  service.NewAttemptService(repos.Attempt),
		Storage:  storageSvc,
		Banner:   service.NewBannerService(repos.Banner, storageSvc),
	}

	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Content:  controller.NewContentController(services.Content),
		Question: controller.NewQuestionController(services.Question),
		Quiz:     controller.NewQuizController(services.Quiz),
		Attempt:  controller.NewAttemptController(services.Session, services.Attempt),
		Banner:   controller.NewBannerController(services.Banner),
		Health:   controller.NewHealthController(a.db),
	}

	a.repos = repos
	a.services = services
	a.controllers = controllers
}

// ReloadConfig swaps in a fresh config from the watcher. Only settings read
// per-request take effect without a restart.
func (a *App) ReloadConfig(newCfg *config.Config) {
	a.cfgMu.Lock()
	newCfg.ForceMigrate = a.cfg.ForceMigrate
	newCfg.MigrateOnly = a.cfg.MigrateOnly
	a.cfg = newCfg
	a.cfgMu.Unlock()

	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.cfg.Server.Port,
		Handler: a.router,
	}

	a.startBackgroundTasks()

	go func() {
		logger.Log.Info("Server starting", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}

	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shut down tracer", zap.Error(err))
		}
	}
	if a.rdb != nil {
		a.rdb.Close()
	}

	logger.Log.Info("Server exited")
}

// startBackgroundTasks runs the session sweeper, which clears out sessions
// that finished but could not be removed at finalize time.
func (a *App) startBackgroundTasks() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := a.services.Session.Sweep(); removed > 0 {
				logger.Log.Info("Swept stale attempt sessions", zap.Int("removed", removed))
			}
		}
	}()
}
