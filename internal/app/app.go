package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advising_backend/internal/config"
	"advising_backend/internal/controller"
	"advising_backend/internal/repository"
	"advising_backend/internal/service"
	"advising_backend/internal/util"
	"advising_backend/pkg/database"
	"advising_backend/pkg/logger"
	"advising_backend/pkg/monitoring"
	"advising_backend/pkg/security"
	"advising_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	grade      *repository.GradeRepository
	syllabus   *repository.SyllabusRepository
	insight    *repository.InsightRepository
	remark     *repository.RemarkRepository
	advising   *repository.AdvisingRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	ai             *service.AIService
	grade          *service.GradeService
	recommendation *service.RecommendationService
	insight        *service.InsightService
	resource       *service.ResourceService
	enrollment     *service.EnrollmentService
	syllabus       *service.SyllabusService
	remark         *service.RemarkService
	advising       *service.AdvisingService
}

type controllers struct {
	auth           *controller.AuthController
	student        *controller.StudentController
	course         *controller.CourseController
	grade          *controller.GradeController
	recommendation *controller.RecommendationController
	insight        *controller.InsightController
	enrollment     *controller.EnrollmentController
	syllabus       *controller.SyllabusController
	remark         *controller.RemarkController
	advising       *controller.AdvisingController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		grade:      repository.NewGradeRepository(db),
		syllabus:   repository.NewSyllabusRepository(db),
		insight:    repository.NewInsightRepository(db),
		remark:     repository.NewRemarkRepository(db),
		advising:   repository.NewAdvisingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.student, cfg)

	ai, err := service.NewAIService(cfg.AI)
	if err != nil {
		if errors.Is(err, util.ErrNoAIProvider) {
			logger.Log.Error("no AI provider API key configured; insights degrade to rule-based")
		} else {
			logger.Log.Error("AI service init failed", zap.Error(err))
		}
		ai = service.NewAIServiceWithProviders(nil, nil)
	}
	s.ai = ai

	s.grade = service.NewGradeService(repos.grade, repos.syllabus)
	s.recommendation = service.NewRecommendationService(repos.student, repos.enrollment, repos.course, rdb)
	s.insight = service.NewInsightService(s.ai, s.grade, repos.student, repos.syllabus, repos.remark, repos.insight)
	s.resource = service.NewResourceService(s.ai)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.student, s.recommendation)
	s.syllabus = service.NewSyllabusService(repos.syllabus, s.storage, s.ai)
	s.remark = service.NewRemarkService(repos.remark)
	s.advising = service.NewAdvisingService(repos.advising)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		student:        controller.NewStudentController(repos.user, repos.student),
		course:         controller.NewCourseController(repos.course, s.syllabus),
		grade:          controller.NewGradeController(s.grade),
		recommendation: controller.NewRecommendationController(s.recommendation),
		insight:        controller.NewInsightController(s.insight, s.resource, s.grade, repos.syllabus, repos.insight),
		enrollment:     controller.NewEnrollmentController(s.enrollment),
		syllabus:       controller.NewSyllabusController(s.syllabus),
		remark:         controller.NewRemarkController(s.remark),
		advising:       controller.NewAdvisingController(s.advising),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("advising-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
