package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/controller"
	"tamanedu_backend/internal/ocr"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/service"
	"tamanedu_backend/pkg/database"
	"tamanedu_backend/pkg/logger"
	"tamanedu_backend/pkg/monitoring"
	"tamanedu_backend/pkg/security"
	"tamanedu_backend/pkg/tracing"

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
	user      *repository.UserRepository
	session   *repository.SessionRepository
	student   *repository.StudentRepository
	worksheet *repository.WorksheetRepository
	answerKey *repository.AnswerKeyRepository
	response  *repository.ResponseRepository
	grade     *repository.GradeRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	session   *service.SessionService
	answerKey *service.AnswerKeyService
	worksheet *service.WorksheetService
	grading   *service.GradingService
	report    *service.ReportService
}

type controllers struct {
	auth      *controller.AuthController
	session   *controller.SessionController
	worksheet *controller.WorksheetController
	answerKey *controller.AnswerKeyController
	grading   *controller.GradingController
	report    *controller.ReportController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		session:   repository.NewSessionRepository(db),
		student:   repository.NewStudentRepository(db),
		worksheet: repository.NewWorksheetRepository(db),
		answerKey: repository.NewAnswerKeyRepository(db),
		response:  repository.NewResponseRepository(db),
		grade:     repository.NewGradeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.session = service.NewSessionService(repos.session, repos.student)
	s.answerKey = service.NewAnswerKeyService(repos.answerKey)

	ocrClient := ocr.NewClient(&cfg.OCR)
	s.worksheet = service.NewWorksheetService(
		repos.worksheet,
		repos.response,
		repos.session,
		repos.student,
		s.storage,
		ocrClient,
		rdb,
		cfg,
	)

	s.grading = service.NewGradingService(
		db,
		repos.grade,
		repos.response,
		repos.answerKey,
		repos.student,
		repos.session,
		rdb,
		cfg,
	)

	s.report = service.NewReportService(
		repos.grade,
		repos.student,
		repos.response,
		rdb,
		cfg,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		session:   controller.NewSessionController(s.session),
		worksheet: controller.NewWorksheetController(s.worksheet, s.session),
		answerKey: controller.NewAnswerKeyController(s.answerKey, s.session),
		grading:   controller.NewGradingController(s.grading, s.session),
		report:    controller.NewReportController(s.report, s.session),
		health:    controller.NewHealthController(db),
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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tamanedu-grading", cfg.Tracing.CollectorEndpoint); err != nil {
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
