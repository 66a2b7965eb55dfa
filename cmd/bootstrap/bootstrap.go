package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-portal/config"
	deliveryHttp "doctor-portal/internal/delivery/http"
	"doctor-portal/internal/delivery/http/handler"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/infrastructure/cache"
	"doctor-portal/internal/infrastructure/database"
	"doctor-portal/internal/repository"
	"doctor-portal/internal/service"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/monitoring"
	"doctor-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "doctor-portal"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Gateway     *database.Gateway
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := NewLogger(cfg.Log)
	app.Log = log
	log.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize database
	app.Gateway = database.NewGateway(cfg.DB, log)
	db, err := app.Gateway.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.App.AutoMigrate {
		if err := database.MigrateUp(db, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	// Redis only backs the login throttle; run without it rather than fail.
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warnf("Redis unavailable, login throttling disabled: %v", err)
	} else {
		app.RedisClient = redisClient
	}

	server, err := initializeServer(ctx, cfg, log, db, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// NewLogger builds the JSON logger used across the application.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(ctx context.Context, cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	metrics := monitoring.NewMetricsCollector(serviceName)

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	sequence := service.NewSequenceService(log, counterRepo)
	if err := sequence.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize counters: %w", err)
	}

	passwords, err := service.NewPasswordService(cfg.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hashing: %w", err)
	}

	throttle := service.NewNoopLoginThrottle()
	if redisClient != nil {
		throttle = service.NewLoginThrottle(redisClient, cfg.Security.LoginMaxAttempts, cfg.Security.LoginAttemptsTTL)
	}

	auditService := service.NewAuditService(log, auditRepo, metrics)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, customValidator, doctorRepo, sequence, passwords, throttle, auditService, jwtService, cfg.App.NameTitle)
	profileUsecase := usecase.NewDoctorProfileUsecase(log, customValidator, doctorRepo, passwords, auditService, cfg.App.NameTitle)
	patientUsecase := usecase.NewPatientUsecase(log, customValidator, patientRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(log, customValidator, patientRepo, prescriptionRepo, auditService)
	suggestionUsecase := usecase.NewSuggestionUsecase(log, customValidator, service.NewStaticSuggester())

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		handler.NewAuthHandler(authUsecase, cfg.Session, metrics),
		handler.NewDoctorHandler(profileUsecase),
		handler.NewPatientHandler(patientUsecase),
		handler.NewPrescriptionHandler(prescriptionUsecase),
		handler.NewSuggestionHandler(suggestionUsecase),
		middleware.NewAuthMiddleware(jwtService, cfg.Session),
		middleware.NewCORSMiddleware(cfg.CORS),
		metrics,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.Gateway != nil {
		if err := app.Gateway.Close(); err != nil {
			app.Log.Warnf("Failed to close database: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
