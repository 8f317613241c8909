package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-doctor-finder/config"
	deliveryHttp "go-doctor-finder/internal/delivery/http"
	"go-doctor-finder/internal/delivery/http/handler"
	"go-doctor-finder/internal/delivery/http/middleware"
	"go-doctor-finder/internal/infrastructure/cache"
	"go-doctor-finder/internal/infrastructure/metrics"
	"go-doctor-finder/internal/infrastructure/upstream"
	"go-doctor-finder/internal/repository"
	"go-doctor-finder/internal/service"
	"go-doctor-finder/internal/usecase"
	"go-doctor-finder/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	RedisClient *redis.Client
	Doctors     *service.DoctorCacheService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized. envFile
// may be missing; the environment and defaults still apply.
func New(envFile string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfigFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	customValidator := validator.NewValidator()
	if err := customValidator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %v", customValidator.FormatValidationErrors(err))
	}
	app.Config = cfg

	// Setup logger
	log, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize Redis (optional snapshot store)
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server, app.Doctors = initializeServer(cfg, log, redisClient, customValidator)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, redisClient *redis.Client, customValidator *validator.CustomValidator) (*http.Server, *service.DoctorCacheService) {
	m := metrics.New()

	// Initialize repositories
	upstreamClient := upstream.NewClient(cfg.Upstream, log, m)
	doctorRepo := repository.NewDoctorRepository(upstreamClient, log)
	snapshotRepo := repository.NewDoctorSnapshotRepository(redisClient, cfg.Redis.TTL)

	// Initialize services
	doctorCache := service.NewDoctorCacheService(doctorRepo, snapshotRepo, log, m)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(doctorCache, log, m)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	pageHandler := handler.NewPageHandler(doctorUsecase, log, cfg.App.RenderWait)

	// Initialize middleware
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, pageHandler, m.Handler(), loggingMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, doctorCache
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Warm the doctor list so the first page view rarely sees the loading state
	go func() {
		if _, err := app.Doctors.Get(context.Background()); err != nil {
			app.Log.Warnf("Failed to warm doctor list: %+v", err)
		}
	}()

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
