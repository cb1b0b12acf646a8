package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nearest-blood-locator/config"
	deliveryHttp "nearest-blood-locator/internal/delivery/http"
	"nearest-blood-locator/internal/delivery/http/handler"
	"nearest-blood-locator/internal/delivery/http/middleware"
	domainRepo "nearest-blood-locator/internal/domain/repository"
	"nearest-blood-locator/internal/infrastructure/cache"
	"nearest-blood-locator/internal/infrastructure/database"
	"nearest-blood-locator/internal/repository"
	"nearest-blood-locator/internal/service"
	"nearest-blood-locator/internal/usecase"
	"nearest-blood-locator/pkg/jwt"
	"nearest-blood-locator/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the API server
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.Env)
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.Migration.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, NewPostgresDependencies(cfg, db, redisClient), logrus.StandardLogger()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(env string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	if env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
}

// Dependencies are the storage-facing collaborators of the usecases.
type Dependencies struct {
	Transactor domainRepo.Transactor
	Users      domainRepo.UserRepository
	Donors     domainRepo.DonorProfileRepository
	BloodBanks domainRepo.BloodBankRepository
	BloodStock domainRepo.BloodStockRepository
	Requests   domainRepo.BloodRequestRepository
	AuditLogs  domainRepo.AuditLogRepository
	TokenStore service.TokenStore
	StockCache service.StockCache
}

// NewPostgresDependencies backs every repository with postgres and the token
// whitelist and stock cache with Redis.
func NewPostgresDependencies(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) Dependencies {
	return Dependencies{
		Transactor: repository.NewTransactor(db),
		Users:      repository.NewUserRepository(db),
		Donors:     repository.NewDonorProfileRepository(db),
		BloodBanks: repository.NewBloodBankRepository(db),
		BloodStock: repository.NewBloodStockRepository(db),
		Requests:   repository.NewBloodRequestRepository(db),
		AuditLogs:  repository.NewAuditLogRepository(db),
		TokenStore: service.NewRedisTokenStore(redisClient),
		StockCache: service.NewRedisStockCache(redisClient, cfg.Cache.StockTTL),
	}
}

// NewHandler wires usecases, handlers and middleware and returns the routed API.
func NewHandler(cfg *config.Config, deps Dependencies, log *logrus.Logger) http.Handler {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	auditService := service.NewAuditService(log, deps.AuditLogs)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(log, deps.Transactor, deps.Users, auditService, jwtService, deps.TokenStore)
	donorUsecase := usecase.NewDonorUsecase(log, deps.Transactor, deps.Users, deps.Donors, auditService)
	bankUsecase := usecase.NewBloodBankUsecase(log, deps.Transactor, deps.BloodBanks, deps.BloodStock, auditService, deps.StockCache)
	stockUsecase := usecase.NewBloodStockUsecase(log, deps.Transactor, deps.BloodBanks, deps.BloodStock, auditService, deps.StockCache)
	requestUsecase := usecase.NewBloodRequestUsecase(log, deps.Transactor, deps.Requests, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, deps.AuditLogs)

	router := deliveryHttp.NewRouter(
		handler.NewAuthHandler(authUsecase, customValidator),
		handler.NewDonorHandler(donorUsecase, customValidator),
		handler.NewBloodBankHandler(bankUsecase, customValidator),
		handler.NewBloodStockHandler(stockUsecase, customValidator),
		handler.NewBloodRequestHandler(requestUsecase, customValidator),
		handler.NewAuditLogHandler(auditLogUsecase),
		middleware.NewAuthMiddleware(jwtService, deps.TokenStore, log),
		middleware.NewCORSMiddleware(cfg.App.AllowedOrigins...),
	)
	return router.Setup()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database and Redis connections.
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
