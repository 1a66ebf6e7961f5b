package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internview-backend/config"
	_ "internview-backend/docs" // Important for Swagger
	v1 "internview-backend/internal/delivery/http/v1"
	"internview-backend/internal/repository/postgres"
	"internview-backend/internal/usecase"
	"internview-backend/pkg/database"
	"internview-backend/pkg/logger"
	"internview-backend/pkg/redis"
	"internview-backend/pkg/security"
	"internview-backend/pkg/security/antivirus"
	"internview-backend/pkg/storage"
)

var version = "1.0.0"

// @title           InternView API
// @version         1.0
// @description     Internship and job matching backend: users, CVs, vacancies and applications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting internview backend", "port", cfg.Port, "version", version)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolOptions{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// 4. Optional Redis for shared rate limit counters
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 5. Setup File Storage
	var (
		store     storage.Storage
		uploadDir string
	)
	switch cfg.StorageDriver {
	case "s3":
		store, err = storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
		})
	default:
		var local *storage.LocalStorage
		local, err = storage.NewLocalStorage(cfg.UploadDir(), "/uploads")
		if err == nil {
			store, uploadDir = local, local.Dir()
		}
	}
	if err != nil {
		logger.Log.Error("Failed to initialise file storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)
	vacancyRepo := postgres.NewVacancyRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup Security
	audit := security.NewProductionSecurityLogger(usecase.ServiceName)
	defer func() { _ = audit.Sync() }()
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	lockout := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.LoginMaxAttempts,
		AttemptWindow: cfg.LoginBlockDuration,
		BlockDuration: cfg.LoginBlockDuration,
	}, audit)

	// 8. Setup UseCases
	uploads := usecase.NewUploader(store, cfg.MaxCVSizeMB, cfg.MaxImageSizeMB)
	var clamav *antivirus.ClamAVScanner
	if cfg.ClamAVAddress != "" {
		clamav = antivirus.NewClamAVScanner(cfg.ClamAVAddress, cfg.ClamAVTimeout)
		uploads.WithScanner(clamav)
	}

	userUC := usecase.NewUserUsecase(userRepo, cvRepo, uploads, tokens, lockout)
	cvUC := usecase.NewCVUsecase(cvRepo, uploads)
	vacancyUC := usecase.NewVacancyUsecase(vacancyRepo, cfg.VacancyListFallback)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, vacancyRepo, cvRepo)

	checks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if clamav != nil {
		checks["clamav"] = clamav.Ping
	}
	healthUC := usecase.NewHealthUsecase(version, checks)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:                   userUC,
		CVUC:                     cvUC,
		VacancyUC:                vacancyUC,
		ApplicationUC:            applicationUC,
		HealthUC:                 healthUC,
		Tokens:                   tokens,
		Redis:                    redisClient,
		Audit:                    audit,
		AllowedOrigins:           cfg.AllowedOrigins,
		UploadDir:                uploadDir,
		MaxCVBytes:               int64(cfg.MaxCVSizeMB) << 20,
		MaxImageBytes:            int64(cfg.MaxImageSizeMB) << 20,
		RateLimitLoginPerMinute:  cfg.RateLimitLoginPerMinute,
		RateLimitUploadPerMinute: cfg.RateLimitUploadPerMinute,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
