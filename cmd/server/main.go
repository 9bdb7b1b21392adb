package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"dataconsult/docs"
	"dataconsult/internal/auth"
	"dataconsult/internal/cache"
	"dataconsult/internal/config"
	"dataconsult/internal/db"
	"dataconsult/internal/handler"
	"dataconsult/internal/repository"
	"dataconsult/internal/router"
	"dataconsult/internal/service"
	"dataconsult/internal/storage"
)

// @title DataConsult API
// @version 1.0
// @description Back office and public content API for the DataConsult site.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
// @description Session JWT from the session cookie, or "Bearer <token>".
func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("database init", "error", err)
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, logger)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := connectCache(cfg.Redis, logger)

	var objectStore service.ObjectStore
	if minioClient, err := storage.NewClient(cfg.MinIO); err != nil {
		logger.Warn("object storage unavailable, uploads disabled", "endpoint", cfg.MinIO.Endpoint, "error", err)
	} else {
		objectStore = minioClient
	}
	var scanner service.VirusScanner
	if s := storage.NewScanner(cfg.ClamdAddr); s != nil {
		scanner = s
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	solutionRepo := repository.NewSolutionRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	faqRepo := repository.NewFAQRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessionService(cfg.Session.JWTSecret, cfg.Session.TTL, cfg.Session.RefreshTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	notifier := service.NewNotificationService(notificationRepo, logger)
	uploads := service.NewUploadService(objectStore, scanner)
	authService := service.NewAuthService(userRepo, sessions, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient, objectStore, logger)
	jobService := service.NewJobService(jobRepo, cacheClient)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, notifier, logger)
	blogService := service.NewBlogService(blogRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, blogRepo)
	solutionService := service.NewSolutionService(solutionRepo, cacheClient)
	contactService := service.NewContactService(contactRepo, notifier)
	faqService := service.NewFAQService(faqRepo, notifier)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, sessions, router.Handlers{
		Auth:          handler.NewAuthHandler(authService, sessions, cfg.Session),
		Jobs:          handler.NewJobHandler(jobService),
		Applications:  handler.NewApplicationHandler(applicationService, uploads),
		Blogs:         handler.NewBlogHandler(blogService, categoryService),
		Solutions:     handler.NewSolutionHandler(solutionService),
		Users:         handler.NewUserHandler(userService, uploads),
		Submissions:   handler.NewSubmissionHandler(contactService, faqService),
		Notifications: handler.NewNotificationHandler(notifier),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	logger.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := cacheClient.Close(); err != nil {
		logger.Warn("close redis", "error", err)
	}
	logger.Info("server stopped")
}

// connectCache returns nil when redis does not answer, so every cache call
// short-circuits instead of redialing.
func connectCache(cfg config.RedisConfig, logger *slog.Logger) *cache.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := cache.New(cfg)
	if err := client.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, running without cache", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
