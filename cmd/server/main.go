package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/api"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/export"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/pkg/database"
	"github.com/taskboard/taskboard/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(logging.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting taskboard server",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Make sure the database directory exists
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create database directory", zap.Error(err))
		}
	}

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB, logger)
	projectRepo := repository.NewProjectRepository(db.DB, logger)
	taskRepo := repository.NewTaskRepository(db.DB, logger)
	reviewRepo := repository.NewReviewRepository(db.DB, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, logger)
	projectService := service.NewProjectService(projectRepo, taskRepo, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, taskRepo, logger)

	// Bootstrap the first administrator when configured
	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := userService.EnsureAdmin(context.Background(),
			cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			logger.Fatal("Failed to bootstrap administrator", zap.Error(err))
		}
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	exporter := export.NewExporter(logger)

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Handlers{
		Auth:     api.NewAuthHandler(userService, tokens, logger),
		Projects: api.NewProjectHandler(projectService, exporter, logger),
		Tasks:    api.NewTaskHandler(taskService, logger),
		Reviews:  api.NewReviewHandler(reviewService, logger),
	}, tokens, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
