package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwhan/playgrid-backend/config"
	"github.com/jwhan/playgrid-backend/internal/app/controller"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/middleware"
	"github.com/jwhan/playgrid-backend/internal/realtime"
	"github.com/jwhan/playgrid-backend/internal/router"
	"github.com/jwhan/playgrid-backend/internal/scheduler"
	"github.com/jwhan/playgrid-backend/internal/storage"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"github.com/jwhan/playgrid-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PLAYGRID Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	gdb, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	db.ConfigureTxnBounds(cfg.Txn.LockWait, cfg.Txn.Timeout)

	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	cache, err := redis.Connect(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
		cache = nil
	} else {
		defer cache.Close()
	}

	hub := realtime.NewHub()
	go hub.Run()

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	gameRepo := repository.NewGameRepository(gdb)
	tagRepo := repository.NewTagRepository(gdb)
	devRepo := repository.NewDevRepository(gdb)
	libraryRepo := repository.NewLibraryRepository(gdb)
	friendshipRepo := repository.NewFriendshipRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	saveRepo := repository.NewSaveRepository(gdb)
	eventRepo := repository.NewEventRepository(gdb)
	achievementRepo := repository.NewAchievementRepository(gdb)
	newsRepo := repository.NewNewsRepository(gdb)

	// Services
	authService := service.NewAuthService(
		userRepo,
		gdb,
		cache,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo, gdb)
	gameService := service.NewGameService(gameRepo, gdb)
	tagService := service.NewTagService(tagRepo, gdb)
	devService := service.NewDevService(devRepo, gdb)
	libraryService := service.NewLibraryService(libraryRepo, gdb)
	friendshipService := service.NewFriendshipService(friendshipRepo, gdb, hub)
	reviewService := service.NewReviewService(reviewRepo, gdb)
	saveService := service.NewSaveService(saveRepo, gdb)
	eventService := service.NewEventService(eventRepo, gdb)
	achievementService := service.NewAchievementService(achievementRepo, gdb)
	newsService := service.NewNewsService(newsRepo, gdb, hub)

	// Controllers
	authController := controller.NewAuthController(authService, userService)
	userController := controller.NewUserController(userService)
	gameController := controller.NewGameController(gameService)
	tagController := controller.NewTagController(tagService)
	devController := controller.NewDevController(devService)
	libraryController := controller.NewLibraryController(libraryService)
	friendshipController := controller.NewFriendshipController(friendshipService)
	reviewController := controller.NewReviewController(reviewService)
	saveController := controller.NewSaveController(saveService)
	eventController := controller.NewEventController(eventService)
	achievementController := controller.NewAchievementController(achievementService)
	newsController := controller.NewNewsController(newsService)
	uploadController := controller.NewUploadController(s3Storage)
	realtimeController := controller.NewRealtimeController(hub)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, cache)

	eventScheduler := scheduler.NewEventScheduler(eventService)
	if err := eventScheduler.Start(); err != nil {
		logger.Fatal("Failed to start event scheduler", err)
	}
	defer eventScheduler.Stop()

	r := router.NewRouter(
		authController,
		userController,
		gameController,
		tagController,
		devController,
		libraryController,
		friendshipController,
		reviewController,
		saveController,
		eventController,
		achievementController,
		newsController,
		uploadController,
		realtimeController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
