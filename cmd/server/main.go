package main

import (
	"log"
	"strings"
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/bootstrap"
	"github.com/SyaefulEffendi/bahasaku-server/internal/config"
	"github.com/SyaefulEffendi/bahasaku-server/internal/detector"
	"github.com/SyaefulEffendi/bahasaku-server/internal/handler"
	"github.com/SyaefulEffendi/bahasaku-server/internal/middleware"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/internal/service"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/database"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/logger"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv == "development")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db := database.Connect(cfg.DatabaseURL)
	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db, zlog); err != nil {
			zlog.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("invalid redis url", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
	} else {
		zlog.Warn("REDIS_URL not set, login rate limiting disabled")
	}

	media, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		zlog.Fatal("failed to initialize media storage", zap.Error(err))
	}

	var model detector.Client
	if cfg.ModelURL != "" {
		httpClient, err := detector.NewHTTPClient(cfg.ModelURL)
		if err != nil {
			zlog.Warn("detection model unavailable", zap.Error(err))
		} else {
			model = httpClient
		}
	} else {
		zlog.Warn("MODEL_URL not set, detection endpoint will report unavailable")
	}

	userRepo := repository.NewUserRepository(db)
	kosaKataRepo := repository.NewKosaKataRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	informationRepo := repository.NewInformationRepository(db)

	authService := service.NewAuthService(userRepo, rdb, cfg.JWTSecret, cfg.SessionTokenTTL, cfg.RememberTokenTTL, cfg.LoginLockWindow)
	userService := service.NewUserService(userRepo, media, zlog)
	kosaKataService := service.NewKosaKataService(kosaKataRepo, userRepo, media, zlog)
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo)
	informationService := service.NewInformationService(informationRepo, userRepo, media, zlog)
	detectionService := service.NewDetectionService(model, cfg.ModelMinConfidence, kosaKataRepo, zlog)

	authHandler := handler.NewAuthHandler(authService, zlog)
	userHandler := handler.NewUserHandler(userService, zlog)
	kosaKataHandler := handler.NewKosaKataHandler(kosaKataService, zlog)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, zlog)
	informationHandler := handler.NewInformationHandler(informationService, zlog)
	detectionHandler := handler.NewDetectionHandler(detectionService, zlog)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Static(storage.URLPrefix, cfg.MediaRoot)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authMiddleware.OptionalAuth(), authHandler.Register)
			users.POST("/login", authHandler.Login)

			users.GET("", authMiddleware.RequireAuth(), userHandler.GetAll)
			users.GET("/:id", authMiddleware.RequireAuth(), userHandler.GetByID)
			users.PUT("/:id", authMiddleware.RequireAuth(), userHandler.Update)
			users.PATCH("/:id", authMiddleware.RequireAuth(), userHandler.Update)
			users.DELETE("/:id", authMiddleware.RequireAuth(), userHandler.Delete)
			users.POST("/:id/photo", authMiddleware.RequireAuth(), userHandler.UploadPhoto)
			users.PUT("/:id/change-password", authMiddleware.RequireAuth(), userHandler.ChangePassword)
		}

		vocabulary := api.Group("/vocabulary")
		{
			vocabulary.GET("", kosaKataHandler.GetAll)
			vocabulary.GET("/:id", kosaKataHandler.GetByID)
			vocabulary.POST("", authMiddleware.RequireAuth(), kosaKataHandler.Create)
			vocabulary.PUT("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Update)
			vocabulary.PATCH("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Update)
			vocabulary.DELETE("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Delete)
		}

		feedback := api.Group("/feedback")
		{
			feedback.GET("", feedbackHandler.GetAll)
			feedback.GET("/:id", feedbackHandler.GetByID)
			feedback.POST("", authMiddleware.RequireAuth(), feedbackHandler.Create)
			feedback.PUT("/:id", authMiddleware.RequireAuth(), feedbackHandler.UpdateStatus)
			feedback.DELETE("/:id", authMiddleware.RequireAuth(), feedbackHandler.Delete)
		}

		information := api.Group("/information")
		{
			information.GET("", informationHandler.GetAll)
			information.GET("/:id", informationHandler.GetByID)
			information.POST("", authMiddleware.RequireAuth(), informationHandler.Create)
			information.PUT("/:id", authMiddleware.RequireAuth(), informationHandler.Update)
			information.DELETE("/:id", authMiddleware.RequireAuth(), informationHandler.Delete)
		}

		api.POST("/ai/predict", detectionHandler.Predict)
	}

	zlog.Info("starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}
