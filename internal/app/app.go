package app

import (
	"context"
	"database/sql"
	"fmt"

	"ume_backend/internal/config"
	"ume_backend/internal/database"
	"ume_backend/internal/email"
	"ume_backend/internal/handlers"
	"ume_backend/internal/logger"
	"ume_backend/internal/middleware"
	"ume_backend/internal/repositories"
	"ume_backend/internal/routes"
	"ume_backend/internal/services"
	"ume_backend/internal/storage"
	"ume_backend/internal/validator"
	"ume_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database schema", "error", err)
	}
	if err := database.SeedCities(gormDB, cfg.Cities.SeedPath); err != nil {
		logger.Fatal("Failed to seed cities", "error", err)
	}

	tokenWorker := workers.NewTokenWorker(gormDB)
	tokenWorker.Start(context.Background())

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	// Локальное хранилище раздает файлы само приложение,
	// для s3 их отдает бакет по публичному URL
	if cfg.Storage.Type == "local" {
		ginRouter.Static("/api/v1/files", cfg.Storage.BasePath)
	}

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not configured. Using noop email provider.")
		emailProvider = &NoopEmailProvider{}
	} else {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    cfg.Email.UseTLS,
		})
	}

	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewTokenRepository()
	photoRepo := repositories.NewPhotoRepository()
	cityRepo := repositories.NewCityRepository()

	tokenService := services.NewTokenService(tokenRepo, userRepo)
	authService := services.NewAuthService(userRepo, tokenRepo, cityRepo, tokenService, emailProvider)
	verificationService := services.NewVerificationService(userRepo, photoRepo, storageInstance, emailProvider, cfg.Upload.MaxSize)
	photoService := services.NewPhotoService(userRepo, photoRepo, storageInstance, cfg.Upload.MaxPhotos, cfg.Upload.MaxSize)
	profileService := services.NewProfileService(userRepo, photoRepo, cityRepo, storageInstance)
	cityService := services.NewCityService(cityRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		TokenService:        tokenService,
		VerificationService: verificationService,
		PhotoService:        photoService,
		ProfileService:      profileService,
		CityService:         cityService,
		EmailProvider:       emailProvider,
		Storage:             storageInstance,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		VerificationHandler: handlers.NewVerificationHandler(baseHandler, container.VerificationService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.ProfileService, container.PhotoService, container.TokenService),
		CityHandler:         handlers.NewCityHandler(baseHandler, container.CityService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
