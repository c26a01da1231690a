package main

import (
	"fmt"
	"log"
	"net/http"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/handlers"
	"studyhub/internal/logging"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 2. Init DB
	if err := database.InitDB(cfg.DatabaseType, cfg.DatabaseDSN, logger); err != nil {
		logger.Fatal("failed to init database", zap.Error(err))
	}

	// 3. External collaborators
	storage, err := services.NewCloudinaryStorage(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudSecret)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPEmail)
	tokens := services.NewTokenService(cfg.JWTSecret)

	// 4. API Server
	e := echo.New()
	e.HideBanner = true
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadSize+(1<<20))))

	api := e.Group("/api")
	h := handlers.NewHandler(database.DB, cfg, tokens, mailer, storage, logger)
	handlers.RegisterRoutes(api, h)

	// Single-page frontend
	if cfg.IsProduction() {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true,
		}))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("StudyHub starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
