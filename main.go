package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	logrus "github.com/sirupsen/logrus"

	"accidenta/internal/config"
	"accidenta/internal/database"
	"accidenta/internal/handlers"
	"accidenta/internal/logger"
	"accidenta/internal/middleware"
	"accidenta/internal/repositories"
	"accidenta/internal/services"
	"accidenta/pkg/mailer"
	"accidenta/pkg/rabbitmq"
)

func main() {
	logger.Setup()

	cfg := config.Load()

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logrus.Fatalf("Failed to create uploads directory: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// The broker is an optional side channel; the service runs without it.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logrus.Warnf("RabbitMQ unavailable, report events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	sender := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	// Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)
	healthRepo := repositories.NewGORMHealthDataRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	reportService := services.NewReportService(reportRepo, userRepo, contactRepo, sender, mqClient)
	userService := services.NewUserService(userRepo, contactRepo, healthRepo)
	statisticsService := services.NewStatisticsService(reportRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.UploadsDir)
	reportHandler := handlers.NewReportHandler(reportService, cfg.UploadsDir)
	userHandler := handlers.NewUserHandler(userService, reportService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Static("/uploads", cfg.UploadsDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	authHandler.RegisterRoutes(app)

	// Protected routes
	protected := app.Group("", middleware.AuthRequired(authService))
	reportHandler.RegisterRoutes(protected)
	userHandler.RegisterRoutes(protected)
	statisticsHandler.RegisterRoutes(protected)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logrus.Errorf("Error during shutdown: %v", err)
	}
	logrus.Info("Server gracefully stopped")
}
