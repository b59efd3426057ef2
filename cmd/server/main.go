package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/handlers"
	"eventhub-backend/internal/mailer"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/services"
	"eventhub-backend/pkg/database"
	"eventhub-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	logger.Init()

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	repo := repositories.NewRepository(db)
	mail := mailer.New(cfg)

	authSvc := services.NewAuthService(repo, cfg)
	eventSvc := services.NewEventService(repo)
	attendeeSvc := services.NewAttendeeService(repo, cfg, mail)
	statsSvc := services.NewStatsService(repo)

	handler := handlers.NewHandler(authSvc, eventSvc, attendeeSvc, statsSvc, cfg)

	app := fiber.New(fiber.Config{
		AppName:      "EventHub API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if err := os.MkdirAll(cfg.QRDir, 0755); err != nil {
		log.Fatalf("Failed to create QR directory: %v", err)
	}
	app.Static("/qrcodes", cfg.QRDir)

	api := app.Group("/api/v1")
	handler.RegisterRoutes(api)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
