package main

import (
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/middleware"
	"github.com/mahboube89/Training-Platform-Backend/routes"
	"github.com/mahboube89/Training-Platform-Backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := utils.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger and mailer
	logger := utils.InitLogger()
	mailer := utils.NewMailer(cfg)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Static assets
	app.Static("/"+utils.TutorialCoverDir, filepath.Join(cfg.StoragePath, utils.TutorialCoverDir))
	app.Static("/"+utils.TutorialVideoDir, filepath.Join(cfg.StoragePath, utils.TutorialVideoDir))
	app.Static("/"+utils.BlogCoverDir, filepath.Join(cfg.StoragePath, utils.BlogCoverDir))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, mailer)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
