package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/stats"
	"learnhub/backend/utils"
)

func main() {
	recalculate := flag.Bool("recalculate", false, "recalculate course stats from enrollments and reviews, then exit")
	flag.Parse()

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

	// Initialize logger
	logger, err := utils.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Maintenance mode: correct drifted course stats and exit.
	if *recalculate {
		updated, err := stats.NewReconciler(db, logger).ReconcileAll()
		if err != nil {
			logger.Fatal("recalculation failed", zap.Error(err))
		}
		logger.Info("recalculation complete", zap.Int("coursesUpdated", updated))
		return
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, logger, cfg)

	// Start server
	logger.Info("server listening", zap.String("port", cfg.ServerPort))
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
