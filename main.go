package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"livestock-app/config"
	"livestock-app/controllers/helpers"
	"livestock-app/controllers/idgen"
	"livestock-app/database"
	"livestock-app/logger"
	"livestock-app/metrics"
	"livestock-app/middleware"
	"livestock-app/migration"
	"livestock-app/notification"
	"livestock-app/routes"
	"livestock-app/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	log := logger.Must(logger.New(config.LogLevel, config.LogDirectory))
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := config.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Open(log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to auto migrate", zap.Error(err))
	}

	idgen.Init()
	database.RunSeeders(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return ctx.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
			}
			return helpers.ErrorResponse(ctx, err)
		},
	})
	app.Use(recover.New())

	// Setup CORS middleware
	config.SetupCORS(app)
	app.Use(metrics.Middleware())
	app.Use(middleware.RequestLogger(logger.Named(log, "http")))
	app.Get("/metrics", metrics.Handler())

	routes.SetupRoutes(app, db, notification.FromConfig(logger.Named(log, "mail")))

	if config.WeightUpdateEnabled {
		worker := workers.NewWeightUpdateWorker(db, config.WeightUpdateSchedule, config.WeightDailyGainKg, logger.Named(log, "weight"))
		if err := worker.Start(); err != nil {
			log.Fatal("failed to start weight update worker", zap.Error(err))
		}
		defer worker.Stop()
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	port := config.APP_PORT
	log.Info("server started", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
