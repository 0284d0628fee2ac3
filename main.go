package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/database"
	"bodyscan-engine/internal/handlers"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/middleware"
	"bodyscan-engine/internal/vision"
	"bodyscan-engine/internal/visionqueue"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLog := logger.New()
	if cfg.Logging.EnableDebug {
		appLog.SetLevel(logger.DEBUG)
	}

	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		appLog.Error("failed to initialize database", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("error closing database", "error", err.Error())
		}
	}()

	newPipeline := func() *vision.Pipeline { return vision.New(cfg.Vision, appLog) }
	queue := visionqueue.New(newPipeline(), appLog, 64)
	queue.SetResultHook(func(res visionqueue.Result) {
		if res.Err != nil {
			return
		}
		if err := database.SaveVisionRecord(db, &res.Record); err != nil {
			appLog.Error("failed to persist vision record", "taskId", res.TaskID, "error", err.Error())
		}
	})

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go func() {
		if err := visionqueue.Run(workerCtx, queue, cfg.Vision.WorkerConcurrency, newPipeline); err != nil && err != context.Canceled {
			appLog.Error("vision worker pool stopped", "error", err.Error())
		}
	}()

	e := echo.New()
	e.Validator = &requestValidator{validator: validator.New()}

	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appLog.HTTPLogger())
	e.Use(middleware.CORS())
	e.Use(middleware.Security())
	e.Use(middleware.RateLimit(cfg))
	e.Use(middleware.OptionalJWT())
	e.Use(middleware.UserRateLimit(2, 5))

	middleware.SetupErrorHandler(e)

	e.GET("/health", handlers.HealthCheckHandler(db, queue))

	scanHandler := handlers.NewScanHandler(queue, db, cfg.Vision, appLog)
	handlers.RegisterScanRoutes(e, scanHandler)

	planHandler := handlers.NewPlanHandler(db, cfg.Nutrition, appLog)
	handlers.RegisterPlanRoutes(e, planHandler)

	errorChan := make(chan error, 1)
	go func() {
		if err := e.Start(cfg.Server.Host + ":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			errorChan <- err
		}
	}()

	appLog.Info("server started", "port", cfg.Server.Port, "workerConcurrency", cfg.Vision.WorkerConcurrency)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errorChan:
		appLog.Error("failed to start server", "error", err.Error())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if shutdownErr := e.Shutdown(ctx); shutdownErr != nil {
			appLog.Error("server forced to shutdown after start error", "error", shutdownErr.Error())
		}
		os.Exit(1)
	case <-quit:
		appLog.Info("received shutdown signal")
	}

	appLog.Info("shutting down server")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLog.Error("server forced to shutdown", "error", err.Error())
	}

	appLog.Info("server exited")
}

// requestValidator adapts go-playground/validator to Echo's Validator
// interface, the same wrapper shape the teacher uses for request binding.
type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
