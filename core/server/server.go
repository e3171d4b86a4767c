package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akius1/cv-review-sub000/core/cache"
	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/config"
	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/core/middleware"
	"github.com/Akius1/cv-review-sub000/modules/availability"
	"github.com/Akius1/cv-review-sub000/modules/booking"
	"github.com/Akius1/cv-review-sub000/modules/meeting"
	"github.com/Akius1/cv-review-sub000/modules/notification"
	notificationWorker "github.com/Akius1/cv-review-sub000/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server: config, logging, storage, cache, the async
// email worker, and every module's routes. Blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	cacheClient, err := cache.Init(cfg.Redis)
	if err != nil {
		return err
	}
	defer cacheClient.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	notificationWorker.RegisterHandlers(mux)
	if err := asynqServer.Start(mux); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.New(cacheClient)
	clk := clock.System

	notificationSvc := notification.Init(e, db, mw, asynqClient)
	slotRepo := availability.Init(e, db, mw, clk)
	provisioner := meeting.Init(e, db, mw, clk)
	booking.Init(e, db, mw, slotRepo, provisioner, notificationSvc, clk)

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", err)
		}
	}()
	logger.Info("Server started", "addr", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
