// Command worker runs the daily reminder scheduler and its internal
// operations HTTP surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"fundwerk/internal/config"
	"fundwerk/internal/database"
	"fundwerk/internal/handlers"
	"fundwerk/internal/logger"
	"fundwerk/internal/mail"
	"fundwerk/internal/middleware"
	"fundwerk/internal/observability/metrics"
	"fundwerk/internal/reminder"
	"fundwerk/internal/services"
	fwvalidator "fundwerk/internal/validator"
)

// instrumentedRunner wraps the engine so every trigger path, cron or manual,
// records the same metrics.
type instrumentedRunner struct {
	engine *reminder.Engine
}

func (r *instrumentedRunner) Run(ctx context.Context) (*reminder.RunResult, error) {
	return r.record(r.engine.Run(ctx))
}

func (r *instrumentedRunner) RunAsOf(ctx context.Context, now time.Time) (*reminder.RunResult, error) {
	return r.record(r.engine.RunAsOf(ctx, now))
}

func (r *instrumentedRunner) record(result *reminder.RunResult, err error) (*reminder.RunResult, error) {
	switch {
	case errors.Is(err, reminder.ErrRunInProgress):
		metrics.RecordRun(metrics.ResultSkipped, 0)
	case err != nil:
		metrics.RecordRun(metrics.ResultError, 0)
	default:
		metrics.RecordRun(metrics.ResultSuccess, result.Duration)
		metrics.RecordRunTotals(result.ProductsEvaluated, result.Matured, result.NotificationsCreated, result.EmailsSent)
	}
	return result, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalw("failed to load configuration", "error", err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.Get()

	fwvalidator.Register()
	metrics.Init()

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	if err := dbManager.Migrate(); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}
	db := dbManager.DB()

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPMailer(cfg)
		if err != nil {
			log.Fatalw("failed to configure SMTP mailer", "error", err)
		}
	} else {
		log.Warnw("no SMTP host configured, using log-only mail delivery")
		mailer = mail.LogMailer{}
	}

	notifications := services.NewNotificationService(db)
	engine := reminder.NewEngine(
		services.NewProductService(db),
		services.NewHoldingService(db),
		services.NewTransactionService(db),
		services.NewUserService(db),
		notifications,
		mailer,
	)
	runner := &instrumentedRunner{engine: engine}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.WorkerCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := runner.Run(ctx); err != nil {
			if errors.Is(err, reminder.ErrRunInProgress) {
				log.Warnw("scheduled run skipped, previous run still in progress")
				return
			}
			log.Errorw("scheduled run failed", "error", err)
		}
	}); err != nil {
		log.Fatalw("invalid cron expression", "cron", cfg.WorkerCron, "error", err)
	}
	scheduler.Start()
	log.Infow("scheduler started", "cron", cfg.WorkerCron)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogging())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	workerHandler := handlers.NewWorkerHandler(runner, notifications)
	internal := router.Group("/internal", middleware.InternalAuthMiddleware(cfg.InternalAPIKey))
	internal.POST("/run", workerHandler.TriggerRun)
	internal.GET("/notifications", workerHandler.ListNotifications)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("worker listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutting down")

	cronCtx := scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}

	// Let an in-flight scheduled run finish before exiting.
	select {
	case <-cronCtx.Done():
	case <-time.After(5 * time.Minute):
		log.Warnw("timed out waiting for scheduled run to finish")
	}
}
