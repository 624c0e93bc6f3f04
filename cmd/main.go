package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/planner-block-scheduling/internal/config"
	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/handler"
	"github.com/KasumiMercury/planner-block-scheduling/internal/health"
	"github.com/KasumiMercury/planner-block-scheduling/internal/infra/changefeed"
	"github.com/KasumiMercury/planner-block-scheduling/internal/infra/deliveryrecorder"
	"github.com/KasumiMercury/planner-block-scheduling/internal/infra/notifier"
	"github.com/KasumiMercury/planner-block-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/planner-block-scheduling/internal/runner"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/actions"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/conflict"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/queue"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/scheduling"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logging.Setup(cfg.LogLevel, "block-scheduling")

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	schedulingMetrics, err := metrics.NewSchedulingMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduling metrics", slog.String("error", err.Error()))
		return 1
	}

	db, err := repository.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		slog.Error("failed to connect postgres",
			slog.String("event", "postgres.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close postgres pool", slog.String("error", err.Error()))
		}
	}()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		return 1
	}

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("dependencies connected",
		slog.String("redis_addr", cfg.Redis.Addr),
	)

	recorderCfg := deliveryrecorder.LoadConfig()
	deliveryRecorder, err := deliveryrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize delivery recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := deliveryRecorder.Close(); err != nil {
			slog.Warn("failed to close delivery recorder", slog.String("error", err.Error()))
		}
	}()

	blockRepo := repository.NewBlockRepository(db)
	blockTypeRepo := repository.NewBlockTypeRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	preferencesRepo := repository.NewPreferencesRepository(db)

	feed := changefeed.NewRedisChangeFeed(redisClient)

	var osNotifier domain.Notifier
	if cfg.Notifier.WebhookURL != "" {
		osNotifier = notifier.NewWebhookNotifier(cfg.Notifier.WebhookURL, cfg.Notifier.MaxRetries)
	} else {
		slog.Warn("no webhook endpoint configured, notifications are log-only")
		osNotifier = notifier.NewLogNotifier()
	}

	resolver := conflict.NewResolver(blockRepo, calendarRepo)
	schedulingService := scheduling.NewService(blockRepo, blockTypeRepo, resolver, feed)
	queueService := queue.NewService(notificationRepo, preferencesRepo, schedulingMetrics)
	actionsService := actions.NewService(blockRepo, notificationRepo, feed)

	schedulerRunner := runner.NewSchedulerRunner(
		cfg.UserID, blockRepo, blockTypeRepo, queueService, feed, schedulingMetrics,
		runner.SchedulerOptions{
			Interval:        cfg.Scheduler.Interval,
			Lookahead:       cfg.Scheduler.Lookahead,
			Debounce:        cfg.Scheduler.Debounce,
			MinTickInterval: cfg.Scheduler.MinTickInterval,
			CleanupDays:     cfg.Scheduler.CleanupDays,
		})
	deliveryRunner := runner.NewDeliveryRunner(
		cfg.UserID, queueService, osNotifier, deliveryRecorder, schedulingMetrics,
		cfg.Scheduler.DeliveryPoll)

	if err := schedulerRunner.Start(ctx); err != nil {
		slog.Error("failed to start scheduler runner", slog.String("error", err.Error()))
		return 1
	}
	defer schedulerRunner.Stop()

	if err := deliveryRunner.Start(ctx); err != nil {
		slog.Error("failed to start delivery runner", slog.String("error", err.Error()))
		return 1
	}
	defer deliveryRunner.Stop()

	blockHandler := handler.NewBlockHandler(schedulingService, resolver)
	notificationHandler := handler.NewNotificationHandler(actionsService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger([]string{"/health", "/health/live", "/health/ready"}))
	r.Use(middleware.PanicRecovery())

	// Health check endpoints
	healthChecker := health.NewChecker(db, redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/blocks/schedule", blockHandler.HandleSchedule)
		v1.POST("/blocks/reschedule", blockHandler.HandleReschedule)
		v1.POST("/blocks/suggest", blockHandler.HandleSuggest)
		v1.POST("/blocks/recurring/generate", blockHandler.HandleGenerateRecurring)
		v1.POST("/block-types", blockHandler.HandleCreateBlockType)
		v1.POST("/notifications/action", notificationHandler.HandleAction)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("user_id", cfg.UserID),
			slog.Duration("scheduler_interval", cfg.Scheduler.Interval),
			slog.Duration("lookahead", cfg.Scheduler.Lookahead),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
