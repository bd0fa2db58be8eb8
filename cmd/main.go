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
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/config"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/handler"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/health"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/deliveryrecorder"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/gatestore"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/tasksource"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/logging"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/metrics"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/middleware"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/scheduler"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/candidate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/gate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/present"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/rank"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/urgency"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.PushQueue.Validate(); err != nil {
		slog.Error("push queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	alertMetrics, err := metrics.NewAlertMetrics()
	if err != nil {
		slog.Error("failed to initialize alert metrics", slog.String("error", err.Error()))
		return 1
	}

	// Delivery result recorder (InfluxDB for local, BigQuery for gcloud)
	recorderCfg := deliveryrecorder.LoadConfig()
	resultRecorder, err := deliveryrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize delivery result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close delivery result recorder", slog.String("error", err.Error()))
		}
	}()

	taskSource, sourceCleanup, err := initTaskSource(cfg)
	if err != nil {
		slog.Error("failed to initialize task source", slog.String("error", err.Error()))
		return 1
	}
	if sourceCleanup != nil {
		defer sourceCleanup()
	}

	pushQueue, queueCleanup, err := initPushQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize push queue", slog.String("error", err.Error()))
		return 1
	}
	if queueCleanup != nil {
		defer func() {
			if err := queueCleanup(); err != nil {
				slog.Error("push queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	panelStore, deadlineStore, redisClient, err := initGateStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize gate stores", slog.String("error", err.Error()))
		return 1
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	panelGate := gate.New(panelStore, cfg.Alert.PanelCooldown)
	deadlineGate := gate.New(deadlineStore, cfg.Alert.DeadlineCooldown)

	model := present.NewModel()
	dispatcher := dispatch.NewDispatcher(pushQueue, dispatch.Config{
		PushPermission: cfg.Alert.PushPermission,
		Origin:         cfg.Alert.DashboardOrigin,
	}, alertMetrics)

	coordinator := alert.NewCoordinator(alert.Config{
		Source:       taskSource,
		Filter:       candidate.NewFilter(),
		Ranker:       rank.NewRanker(urgency.NewClassifier()),
		Dispatcher:   dispatcher,
		Model:        model,
		Recorder:     resultRecorder,
		Metrics:      alertMetrics,
		PanelGate:    panelGate,
		DeadlineGate: deadlineGate,
		FetchTimeout: cfg.Alert.FetchTimeout,
		PanelLimit:   cfg.Alert.PanelAlertLimit,
	})

	alertHandler := handler.NewAlertHandler(coordinator, model)
	sessionHandler := handler.NewSessionHandler(coordinator)
	dismissHandler := handler.NewDismissHandler(dispatcher)

	// Router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("deadline-alerting"),
		Worker:     true,
		TracerName: "github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if surface := c.Query("surface"); surface != "" {
				return c.Request.Method + " " + c.FullPath() + "?surface=" + surface
			}
			return c.Request.Method + " " + c.FullPath()
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/alerts/check", alertHandler.HandleCheck)
		v1.GET("/alerts", alertHandler.HandleList)
		v1.GET("/alerts/current", alertHandler.HandleCurrent)
		v1.POST("/alerts/cursor/next", alertHandler.HandleCursorNext)
		v1.POST("/alerts/cursor/prev", alertHandler.HandleCursorPrev)
		v1.PUT("/alerts/cursor", alertHandler.HandleSetCursor)
		v1.DELETE("/alerts/:id", dismissHandler.HandleDismiss)
		v1.POST("/session", sessionHandler.HandleSession)
	}

	// Periodic deadline checks run until shutdown.
	periodic := scheduler.New(coordinator, cfg.Alert.AutoCheckInterval, alert.SurfaceDeadline)
	go periodic.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("panel_cooldown", cfg.Alert.PanelCooldown),
			slog.Duration("deadline_cooldown", cfg.Alert.DeadlineCooldown),
			slog.Duration("auto_check_interval", cfg.Alert.AutoCheckInterval),
			slog.Int("panel_alert_limit", cfg.Alert.PanelAlertLimit),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

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

// initTaskSource prefers the direct database source when a DSN is set,
// falling back to the project-tracking HTTP API.
func initTaskSource(cfg *config.Config) (tasksource.TaskSource, func(), error) {
	if cfg.TasksDatabaseDSN != "" {
		db, err := tasksource.OpenDatabase(cfg.TasksDatabaseDSN)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("task source initialized",
			slog.String("type", "postgres"),
		)

		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					slog.Warn("failed to close task database", slog.String("error", err.Error()))
				}
			}
		}
		return tasksource.NewGormSource(db), cleanup, nil
	}

	slog.Info("task source initialized",
		slog.String("type", "http"),
		slog.String("url", cfg.ProjectTrackingURL),
	)

	return tasksource.NewClient(cfg.ProjectTrackingURL), nil, nil
}

// initGateStores builds the per-surface deduplication stores. The Redis
// backend is opt-in; the default in-memory stores are process-local.
func initGateStores(ctx context.Context, cfg *config.Config) (domain.GateStore, domain.GateStore, *redis.Client, error) {
	if cfg.Alert.GateStoreBackend != "redis" {
		slog.Info("gate stores initialized", slog.String("type", "memory"))
		return gatestore.NewMemoryStore(), gatestore.NewMemoryStore(), nil, nil
	}

	if err := cfg.Redis.Validate(); err != nil {
		return nil, nil, nil, err
	}

	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		return nil, nil, nil, err
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		return nil, nil, nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, nil, err
	}

	slog.Info("gate stores initialized",
		slog.String("type", "redis"),
		slog.String("addr", cfg.Redis.Addr),
	)

	return gatestore.NewRedisStore(redisClient, "panel"),
		gatestore.NewRedisStore(redisClient, "deadline"),
		redisClient, nil
}
