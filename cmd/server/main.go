package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackwatch/internal/alert"
	"trackwatch/internal/directory"
	"trackwatch/internal/health"
	httpapi "trackwatch/internal/http"
	jwttoken "trackwatch/internal/jwt_token"
	"trackwatch/internal/location"
	"trackwatch/internal/monitor"
	monitorhandler "trackwatch/internal/monitor/handler"
	monitormetrics "trackwatch/internal/monitor/metrics"
	"trackwatch/internal/notify"
	"trackwatch/internal/platform/config"
	"trackwatch/internal/platform/httpserver"
	kconsumer "trackwatch/internal/platform/kafka/consumer"
	"trackwatch/internal/platform/logger"
	"trackwatch/internal/platform/postgres"
	platformredis "trackwatch/internal/platform/redis"
	"trackwatch/internal/sweep"
	sweepmetrics "trackwatch/internal/sweep/metrics"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var directoryStore directory.Store
	var alertStore alert.Store
	if db != nil {
		directoryStore = directory.NewPostgresStore(db)
		alertStore = alert.NewPostgresStore(db)
	} else {
		log.Warn("no postgres configured, using in-memory stores")
		directoryStore = directory.NewMemoryStore()
		alertStore = alert.NewMemoryStore()
	}

	var locationStore location.Store
	if redisClient != nil {
		locationStore = location.NewRedisStore(redisClient.Client)
	} else {
		log.Warn("no redis configured, using in-memory location store")
		locationStore = location.NewMemoryStore()
	}

	var notifier notify.Notifier
	if cfg.Push.Endpoint != "" {
		notifier = notify.WithBreaker(notify.NewPushSender(cfg.Push), log)
	} else {
		log.Warn("no push gateway configured, notifications disabled")
		notifier = notify.Noop{}
	}

	evaluator := health.NewEvaluator(cfg.Monitor.MaxStaleTime)
	resolver := directory.NewResolver(directoryStore)
	service := monitor.NewService(evaluator, resolver, alertStore, notifier, log, monitormetrics.New())

	feed, err := kconsumer.New(cfg.Kafka, monitor.NewFeedHandler(service, log), log)
	if err != nil {
		log.Error("kafka client failed", "error", err)
		os.Exit(1)
	}
	defer feed.Close()
	if err := feed.EnsureTopic(ctx, cfg.Kafka.Topic); err != nil {
		log.Error("kafka topic bootstrap failed", "topic", cfg.Kafka.Topic, "error", err)
		os.Exit(1)
	}
	go func() {
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("change feed consumer stopped", "error", err)
		}
	}()

	sm := sweepmetrics.New()
	reconciler := sweep.NewReconciler(locationStore, service, evaluator, log, sm)
	retention := sweep.NewRetention(alertStore, cfg.Monitor.RetentionHorizon, log, sm)
	go func() {
		_ = sweep.NewScheduler(reconciler, cfg.Monitor.ReconcileInterval, log).Run(ctx)
	}()
	go func() {
		_ = sweep.NewScheduler(retention, cfg.Monitor.RetentionInterval, log).Run(ctx)
	}()

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "trackwatch", "trackwatch-admin")
	router := httpapi.NewRouter(monitorhandler.New(alertStore, log), jwtService, log)
	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting trackwatch",
		"addr", cfg.Server.Addr,
		"max_stale_time", cfg.Monitor.MaxStaleTime,
		"reconcile_interval", cfg.Monitor.ReconcileInterval,
		"retention_horizon", cfg.Monitor.RetentionHorizon,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
