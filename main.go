package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/delaynomics/delaynomics-api/airports"
	"github.com/delaynomics/delaynomics-api/api"
	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/buildinfo"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
	"github.com/delaynomics/delaynomics-api/pkg/health"
	"github.com/delaynomics/delaynomics-api/pkg/logger"
	"github.com/delaynomics/delaynomics-api/pkg/notify"
	"github.com/delaynomics/delaynomics-api/pkg/worker_registry"
	"github.com/delaynomics/delaynomics-api/queue"
	"github.com/delaynomics/delaynomics-api/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Config{Level: "info", Format: "text"})
		logger.Fatal(err, "Failed to load configuration")
	}

	logger.Init(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})
	logger.Info("Starting delaynomics API",
		"version", buildinfo.Version,
		"environment", cfg.Environment,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := dataset.NewStore(cfg.DataConfig)

	// The coordinate table is optional; the resolver falls back to the
	// built-in set when it is absent.
	coords, err := store.Coords()
	if err != nil {
		logger.Warn("Could not read airport coordinates, using built-in fallback", "error", err)
	}
	resolver := airports.NewResolver(coords)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Addr(),
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Fatal(err, "Failed to connect to Redis", "addr", cfg.RedisConfig.Addr())
	}
	cancelPing()
	defer redisClient.Close()

	jobQueue := queue.NewRedisQueueWithClient(redisClient, cfg.RedisConfig)

	var cacheManager *cache.Manager
	if cfg.CacheEnabled {
		cacheManager = cache.NewManager(cache.NewRedisCache(redisClient, "delaynomics"))
	}

	geminiClient := insights.New(
		cfg.GeminiConfig.APIKey,
		cfg.GeminiConfig.Timeout,
		cfg.GeminiConfig.MaxRetries,
		insights.WithModels(cfg.GeminiConfig.Models),
	)
	analyst := insights.NewAnalyst(geminiClient)
	if !cfg.GeminiConfig.Enabled() {
		logger.Warn("GEMINI_API_KEY not set, AI insights will use fallback summaries")
	}

	var notifier *notify.NTFYClient
	if cfg.NTFYConfig.Enabled {
		notifier = notify.NewNTFYClient(notify.NTFYConfig{
			ServerURL: cfg.NTFYConfig.ServerURL,
			Topic:     cfg.NTFYConfig.Topic,
			Username:  cfg.NTFYConfig.Username,
			Password:  cfg.NTFYConfig.Password,
			Enabled:   cfg.NTFYConfig.Enabled,
		})
	}

	registry := worker_registry.New(redisClient, cfg.RedisConfig.QueueStreamPrefix)

	scheduler := worker.NewScheduler(jobQueue)
	if expr := cfg.WorkerConfig.CombineSchedule; expr != "" {
		if err := scheduler.AddJob(worker.ScheduledJob{
			Name:     "combine-dataset",
			CronExpr: expr,
			JobType:  queue.JobCombineDataset,
			Payload:  worker.CombinePayload{},
		}); err != nil {
			logger.Fatal(err, "Invalid COMBINE_SCHEDULE", "cron", expr)
		}
	}
	if expr := cfg.GeminiConfig.InsightsSchedule; expr != "" {
		if err := scheduler.AddJob(worker.ScheduledJob{
			Name:     "insights-prewarm",
			CronExpr: expr,
			JobType:  queue.JobInsightsPrewarm,
			Payload:  worker.InsightsPrewarmPayload{},
		}); err != nil {
			logger.Fatal(err, "Invalid INSIGHTS_PREWARM_SCHEDULE", "cron", expr)
		}
	}

	manager := worker.NewManager(worker.Deps{
		Queue:    jobQueue,
		Store:    store,
		Analyst:  analyst,
		Cache:    cacheManager,
		Notifier: notifier,
		Registry: registry,
	}, cfg.WorkerConfig, scheduler)

	if cfg.WorkerEnabled {
		manager.Start()
		defer manager.Stop()
		scheduler.Start()
		defer scheduler.Stop()
	}

	healthChecker := health.NewHealthChecker(buildinfo.Version)
	healthChecker.AddChecker(&health.DatasetChecker{Paths: cfg.DataConfig, Name: "dataset"})
	healthChecker.AddChecker(&health.RedisChecker{Client: redisClient, Name: "redis"})
	healthChecker.AddChecker(&health.QueueChecker{Queue: jobQueue, Name: "queue"})
	healthChecker.AddChecker(&health.InsightsChecker{Config: cfg.GeminiConfig, Name: "insights"})
	if cfg.WorkerEnabled {
		healthChecker.AddChecker(&health.WorkerChecker{Registry: registry, Name: "workers"})
	}

	router := gin.New()
	api.RegisterRoutes(router, api.Deps{
		Store:    store,
		Resolver: resolver,
		Analyst:  analyst,
		Cache:    cacheManager,
		Queue:    jobQueue,
		Sched:    scheduler,
		Registry: registry,
		Health:   healthChecker,
		Cfg:      cfg,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPBindAddr + ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err, "Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal(err, "Server forced to shutdown")
	}

	logger.Info("Server exited properly")
}
