package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogsmith/internal/adapters/adk"
	"blogsmith/internal/adapters/ai"
	"blogsmith/internal/adapters/config"
	"blogsmith/internal/adapters/errors/noop"
	"blogsmith/internal/adapters/errors/sentry"
	"blogsmith/internal/adapters/redis"
	"blogsmith/internal/adapters/tavily"
	"blogsmith/internal/agents"
	"blogsmith/internal/agents/state"
	"blogsmith/internal/api"
	"blogsmith/internal/metrics"
	"blogsmith/internal/tools"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Register()

	// Provider adapters
	searchClient := tavily.NewClient(
		cfg.Search.TavilyAPIKey,
		cfg.Search.RequestTimeout,
		tavily.WithBaseURL(cfg.Search.BaseURL),
		tavily.WithRateLimit(cfg.Search.RequestsPerMin, 3),
		tavily.WithMaxResults(cfg.Search.MaxResults),
	)

	groq := ai.NewGroqProvider(
		cfg.AI.GroqAPIKey,
		cfg.AI.RequestTimeout,
		ai.WithGroqRateLimit(cfg.AI.RequestsPerMin, cfg.AI.RequestBurst),
	)
	model := adk.NewModelAdapter(groq, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Temperature)

	// Optional article cache
	articleCache := initArticleCache(cfg, log)

	// Tools and agents
	runs := state.NewRegistry()
	toolRegistry := tools.BuildRegistry(shared.Deps{
		Runs:   runs,
		Search: searchClient,
	})

	factory, err := agents.NewFactory(agents.FactoryDeps{
		Model:        model,
		ToolRegistry: toolRegistry,
	})
	if err != nil {
		log.Fatalf("Failed to create agent factory: %v", err)
	}

	pipeline, err := factory.CreatePipeline()
	if err != nil {
		log.Fatalf("Failed to assemble pipeline: %v", err)
	}

	workflow, err := agents.NewWorkflowRunner(agents.RunnerDeps{
		Pipeline:   pipeline,
		Runs:       runs,
		Cache:      articleCache,
		RunTimeout: cfg.Workflow.RunTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create workflow runner: %v", err)
	}

	server := api.NewServer(cfg.Server, workflow)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initArticleCache connects to redis when configured; the app runs without a
// cache otherwise.
func initArticleCache(cfg *config.Config, log *logger.Logger) *redis.ArticleCache {
	if !cfg.Cache.Enabled() {
		log.Info("Article cache disabled")
		return nil
	}

	client, err := redis.NewClient(cfg.Cache)
	if err != nil {
		log.Warnf("Failed to connect to redis, running without article cache: %v", err)
		return nil
	}

	log.Infof("Article cache enabled (redis at %s)", cfg.Cache.Addr())
	return redis.NewArticleCache(client, cfg.Cache.ArticleTTL)
}

// waitForShutdown waits for a shutdown signal and stops components gracefully.
func waitForShutdown(server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("HTTP server shutdown: %v", err)
	}

	if errorTracker != nil {
		if err := errorTracker.Flush(ctx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
