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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/auth"
	"github.com/fljobs/backend/cache"
	"github.com/fljobs/backend/config"
	_ "github.com/fljobs/backend/docs"
	"github.com/fljobs/backend/gemini"
	"github.com/fljobs/backend/handlers"
	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/storage"
)

// @title FL Jobs API
// @version 2.0.0
// @description Job posting and candidate matching backend with AI-generated descriptions and a deterministic fallback.

// @contact.name API Support

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuration error", zap.Error(err))
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer store.Close()
	log.Info("Store initialized", zap.String("backend", cfg.StoreBackend))

	var archive storage.PostArchive
	if cfg.PostsBucketName != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
		if err != nil {
			log.Warn("Cloud Storage unavailable, job posts will not be archived", zap.Error(err))
		} else {
			defer storageClient.Close()
			archive = storageClient
			log.Info("Cloud Storage client initialized", zap.String("bucket", cfg.PostsBucketName))
		}
	}

	svc := newAIService(cfg, log)
	svc.Initialize(ctx)
	defer svc.Cleanup()

	router := handlers.NewRouter(handlers.RouterDeps{
		Store:   store,
		AI:      svc,
		Archive: archive,
		JWT:     auth.NewJWTService(cfg),
		Logger:  log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port), zap.String("ai_state", svc.State().String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StoreBackend == config.StoreBackendFirestore {
		return storage.NewFirestoreClient(ctx, cfg)
	}
	return storage.NewMemoryStore(), nil
}

func newAIService(cfg *config.Config, log *zap.Logger) *agent.Service {
	opts := []agent.Option{
		agent.WithTimeout(cfg.AITimeout),
		agent.WithGenerationParams(generationParams(cfg)),
		agent.WithLogger(log),
	}

	if !cfg.AIConfigured() {
		log.Info("AI backends not configured, running in fallback mode")
		return agent.NewService(nil, nil, opts...)
	}

	newGenerator := func(ctx context.Context) (agent.TextGenerator, error) {
		return gemini.NewClient(ctx, cfg, log)
	}
	return agent.NewService(newGenerator, embedderFactory(cfg, log), opts...)
}

// embedderFactory builds the embedding backend, fronted by Redis when
// REDIS_URL is set and reachable.
func embedderFactory(cfg *config.Config, log *zap.Logger) agent.EmbedderFactory {
	return func(ctx context.Context) (agent.Embedder, error) {
		embedder, err := gemini.NewEmbedder(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.RedisURL == "" {
			return embedder, nil
		}

		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn("Invalid REDIS_URL, embedding cache disabled", zap.Error(err))
			return embedder, nil
		}
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("Redis unreachable, embedding cache disabled", zap.Error(err))
			_ = redisCache.Close()
			return embedder, nil
		}

		log.Info("Embedding cache enabled", zap.Duration("ttl", cfg.EmbeddingCacheTTL))
		return cache.NewCachedEmbedder(embedder, redisCache, embedder.Model(), cfg.EmbeddingCacheTTL, log), nil
	}
}

func generationParams(cfg *config.Config) agent.GenerationParams {
	return agent.GenerationParams{
		MaxOutputTokens:   int32(cfg.MaxOutputTokens),
		Temperature:       float32(cfg.Temperature),
		TopP:              float32(cfg.TopP),
		RepetitionPenalty: float32(cfg.RepetitionPenalty),
	}
}
