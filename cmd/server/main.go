package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"promptquest/internal/cache"
	"promptquest/internal/config"
	"promptquest/internal/llm"
	"promptquest/internal/logger"
	"promptquest/internal/repository"
	"promptquest/internal/service"
	"promptquest/internal/transport/rest"
	"promptquest/internal/transport/ws"
)

// @title PromptQuest API
// @version 1.0
// @description Prompt engineering game: reverse-engineer the system prompt behind a reference conversation
// @host localhost:8080
// @BasePath /v1
func main() {
	figure.NewFigure("PromptQuest", "", true).Print()
	ctx := context.Background()

	cfg := config.Load()

	logFile, err := logger.Setup(cfg.Log)
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer logFile.Close()

	aiConfig := cfg.AI
	log.Printf("AI Config:")
	log.Printf("  Completion: %s", aiConfig.Models.Completion)
	log.Printf("  Hint:       %s", aiConfig.Models.Hint)
	log.Printf("  Embedding:  %s", aiConfig.Models.Embedding)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:    configured ✓")
	} else {
		log.Println("  API Key:    NOT SET (lexical scoring, completions unavailable)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	levelRepo := repository.NewLevelRepo(db)
	attemptRepo := repository.NewAttemptRepo(db)

	var levelSource service.LevelSource = levelRepo
	if cfg.LevelsFile != "" {
		levelSource = repository.NewFileLevelSource(cfg.LevelsFile)
		log.Printf("Levels: %s", cfg.LevelsFile)
	} else {
		if err := levelRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to create level indexes:", err)
		}
		log.Println("Levels: MongoDB")
	}

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	embeddingCache := cache.NewEmbeddingCache(rdb, cfg.EmbeddingCacheTTL)

	// Initialize AI provider
	provider, err := llm.New(ctx, aiConfig)
	if err != nil {
		log.Fatal("Failed to create AI provider:", err)
	}
	log.Printf("AI provider: %s", provider.Name())
	embedder := llm.NewCachedEmbedder(provider, embeddingCache, aiConfig.Models.Embedding)

	attemptFile, err := logger.AttemptWriter(cfg.Log)
	if err != nil {
		log.Fatal("Failed to open attempt log:", err)
	}
	defer attemptFile.Close()

	// Initialize services
	levelSvc := service.NewLevelService(levelSource)
	if err := levelSvc.Load(ctx); err != nil {
		log.Fatal("Failed to load levels:", err)
	}

	evaluator := service.NewEvaluatorFromConfig(aiConfig, provider, embedder)
	attempts := service.MultiAttemptLogger{
		service.NewRepoAttemptLogger(attemptRepo),
		service.NewWriterAttemptLogger(attemptFile),
	}
	tokenSvc := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	progressionSvc := service.NewProgressionService(
		levelSvc,
		evaluator,
		sessionCache,
		attempts,
		tokenSvc,
		cfg.MaxAttempts,
		aiConfig.CallBudget()+5*time.Second,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	progressionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		LevelService:       levelSvc,
		Evaluator:          evaluator,
		ProgressionService: progressionSvc,
		WSHub:              wsHub,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SubmitRatePerMin:   cfg.SubmitRatePerMin,
		SubmitBurst:        cfg.SubmitBurst,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/levels")
		log.Println("  POST /v1/evaluate")
		log.Println("  POST /v1/sessions")
		log.Println("  GET  /v1/sessions/{id}")
		log.Println("  POST /v1/sessions/{id}/submissions")
		log.Println("  POST /v1/sessions/{id}/skip|advance|restart")
		log.Println("  POST /v1/sessions/{id}/hints/toggle|next|prev")
		log.Println("  WS   /v1/ws/sessions/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
