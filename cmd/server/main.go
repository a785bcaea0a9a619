package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/handler"
	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/service"
	"github.com/kdduha/chat-assistant/internal/stats"

	_ "github.com/kdduha/chat-assistant/docs"
)

// @title Chat Assistant API
// @version 1.0
// @description Chat mediation layer over several language model backends.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("skip .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	registry, err := llm.Build(ctx, cfg.Models, logger)
	if err != nil {
		log.Fatalf("models error: %v", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Printf("close backends: %v", err)
		}
	}()
	logger.Printf("models: %v, default %s", registry.IDs(), registry.DefaultID())

	modelsHandler := handler.NewModelsHandler(registry, cfg.Models.Compare)

	if cfg.StatsEnable {
		redisStats := stats.NewRedisStats(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisStats.Close()

		registry.SetStatsRecorder(redisStats)
		modelsHandler.SetStatsReader(redisStats)
		logger.Println("set redis as usage stats")
	}

	r := handler.NewRouter(cfg.Server, handler.Handlers{
		Chat:    handler.NewChatHandler(service.NewChatService(logger, registry)),
		Upload:  handler.NewUploadHandler(service.NewUploadService(logger), cfg.Upload),
		Compare: handler.NewCompareHandler(service.NewCompareService(logger, registry, cfg.Models.Compare)),
		Models:  modelsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
