package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/manifoldfrs/doc-classifier/internal/adapters/http"
	"github.com/manifoldfrs/doc-classifier/internal/bootstrap"
	"github.com/manifoldfrs/doc-classifier/internal/config"
	"github.com/manifoldfrs/doc-classifier/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewJSONLogger("doc-classifier-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(
		app.BatchUC,
		app.Jobs,
		httpadapter.Options{
			ServiceName:       "doc-classifier-api",
			PipelineVersion:   cfg.PipelineVersion,
			APIKeys:           cfg.AllowedAPIKeys,
			MaxFileSizeBytes:  int64(cfg.MaxFileSizeMB) << 20,
			AllowedExtensions: cfg.AllowedExtensions,
			MaxBatchSize:      cfg.MaxBatchSize,
			RateLimitRPS:      cfg.UploadRateLimitRPS,
			RateLimitBurst:    cfg.UploadRateLimitBurst,
			MaxConcurrent:     cfg.MaxConcurrentUploads,
		},
		app.HTTPMetrics,
		app.HTTPMetrics.Gatherer(),
		app.PipelineMetrics.Gatherer(),
	).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_error", "error", err)
	}
}
