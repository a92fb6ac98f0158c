package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manifoldfrs/doc-classifier/internal/config"
	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
	"github.com/manifoldfrs/doc-classifier/internal/core/stage"
	"github.com/manifoldfrs/doc-classifier/internal/core/usecase"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/model"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/ocr/tesseract"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/parsing"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/resilience"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/rules"
	"github.com/manifoldfrs/doc-classifier/internal/observability/metrics"
	"github.com/manifoldfrs/doc-classifier/internal/registry/memory"
)

const serviceName = "doc-classifier-api"

type App struct {
	Config config.Config
	Logger *slog.Logger

	Jobs    ports.JobStore
	BatchUC *usecase.SubmitBatchUseCase

	HTTPMetrics     *metrics.HTTPServerMetrics
	PipelineMetrics *metrics.PipelineMetrics
}

// New wires the whole pipeline. The background context bounds asynchronous
// job processing: cancelling it tells running jobs to stop.
func New(background context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	httpMetrics := metrics.NewHTTPServerMetrics(serviceName)
	pipelineMetrics := metrics.NewPipelineMetrics(serviceName)

	registry := parsing.NewRegistry()
	textModel := model.NewSeeded()

	executor := resilience.NewExecutor(resilience.DefaultPolicy(), logger)
	engine := tesseract.NewEngine(tesseract.Config{
		Binary:   cfg.TesseractBin,
		Language: cfg.TesseractLanguage,
		PSM:      cfg.TesseractPSM,
	}, executor, logger)

	stages := []stage.Stage{
		stage.NewFilename(ruleSet),
		stage.NewMetadata(registry, ruleSet),
		stage.NewText(registry, textModel, ruleSet),
		stage.NewOCR(engine, textModel, ruleSet),
	}

	classifyUC := usecase.NewClassifyDocumentUseCase(
		stages,
		usecase.Thresholds{
			EarlyExit:  cfg.EarlyExitConfidence,
			Assignment: cfg.ConfidenceThreshold,
		},
		cfg.PipelineVersion,
		logger,
		pipelineMetrics,
	)

	jobs := memory.NewStore()
	batchUC := usecase.NewSubmitBatchUseCase(
		classifyUC,
		jobs,
		usecase.BatchConfig{
			MaxBatchSize:      cfg.MaxBatchSize,
			AsyncThreshold:    cfg.AsyncThreshold,
			WorkerConcurrency: cfg.WorkerConcurrency,
			DocumentTimeout:   time.Duration(cfg.DocumentTimeoutSeconds) * time.Second,
		},
		background,
		logger,
		pipelineMetrics,
	)

	return &App{
		Config:          cfg,
		Logger:          logger,
		Jobs:            jobs,
		BatchUC:         batchUC,
		HTTPMetrics:     httpMetrics,
		PipelineMetrics: pipelineMetrics,
	}, nil
}

// Close drains background jobs so abandoned ones get their terminal status
// before the process exits.
func (a *App) Close() {
	a.BatchUC.Wait()
}
