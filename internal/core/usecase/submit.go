package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
)

// BatchConfig bounds batch intake and worker behaviour.
type BatchConfig struct {
	// MaxBatchSize rejects batches outright above this count.
	MaxBatchSize int
	// AsyncThreshold routes batches larger than this into a background job.
	AsyncThreshold int
	// WorkerConcurrency caps documents classified in parallel.
	WorkerConcurrency int
	// DocumentTimeout bounds a single document's pipeline run.
	DocumentTimeout time.Duration
}

// SubmitBatchUseCase validates a batch and routes it either through the
// synchronous path (results inline, input order preserved) or the
// asynchronous path (job registered, documents processed in background).
type SubmitBatchUseCase struct {
	classifier ports.DocumentClassifier
	jobs       ports.JobStore
	cfg        BatchConfig
	logger     *slog.Logger
	observer   Observer

	// background outlives individual requests; cancelling it tells
	// running jobs to abandon remaining documents.
	background context.Context
	wg         sync.WaitGroup
}

func NewSubmitBatchUseCase(
	classifier ports.DocumentClassifier,
	jobs ports.JobStore,
	cfg BatchConfig,
	background context.Context,
	logger *slog.Logger,
	observer Observer,
) *SubmitBatchUseCase {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.WorkerConcurrency < 1 {
		cfg.WorkerConcurrency = 1
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = 5 * time.Minute
	}
	if background == nil {
		background = context.Background()
	}
	return &SubmitBatchUseCase{
		classifier: classifier,
		jobs:       jobs,
		cfg:        cfg,
		logger:     logger,
		observer:   observer,
		background: background,
	}
}

func (uc *SubmitBatchUseCase) Submit(ctx context.Context, docs []domain.Document) (*domain.Submission, error) {
	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit_batch",
			fmt.Errorf("batch contains no documents"))
	}
	if len(docs) > uc.cfg.MaxBatchSize {
		return nil, domain.WrapError(domain.ErrTooLarge, "submit_batch",
			fmt.Errorf("batch of %d exceeds limit %d", len(docs), uc.cfg.MaxBatchSize))
	}

	if len(docs) <= uc.cfg.AsyncThreshold {
		uc.observer.BatchObserved("sync", len(docs))
		return &domain.Submission{Results: uc.classifyAll(ctx, docs)}, nil
	}

	job, err := uc.jobs.Create(ctx, len(docs))
	if err != nil {
		return nil, fmt.Errorf("submit_batch: create job: %w", err)
	}
	uc.observer.BatchObserved("async", len(docs))
	uc.logger.InfoContext(ctx, "job_accepted", "job_id", job.ID, "total_count", job.TotalCount)

	uc.wg.Add(1)
	go uc.runJob(job.ID, docs)

	return &domain.Submission{Async: true, JobID: job.ID}, nil
}

// Wait blocks until every background job goroutine has returned. Called
// during shutdown so abandoned jobs get marked failed before exit.
func (uc *SubmitBatchUseCase) Wait() {
	uc.wg.Wait()
}

// classifyAll runs the synchronous path: bounded concurrency, results in
// input order, one result per document no matter what.
func (uc *SubmitBatchUseCase) classifyAll(ctx context.Context, docs []domain.Document) []domain.ClassificationResult {
	results := make([]domain.ClassificationResult, len(docs))
	sem := make(chan struct{}, uc.cfg.WorkerConcurrency)
	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc domain.Document) {
			defer wg.Done()
			defer func() { <-sem }()
			docCtx, cancel := context.WithTimeout(ctx, uc.cfg.DocumentTimeout)
			defer cancel()
			results[i] = uc.classifier.Classify(docCtx, doc)
		}(i, doc)
	}
	wg.Wait()
	return results
}

func (uc *SubmitBatchUseCase) runJob(jobID string, docs []domain.Document) {
	defer uc.wg.Done()
	uc.observer.JobStarted()
	defer uc.observer.JobFinished()

	ctx := uc.background
	sem := make(chan struct{}, uc.cfg.WorkerConcurrency)
	var wg sync.WaitGroup
	for _, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(doc domain.Document) {
			defer wg.Done()
			defer func() { <-sem }()
			docCtx, cancel := context.WithTimeout(ctx, uc.cfg.DocumentTimeout)
			defer cancel()
			result := uc.classifier.Classify(docCtx, doc)
			if err := uc.jobs.RecordResult(context.Background(), jobID, result); err != nil {
				uc.logger.Error("record_result_failed",
					"job_id", jobID, "filename", doc.Filename, "error", err)
			}
		}(doc)
	}
	wg.Wait()

	if ctx.Err() != nil {
		if err := uc.jobs.Fail(context.Background(), jobID); err != nil {
			uc.logger.Error("job_fail_mark_failed", "job_id", jobID, "error", err)
		} else {
			uc.logger.Warn("job_abandoned", "job_id", jobID)
		}
	}
}
