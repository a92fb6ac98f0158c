package ports

import (
	"context"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// DocumentClassifier runs the full stage pipeline for a single document.
// It never fails: a document that cannot be processed still yields a result
// with the unsure label and a populated errors list.
type DocumentClassifier interface {
	Classify(ctx context.Context, doc domain.Document) domain.ClassificationResult
}

// BatchService decides sync vs. async execution for a validated batch.
type BatchService interface {
	Submit(ctx context.Context, docs []domain.Document) (*domain.Submission, error)
}
