package ports

import (
	"context"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// TextExtractor extracts body text from a document of a supported format.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc domain.Document) (string, error)
	Supports(extension string) bool
}

// MetadataExtractor extracts format-level metadata text. Formats without
// metadata support return "" and no error.
type MetadataExtractor interface {
	ExtractMetadata(ctx context.Context, doc domain.Document) (string, error)
}

// OCREngine recognizes text in image-like documents.
type OCREngine interface {
	Recognize(ctx context.Context, doc domain.Document) (string, error)
}

// TextModel is the statistical classifier behind the text and OCR stages.
// It must be deterministic for identical input and loaded once per process.
// A ("", 0) return with a nil error means the model has no opinion.
type TextModel interface {
	Predict(text string) (label string, confidence float64, err error)
}

// JobStore maps job identifiers to job state. Mutating operations must be
// safe under concurrent writers and readers; Get returns a self-consistent
// snapshot.
type JobStore interface {
	Create(ctx context.Context, totalCount int) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	RecordResult(ctx context.Context, id string, result domain.ClassificationResult) error
	Fail(ctx context.Context, id string) error
}
