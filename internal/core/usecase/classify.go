package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/core/stage"
)

// ClassifyDocumentUseCase runs a document through the ordered stage chain
// and aggregates the outcome. Classify never returns an error: every
// failure mode degrades into a result carrying error notes, so a batch
// always produces exactly one result per document.
type ClassifyDocumentUseCase struct {
	stages     []stage.Stage
	thresholds Thresholds
	version    string
	logger     *slog.Logger
	observer   Observer
}

func NewClassifyDocumentUseCase(
	stages []stage.Stage,
	thresholds Thresholds,
	version string,
	logger *slog.Logger,
	observer Observer,
) *ClassifyDocumentUseCase {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ClassifyDocumentUseCase{
		stages:     stages,
		thresholds: thresholds,
		version:    version,
		logger:     logger,
		observer:   observer,
	}
}

func (uc *ClassifyDocumentUseCase) Classify(ctx context.Context, doc domain.Document) domain.ClassificationResult {
	start := time.Now()

	out := domain.ClassificationResult{
		Filename:         doc.Filename,
		MimeType:         doc.MimeType,
		SizeBytes:        doc.Size,
		Label:            domain.LabelUnsure,
		PipelineVersion:  uc.version,
		StageConfidences: make(map[domain.StageName]*float64, len(domain.StageOrder())),
		Warnings:         make([]domain.Note, 0),
		Errors:           make([]domain.Note, 0),
	}
	for _, name := range domain.StageOrder() {
		out.StageConfidences[name] = nil
	}

	if len(doc.Content) == 0 {
		out.Errors = append(out.Errors, domain.Note{
			Code:    "empty_document",
			Message: "document has no content",
		})
		return uc.finish(ctx, doc, out, start, "error")
	}

	var results []domain.StageResult
	for _, s := range uc.stages {
		if ctx.Err() != nil {
			out.Errors = append(out.Errors, domain.Note{
				Code:    "pipeline_interrupted",
				Message: ctx.Err().Error(),
			})
			break
		}
		if !s.Applicable(doc, results) {
			continue
		}

		res := uc.runStage(ctx, s, doc)
		results = append(results, res)
		out.StageConfidences[res.Stage] = res.Confidence
		out.Warnings = append(out.Warnings, res.Warnings...)
		out.Errors = append(out.Errors, res.Errors...)

		if agg := Aggregate(results, false, uc.thresholds); agg.Final {
			uc.observer.EarlyExit(res.Stage)
			break
		}
	}

	agg := Aggregate(results, true, uc.thresholds)
	out.Label = agg.Label
	out.Confidence = roundTo(agg.Confidence, 4)

	status := "classified"
	if out.Label == domain.LabelUnsure {
		status = "unsure"
	}
	return uc.finish(ctx, doc, out, start, status)
}

func (uc *ClassifyDocumentUseCase) finish(
	ctx context.Context,
	doc domain.Document,
	out domain.ClassificationResult,
	start time.Time,
	status string,
) domain.ClassificationResult {
	elapsed := time.Since(start)
	out.ProcessingMS = roundTo(float64(elapsed.Microseconds())/1000.0, 2)
	uc.observer.DocumentObserved(status, elapsed.Seconds())
	uc.logger.InfoContext(ctx, "document_classified",
		"filename", doc.Filename,
		"label", out.Label,
		"confidence", out.Confidence,
		"status", status,
		"processing_ms", out.ProcessingMS,
	)
	return out
}

// runStage isolates a single stage execution so that a panic inside an
// extractor or model never takes down the request.
func (uc *ClassifyDocumentUseCase) runStage(ctx context.Context, s stage.Stage, doc domain.Document) (res domain.StageResult) {
	t0 := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = domain.StageResult{
				Stage: s.Name(),
				Errors: []domain.Note{{
					Code:    "stage_panic",
					Message: fmt.Sprint(r),
				}},
			}
			uc.logger.ErrorContext(ctx, "stage_panic", "stage", s.Name(), "panic", r)
		}
		outcome := "no_opinion"
		switch {
		case len(res.Errors) > 0:
			outcome = "error"
		case res.Labeled():
			outcome = "labeled"
		}
		uc.observer.StageObserved(s.Name(), outcome, time.Since(t0).Seconds())
	}()
	return s.Run(ctx, doc)
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}
