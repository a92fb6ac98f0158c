// Package stage holds the four classification strategies the pipeline runs
// in order of cost: filename, metadata, text, ocr. Stages fail soft: every
// extraction or model error is captured on the StageResult, never returned,
// so a broken stage can never abort the pipeline.
package stage

import (
	"context"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// Stage is one classification strategy.
type Stage interface {
	Name() domain.StageName

	// Applicable reports whether the stage should run for this document
	// given the results of the stages before it.
	Applicable(doc domain.Document, prior []domain.StageResult) bool

	Run(ctx context.Context, doc domain.Document) domain.StageResult
}

func labeled(name domain.StageName, label string, confidence float64) domain.StageResult {
	return domain.StageResult{Stage: name, Label: &label, Confidence: &confidence}
}

// noOpinion is the empty outcome: the stage ran but has nothing to say.
func noOpinion(name domain.StageName) domain.StageResult {
	return domain.StageResult{Stage: name}
}

func failed(name domain.StageName, code string, err error) domain.StageResult {
	return domain.StageResult{
		Stage:  name,
		Errors: []domain.Note{{Code: code, Message: err.Error()}},
	}
}

func withWarning(res domain.StageResult, code, message string) domain.StageResult {
	res.Warnings = append(res.Warnings, domain.Note{Code: code, Message: message})
	return res
}
