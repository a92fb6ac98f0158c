package stage

import (
	"context"
	"math"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/rules"
)

const textHeuristicConfidence = 0.75

// Text extracts body text through the parsing adapters and classifies it
// with the statistical model. Primary signal for most formats. When the
// model has no opinion the keyword rules act as a fallback.
type Text struct {
	extractor ports.TextExtractor
	model     ports.TextModel
	rules     *rules.Set
}

func NewText(extractor ports.TextExtractor, model ports.TextModel, set *rules.Set) *Text {
	return &Text{extractor: extractor, model: model, rules: set}
}

func (s *Text) Name() domain.StageName { return domain.StageText }

func (s *Text) Applicable(doc domain.Document, _ []domain.StageResult) bool {
	return s.extractor.Supports(doc.Extension())
}

func (s *Text) Run(ctx context.Context, doc domain.Document) domain.StageResult {
	text, err := s.extractor.ExtractText(ctx, doc)
	if err != nil {
		return failed(s.Name(), "text_extraction_failed", err)
	}
	if text == "" {
		return withWarning(noOpinion(s.Name()), "no_text_extracted", "no extractable text in document")
	}
	return classifyText(ctx, s.Name(), text, s.model, s.rules, textHeuristicConfidence)
}

// classifyText runs the model over extracted text and falls back to the
// keyword rules; shared between the text and ocr stages.
func classifyText(_ context.Context, name domain.StageName, text string, model ports.TextModel, set *rules.Set, heuristicConfidence float64) domain.StageResult {
	label, confidence, err := model.Predict(text)
	if err != nil {
		return failed(name, "model_prediction_failed", err)
	}
	if label != "" && confidence > 0 {
		return labeled(name, label, roundConfidence(confidence))
	}

	if label, ok := set.Match(text); ok {
		return labeled(name, label, heuristicConfidence)
	}
	return noOpinion(name)
}

func roundConfidence(c float64) float64 {
	return math.Round(c*10000) / 10000
}
