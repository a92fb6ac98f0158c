package stage

import (
	"context"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/rules"
)

// OCR text is noisier than directly extracted text, so the heuristic
// fallback scores slightly lower than the text stage's.
const ocrHeuristicConfidence = 0.72

// OCR is the most expensive stage. It runs only when the document is
// image-like, or when the text stage produced no usable signal (no
// extractable text or a failed extraction).
type OCR struct {
	engine ports.OCREngine
	model  ports.TextModel
	rules  *rules.Set
}

func NewOCR(engine ports.OCREngine, model ports.TextModel, set *rules.Set) *OCR {
	return &OCR{engine: engine, model: model, rules: set}
}

func (s *OCR) Name() domain.StageName { return domain.StageOCR }

func (s *OCR) Applicable(doc domain.Document, prior []domain.StageResult) bool {
	if doc.IsImage() {
		return true
	}
	for _, res := range prior {
		if res.Stage == domain.StageText {
			return res.Confidence == nil
		}
	}
	return false
}

func (s *OCR) Run(ctx context.Context, doc domain.Document) domain.StageResult {
	text, err := s.engine.Recognize(ctx, doc)
	if err != nil {
		return failed(s.Name(), "ocr_extraction_failed", err)
	}
	if text == "" {
		return withWarning(noOpinion(s.Name()), "no_ocr_text", "ocr produced no text")
	}
	return classifyText(ctx, s.Name(), text, s.model, s.rules, ocrHeuristicConfidence)
}
