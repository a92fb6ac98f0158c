package stage

import (
	"context"
	"path"
	"strings"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/rules"
)

const (
	filenameAnchoredConfidence = 0.95
	filenameConfidence         = 0.80
)

// Filename infers the document type from the filename alone. Cheapest
// stage; always runs first.
type Filename struct {
	rules *rules.Set
}

func NewFilename(set *rules.Set) *Filename {
	return &Filename{rules: set}
}

func (s *Filename) Name() domain.StageName { return domain.StageFilename }

func (s *Filename) Applicable(domain.Document, []domain.StageResult) bool { return true }

func (s *Filename) Run(_ context.Context, doc domain.Document) domain.StageResult {
	basename := strings.ToLower(path.Base(doc.Filename))
	if basename == "" || basename == "." {
		return noOpinion(s.Name())
	}

	label, anchored, ok := s.rules.MatchAnchored(basename)
	if !ok {
		return noOpinion(s.Name())
	}
	if anchored {
		return labeled(s.Name(), label, filenameAnchoredConfidence)
	}
	return labeled(s.Name(), label, filenameConfidence)
}
