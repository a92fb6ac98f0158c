package stage

import (
	"context"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/rules"
)

// Metadata is noisier than an exact filename hit, so its score sits between
// the two filename confidences.
const metadataConfidence = 0.86

// Metadata classifies from format-level metadata. Only PDFs expose usable
// metadata in this stack (first page text); other formats skip the stage.
type Metadata struct {
	extractor ports.MetadataExtractor
	rules     *rules.Set
}

func NewMetadata(extractor ports.MetadataExtractor, set *rules.Set) *Metadata {
	return &Metadata{extractor: extractor, rules: set}
}

func (s *Metadata) Name() domain.StageName { return domain.StageMetadata }

func (s *Metadata) Applicable(doc domain.Document, _ []domain.StageResult) bool {
	return doc.Extension() == "pdf"
}

func (s *Metadata) Run(ctx context.Context, doc domain.Document) domain.StageResult {
	meta, err := s.extractor.ExtractMetadata(ctx, doc)
	if err != nil {
		return failed(s.Name(), "metadata_extraction_failed", err)
	}
	if meta == "" {
		return withWarning(noOpinion(s.Name()), "no_metadata", "document exposes no metadata")
	}

	label, ok := s.rules.Match(meta)
	if !ok {
		return noOpinion(s.Name())
	}
	return labeled(s.Name(), label, metadataConfidence)
}
