// Package parsing provides the format-specific text and metadata extraction
// adapters consumed by the text and metadata stages.
package parsing

import (
	"context"
	"fmt"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// ExtractFunc extracts plain text from one document format.
type ExtractFunc func(ctx context.Context, doc domain.Document) (string, error)

// Registry maps filename extensions to extractors. It implements
// ports.TextExtractor and ports.MetadataExtractor.
type Registry struct {
	extractors map[string]ExtractFunc
}

// NewRegistry wires the built-in extractors.
func NewRegistry() *Registry {
	return &Registry{
		extractors: map[string]ExtractFunc{
			"pdf":  extractPDF,
			"docx": extractDOCX,
			"xlsx": extractXLSX,
			"csv":  extractCSV,
			"txt":  extractTXT,
		},
	}
}

// Supports reports whether an extractor exists for the extension.
func (r *Registry) Supports(extension string) bool {
	_, ok := r.extractors[extension]
	return ok
}

// ExtractText extracts the body text of doc using the extractor registered
// for its extension.
func (r *Registry) ExtractText(ctx context.Context, doc domain.Document) (string, error) {
	extract, ok := r.extractors[doc.Extension()]
	if !ok {
		return "", domain.WrapError(domain.ErrUnsupportedMedia, "extract text",
			fmt.Errorf("no extractor for extension %q", doc.Extension()))
	}
	return extract(ctx, doc)
}

// ExtractMetadata returns metadata text for formats that expose it. Only PDF
// is supported: the first page text doubles as document metadata. Other
// formats yield "" without error so the metadata stage can skip them.
func (r *Registry) ExtractMetadata(ctx context.Context, doc domain.Document) (string, error) {
	if doc.Extension() != "pdf" {
		return "", nil
	}
	return extractPDFFirstPage(ctx, doc)
}
