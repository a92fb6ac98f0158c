package parsing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// extractPDF reads the full plain text of a PDF. The underlying parser can
// panic on malformed input, so the call is fenced and converted into an
// ordinary error for the fail-soft stage contract.
func extractPDF(_ context.Context, doc domain.Document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), doc.Size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// extractPDFFirstPage reads only the first page, which the metadata stage
// treats as document metadata.
func extractPDFFirstPage(_ context.Context, doc domain.Document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), doc.Size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	if reader.NumPage() < 1 {
		return "", nil
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", nil
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("read pdf first page: %w", err)
	}
	return strings.TrimSpace(content), nil
}
