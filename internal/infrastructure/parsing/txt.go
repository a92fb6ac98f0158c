package parsing

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

func extractTXT(_ context.Context, doc domain.Document) (string, error) {
	if !utf8.Valid(doc.Content) {
		return "", fmt.Errorf("binary content in %s declared as text", doc.Filename)
	}
	return strings.TrimSpace(string(doc.Content)), nil
}
