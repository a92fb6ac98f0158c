package parsing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

func extractCSV(_ context.Context, doc domain.Document) (string, error) {
	reader := csv.NewReader(bytes.NewReader(doc.Content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read csv record: %w", err)
		}
		line := strings.TrimSpace(strings.Join(record, " "))
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String()), nil
}
