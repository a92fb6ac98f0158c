package parsing

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// Classification only needs a text sample, not the full workbook; large
// spreadsheets are cut off after this many rows per sheet.
const xlsxMaxRowsPerSheet = 200

func extractXLSX(_ context.Context, doc domain.Document) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	if err != nil {
		return "", fmt.Errorf("open xlsx workbook: %w", err)
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for i, row := range rows {
			if i >= xlsxMaxRowsPerSheet {
				break
			}
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
