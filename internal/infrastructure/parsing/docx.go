package parsing

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// extractDOCX pulls the visible text out of word/document.xml. A DOCX file
// is a zip container; text lives in w:t elements, paragraphs in w:p.
func extractDOCX(_ context.Context, doc domain.Document) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(doc.Content), doc.Size)
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx container has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
