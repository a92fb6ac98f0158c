package domain

import (
	"path/filepath"
	"strings"
)

// StageName identifies one classification strategy in the pipeline.
type StageName string

const (
	StageFilename StageName = "stage_filename"
	StageMetadata StageName = "stage_metadata"
	StageText     StageName = "stage_text"
	StageOCR      StageName = "stage_ocr"
)

// StageOrder is the execution order of the pipeline, cheapest first.
func StageOrder() []StageName {
	return []StageName{StageFilename, StageMetadata, StageText, StageOCR}
}

// LabelUnsure is the sentinel label assigned when no stage reaches the
// assignment threshold.
const LabelUnsure = "unsure"

// Document is the in-memory representation of one uploaded file. It is
// immutable after ingestion and owned by the pipeline run processing it.
type Document struct {
	ID       string
	Filename string
	MimeType string
	Size     int64
	Content  []byte
}

// Extension returns the lowercase filename extension without the dot,
// or "" when the filename carries none.
func (d Document) Extension() string {
	ext := filepath.Ext(d.Filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "tiff": {}, "tif": {}, "bmp": {}, "gif": {},
}

// IsImage reports whether the document looks like a raster image, either by
// extension or declared MIME type.
func (d Document) IsImage() bool {
	if _, ok := imageExtensions[d.Extension()]; ok {
		return true
	}
	return strings.HasPrefix(d.MimeType, "image/")
}

// Note is a structured warning or error entry attached to a result.
type Note struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StageResult is the outcome of one stage invocation. A nil Label means the
// stage had no opinion; a nil Confidence means it produced no usable score.
type StageResult struct {
	Stage      StageName
	Label      *string
	Confidence *float64
	Warnings   []Note
	Errors     []Note
}

// Labeled reports whether the stage produced both a label and a confidence.
func (r StageResult) Labeled() bool {
	return r.Label != nil && r.Confidence != nil
}

// ClassificationResult is the file-level outcome exposed to callers.
// StageConfidences always carries an entry per stage, nil for stages that
// did not execute. Never mutated after creation.
type ClassificationResult struct {
	Filename         string                 `json:"filename"`
	MimeType         string                 `json:"mime_type"`
	SizeBytes        int64                  `json:"size_bytes"`
	Label            string                 `json:"label"`
	Confidence       float64                `json:"confidence"`
	StageConfidences map[StageName]*float64 `json:"stage_confidences"`
	PipelineVersion  string                 `json:"pipeline_version"`
	ProcessingMS     float64                `json:"processing_ms"`
	RequestID        string                 `json:"request_id,omitempty"`
	Warnings         []Note                 `json:"warnings"`
	Errors           []Note                 `json:"errors"`
}

// Submission is the outcome of a batch submit: either the full result set
// (sync path) or the identifier of a background job (async path).
type Submission struct {
	Async   bool
	JobID   string
	Results []ClassificationResult
}
