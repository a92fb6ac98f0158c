package httpadapter

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// multipartMemoryLimit is how much of the request body stays in memory
// before spilling to disk.
const multipartMemoryLimit = 32 << 20

func (rt *Router) submitFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form is required"})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}
	if len(headers) > rt.opts.MaxBatchSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("batch of %d exceeds limit %d", len(headers), rt.opts.MaxBatchSize),
		})
		return
	}

	docs := make([]domain.Document, 0, len(headers))
	for _, header := range headers {
		doc, status, err := rt.readDocument(header)
		if err != nil {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		docs = append(docs, doc)
	}

	sub, err := rt.batchUC.Submit(r.Context(), docs)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if sub.Async {
		writeJSON(w, http.StatusAccepted, map[string]string{
			"job_id": sub.JobID,
			"status": string(domain.JobPending),
		})
		return
	}

	requestID := requestIDFromContext(r.Context())
	for i := range sub.Results {
		sub.Results[i].RequestID = requestID
	}
	writeJSON(w, http.StatusOK, sub.Results)
}

// readDocument validates one multipart part and materializes it as a domain
// document. The returned status is meaningful only when err is non-nil.
func (rt *Router) readDocument(header *multipart.FileHeader) (domain.Document, int, error) {
	filename := strings.TrimSpace(path.Base(header.Filename))
	if filename == "" || filename == "." || filename == "/" {
		return domain.Document{}, http.StatusBadRequest,
			fmt.Errorf("every file needs a filename")
	}
	if header.Size > rt.opts.MaxFileSizeBytes {
		return domain.Document{}, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file %q exceeds the %d byte limit", filename, rt.opts.MaxFileSizeBytes)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if _, ok := rt.allowedExts[ext]; !ok {
		return domain.Document{}, http.StatusUnsupportedMediaType,
			fmt.Errorf("file type %q is not supported", ext)
	}

	file, err := header.Open()
	if err != nil {
		return domain.Document{}, http.StatusBadRequest,
			fmt.Errorf("open file %q: %w", filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, rt.opts.MaxFileSizeBytes+1))
	if err != nil {
		return domain.Document{}, http.StatusBadRequest,
			fmt.Errorf("read file %q: %w", filename, err)
	}
	if int64(len(content)) > rt.opts.MaxFileSizeBytes {
		return domain.Document{}, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file %q exceeds the %d byte limit", filename, rt.opts.MaxFileSizeBytes)
	}
	if len(content) == 0 {
		return domain.Document{}, http.StatusBadRequest,
			fmt.Errorf("file %q is empty", filename)
	}

	return domain.Document{
		ID:       uuid.NewString(),
		Filename: filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     int64(len(content)),
		Content:  content,
	}, 0, nil
}
