package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/observability/metrics"
)

type batchServiceFake struct {
	lastDocs   []domain.Document
	submission *domain.Submission
	err        error
}

func (b *batchServiceFake) Submit(_ context.Context, docs []domain.Document) (*domain.Submission, error) {
	b.lastDocs = docs
	if b.err != nil {
		return nil, b.err
	}
	if b.submission != nil {
		return b.submission, nil
	}
	results := make([]domain.ClassificationResult, len(docs))
	for i, doc := range docs {
		results[i] = domain.ClassificationResult{Filename: doc.Filename, Label: "invoice", Confidence: 0.9}
	}
	return &domain.Submission{Results: results}, nil
}

type jobStoreStub struct {
	job *domain.Job
	err error
}

func (s *jobStoreStub) Create(context.Context, int) (*domain.Job, error) { return s.job, s.err }
func (s *jobStoreStub) Get(context.Context, string) (*domain.Job, error) {
	return s.job, s.err
}
func (s *jobStoreStub) RecordResult(context.Context, string, domain.ClassificationResult) error {
	return s.err
}
func (s *jobStoreStub) Fail(context.Context, string) error { return s.err }

func testOptions() Options {
	return Options{
		ServiceName:       "doc-classifier-api",
		PipelineVersion:   "v1.0.0",
		MaxFileSizeBytes:  1 << 20,
		AllowedExtensions: []string{"pdf", "txt", "png"},
		MaxBatchSize:      50,
	}
}

func newTestHandler(batch *batchServiceFake, jobs *jobStoreStub, opts Options) http.Handler {
	if jobs == nil {
		jobs = &jobStoreStub{err: domain.ErrJobNotFound}
	}
	httpMetrics := metrics.NewHTTPServerMetrics(opts.ServiceName)
	rt := NewRouter(batch, jobs, opts, httpMetrics, httpMetrics.Gatherer())
	return rt.Handler()
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestSubmitFilesSyncResponse(t *testing.T) {
	batch := &batchServiceFake{}
	handler := newTestHandler(batch, nil, testOptions())

	body, contentType := multipartBody(t, map[string][]byte{
		"invoice_001.pdf": []byte("%PDF-1.4 fake"),
		"notes.txt":       []byte("plain text"),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("got %d: %s", res.Code, res.Body.String())
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatal("missing request id header")
	}

	// The body is a bare ordered array, not an envelope object.
	var results []domain.ClassificationResult
	if err := json.Unmarshal(res.Body.Bytes(), &results); err != nil {
		t.Fatalf("sync body must decode as a result array: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	for i, result := range results {
		if result.RequestID == "" {
			t.Fatalf("result %d missing request_id", i)
		}
	}
	if len(batch.lastDocs) != 2 || batch.lastDocs[0].Content == nil {
		t.Fatalf("documents not materialized: %+v", batch.lastDocs)
	}
}

func TestSubmitFilesAsyncResponse(t *testing.T) {
	batch := &batchServiceFake{submission: &domain.Submission{Async: true, JobID: "job-123"}}
	handler := newTestHandler(batch, nil, testOptions())

	body, contentType := multipartBody(t, map[string][]byte{"a.txt": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("got %d: %s", res.Code, res.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["job_id"] != "job-123" || resp["status"] != "pending" {
		t.Fatalf("got %+v", resp)
	}
}

func TestSubmitFilesRejectsUnsupportedExtension(t *testing.T) {
	batch := &batchServiceFake{}
	handler := newTestHandler(batch, nil, testOptions())

	body, contentType := multipartBody(t, map[string][]byte{"payload.exe": []byte("MZ")})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got %d", res.Code)
	}
	if batch.lastDocs != nil {
		t.Fatal("invalid batch must not reach the service")
	}
}

func TestSubmitFilesRejectsEmptyFile(t *testing.T) {
	handler := newTestHandler(&batchServiceFake{}, nil, testOptions())

	body, contentType := multipartBody(t, map[string][]byte{"empty.txt": nil})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("got %d", res.Code)
	}
}

func TestSubmitFilesRejectsOversizedBatch(t *testing.T) {
	opts := testOptions()
	opts.MaxBatchSize = 2
	batch := &batchServiceFake{}
	handler := newTestHandler(batch, nil, opts)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.txt": []byte("x"), "b.txt": []byte("x"), "c.txt": []byte("x"),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d", res.Code)
	}
	if batch.lastDocs != nil {
		t.Fatal("oversized batch must not reach the service")
	}
}

func TestSubmitFilesRejectsOversizedFile(t *testing.T) {
	opts := testOptions()
	opts.MaxFileSizeBytes = 8
	handler := newTestHandler(&batchServiceFake{}, nil, opts)

	body, contentType := multipartBody(t, map[string][]byte{"big.txt": bytes.Repeat([]byte("x"), 9)})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d", res.Code)
	}
}

func TestSubmitFilesRequiresMultipart(t *testing.T) {
	handler := newTestHandler(&batchServiceFake{}, nil, testOptions())

	req := httptest.NewRequest(http.MethodPost, "/v1/files", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("got %d", res.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	opts := testOptions()
	opts.APIKeys = []string{"secret-key"}
	handler := newTestHandler(&batchServiceFake{}, nil, opts)

	body, contentType := multipartBody(t, map[string][]byte{"a.txt": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("missing key expected 401, got %d", res.Code)
	}

	body, contentType = multipartBody(t, map[string][]byte{"a.txt": []byte("x")})
	req = httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, "secret-key")
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("valid key expected 200, got %d", res.Code)
	}
}

func TestGetJob(t *testing.T) {
	job := &domain.Job{
		ID:         "job-1",
		Status:     domain.JobCompleted,
		TotalCount: 1, CompletedCount: 1,
		Results:   []domain.ClassificationResult{{Filename: "a.pdf", Label: "invoice"}},
		CreatedAt: time.Now().UTC(),
	}
	handler := newTestHandler(&batchServiceFake{}, &jobStoreStub{job: job}, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("got %d", res.Code)
	}
	var got domain.Job
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "job-1" || got.Status != domain.JobCompleted || len(got.Results) != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestGetJobNotFound(t *testing.T) {
	handler := newTestHandler(&batchServiceFake{}, &jobStoreStub{err: domain.ErrJobNotFound}, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusNotFound {
		t.Fatalf("got %d", res.Code)
	}
}

func TestVersion(t *testing.T) {
	handler := newTestHandler(&batchServiceFake{}, nil, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/v1/version", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("got %d", res.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["pipeline_version"] != "v1.0.0" {
		t.Fatalf("got %+v", resp)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&batchServiceFake{}, nil, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("got %d", res.Code)
	}
}
