package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/manifoldfrs/doc-classifier/internal/core/ports"
	"github.com/manifoldfrs/doc-classifier/internal/observability/metrics"
)

// Options carries the request-level policy knobs the router enforces before
// work reaches the use case layer.
type Options struct {
	ServiceName       string
	PipelineVersion   string
	APIKeys           []string
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	MaxBatchSize      int
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxConcurrent     int
}

type Router struct {
	batchUC ports.BatchService
	jobs    ports.JobStore
	opts    Options

	httpMetrics *metrics.HTTPServerMetrics
	gatherers   []prometheus.Gatherer
	allowedExts map[string]struct{}
	apiKeys     map[string]struct{}
}

func NewRouter(
	batchUC ports.BatchService,
	jobs ports.JobStore,
	opts Options,
	httpMetrics *metrics.HTTPServerMetrics,
	gatherers ...prometheus.Gatherer,
) *Router {
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	keys := make(map[string]struct{}, len(opts.APIKeys))
	for _, key := range opts.APIKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys[key] = struct{}{}
		}
	}
	return &Router{
		batchUC:     batchUC,
		jobs:        jobs,
		opts:        opts,
		httpMetrics: httpMetrics,
		gatherers:   gatherers,
		allowedExts: allowed,
		apiKeys:     keys,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/version", rt.version)
	mux.Handle("/metrics", metrics.Handler(rt.gatherers...))
	mux.Handle("/v1/files", rt.apiKeyMiddleware(http.HandlerFunc(rt.submitFiles)))
	mux.Handle("/v1/jobs/", rt.apiKeyMiddleware(http.HandlerFunc(rt.getJob)))

	var handler http.Handler = mux
	if rt.opts.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	}
	if rt.opts.MaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.opts.MaxConcurrent, 50*time.Millisecond)
	}
	handler = accessLogMiddleware(handler)
	if rt.httpMetrics != nil {
		handler = rt.httpMetrics.Middleware(rt.opts.ServiceName, handler)
	}
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) version(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service":          rt.opts.ServiceName,
		"pipeline_version": rt.opts.PipelineVersion,
	})
}

func (rt *Router) getJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job id is required"})
		return
	}

	job, err := rt.jobs.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
