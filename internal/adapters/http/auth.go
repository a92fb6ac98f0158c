package httpadapter

import (
	"net/http"
	"strings"
)

const apiKeyHeader = "X-API-Key"

// apiKeyMiddleware enforces the key header on classification endpoints.
// An empty key set disables authentication entirely.
func (rt *Router) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(rt.apiKeys) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(apiKeyHeader))
		if _, ok := rt.apiKeys[key]; !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
