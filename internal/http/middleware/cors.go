package middlewarex

import (
	"net/http"
	"strings"
)

// CORS restricts browser access to the configured storefront origins. A
// pattern ending in "*" matches by prefix, so "http://localhost:*" covers any
// local port. Preflight requests are answered here and never reach handlers.
func CORS(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(allowed, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Max-Age", "3600")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if strings.HasSuffix(a, "*") {
			if strings.HasPrefix(origin, strings.TrimSuffix(a, "*")) {
				return true
			}
			continue
		}
		if a == origin {
			return true
		}
	}
	return false
}
