// Package trailingslash normalises request paths before routing.
package trailingslash

import (
	"net/http"
	"strings"
)

// Strip serves /posts/ as /posts. gin resolves routes before its own
// middleware runs, so the rewrite wraps the engine as a plain http.Handler.
func Strip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path := r.URL.Path; len(path) > 1 && strings.HasSuffix(path, "/") {
			r.URL.Path = strings.TrimRight(path, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}
