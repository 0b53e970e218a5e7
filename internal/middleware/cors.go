package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	allowedHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization"
	allowedMethods = "GET, POST, PUT, OPTIONS"
)

// Cors allows the configured browser origins. Requests without an Origin
// header (curl, fitctl, server to server) pass untouched.
func Cors(origins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	allowAny := false
	for _, o := range origins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAny = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowAny && !allowed[origin] {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Add("Vary", "Origin")

			next.ServeHTTP(w, r)
		})
	}
}
