package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxDrainBytes bounds how much of an unread body is consumed to keep the
// connection reusable. Larger leftovers are just closed.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest consumes what the handler left of the request body
// and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}

			drained, err := io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			if err != nil {
				log.Debugf("drain request body [%s %s]: %s", r.Method, r.URL.Path, err)
			} else if drained == maxDrainBytes {
				log.Debugf("request body [%s %s] left over %d bytes unread", r.Method, r.URL.Path, maxDrainBytes)
			}
			if err := r.Body.Close(); err != nil {
				log.Debugf("close request body [%s %s]: %s", r.Method, r.URL.Path, err)
			}
		})
	}
}
