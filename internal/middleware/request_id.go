package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, reusing one supplied by the
// frontend proxy when present. The id is echoed back on the response so
// support staff can quote it from the browser's network tab.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := RequestIDFrom(r)
			if requestID == "" {
				requestID = newRequestID()
			}
			r.Header.Set(requestIDHeader, requestID)
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDFrom reads the request id off an incoming request, if any.
func RequestIDFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(requestIDHeader))
}

func newRequestID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
