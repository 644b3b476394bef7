package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a screen handler with request ids, submit throttling,
// logging and metrics.
func (s *Server) instrument(screen string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		if r.Method == http.MethodPost && s.submits != nil && !s.submits.Allow() {
			slog.Warn("Submission rate limit exceeded", "limiter", s.submits.Name(), "screen", screen, "request_id", requestID)
			w.Header().Set("Retry-After", "1")
			http.Error(rec, "too many submissions, slow down", http.StatusTooManyRequests)
		} else {
			next(rec, r)
		}

		s.metrics.ObserveRequest(screen, r.Method, rec.status)
		slog.Info("Request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"screen", screen,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
