// Package web serves the method management UI: a side menu with four screens
// (list, add, update, delete) rendered as HTML forms over the datastore.
package web

import (
	"net/http"

	"github.com/meslamib3/storiesdb/internal/datastore"
	"github.com/meslamib3/storiesdb/internal/metrics"
	"github.com/meslamib3/storiesdb/internal/ratelimit"
)

// maxFormBytes bounds a submitted form; 25 text fields fit comfortably.
const maxFormBytes = 1 << 20

// Server renders the four screens and translates submissions into store calls.
type Server struct {
	store   datastore.Store
	metrics *metrics.Metrics
	submits *ratelimit.Limiter
	views   *renderer
}

// Option configures a Server
type Option func(*Server)

// WithMetrics records requests in m and exposes it on /metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithSubmitLimiter throttles form submissions; over-limit requests get 429
func WithSubmitLimiter(l *ratelimit.Limiter) Option {
	return func(s *Server) {
		s.submits = l
	}
}

// NewServer creates a Server over store
func NewServer(store datastore.Store, opts ...Option) (*Server, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store: store,
		views: views,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the routed UI
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", http.RedirectHandler("/methods", http.StatusSeeOther))

	mux.Handle("GET /methods", s.instrument(screenList, s.handleList))
	mux.Handle("GET /methods/new", s.instrument(screenAdd, s.handleAddForm))
	mux.Handle("POST /methods/new", s.instrument(screenAdd, s.handleAdd))
	mux.Handle("GET /methods/update", s.instrument(screenUpdate, s.handleUpdateForm))
	mux.Handle("POST /methods/update", s.instrument(screenUpdate, s.handleUpdate))
	mux.Handle("GET /methods/delete", s.instrument(screenDelete, s.handleDeleteForm))
	mux.Handle("POST /methods/delete", s.instrument(screenDelete, s.handleDelete))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", s.metrics.Handler())

	return mux
}
