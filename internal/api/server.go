// Package api exposes the packaging pipeline as an HTTP service: page
// images go in as a multipart upload, a fixed-layout EPUB comes back.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Service information reported by /service-info.
const (
	ServiceName    = "img2epub"
	ServiceVersion = "1.0.0"
)

const defaultMaxUploadBytes = 256 << 20

// Server holds the handlers and their shared configuration.
type Server struct {
	maxUploadBytes int64
}

// NewServer creates a Server with default limits.
func NewServer() *Server {
	return &Server{maxUploadBytes: defaultMaxUploadBytes}
}

// Routes builds the service router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/service-info", s.handleServiceInfo)
	r.Post("/convert", s.handleConvert)
	return r
}

// NewHTTPServer wraps the router in an http.Server with timeouts sized
// for large page uploads.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
