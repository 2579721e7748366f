// Package api exposes the graph cache over HTTP.
//
// The server wraps a [cache.Cache] with a chi router. All responses are
// JSON. Because the cache is not safe for concurrent use, every handler
// funnels through a single mutex: the HTTP layer is the one writer the
// cache's contract requires.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/biograph-io/biograph/pkg/cache"
	"github.com/biograph-io/biograph/pkg/errors"
)

// Server serves the cache and query API.
type Server struct {
	cache  *cache.Cache
	logger *log.Logger

	// mu serializes all cache access; see the package comment.
	mu sync.Mutex
}

// New creates a server over the given cache.
func New(c *cache.Cache, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cache: c, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/networks", s.handleListNetworks)
	r.Get("/networks/{id}", s.handleGetNetwork)
	r.Get("/networks/{id}/overlap", s.handleOverlap)
	r.Get("/networks/{id}/top-degree", s.handleTopDegree)
	r.Get("/networks/{id}/top-pathologies", s.handleTopPathologies)
	r.Post("/query", s.handleQuery)
	r.Get("/search", s.handleSearch)

	return r
}

// requestIDHeader carries the per-request correlation id.
const requestIDHeader = "X-Request-ID"

// requestID assigns a uuid to each request, honoring one supplied by the
// client.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs method, path, and elapsed time at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(requestIDHeader),
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the JSON response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Encode response", "error", err)
	}
}

// writeError maps an error to a status code via its error code and writes
// the JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	// Not-found beats the load-failure wrapper the cache puts around
	// store errors.
	case errors.Is(err, errors.CodeNotFound), errors.Is(err, errors.CodeNetworkNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.CodeInvalidSeed), errors.Is(err, errors.CodeInvalidSeedData),
		errors.Is(err, errors.CodeInvalidAnnotation), errors.Is(err, errors.CodeInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, errors.CodeLoadFailed):
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

// badRequest writes a 400 with the given message.
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(errors.CodeInvalidConfig),
		Message: message,
	})
}
