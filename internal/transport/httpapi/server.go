// Package httpapi is the HTTP transport: a chi router over the usecases, a
// small ordered error-handler chain for domain sentinels, and the bearer auth
// and age-gating middleware.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/domain"
	cataloguc "github.com/kinoworks/cinedex/internal/usecase/catalog"
	filtersuc "github.com/kinoworks/cinedex/internal/usecase/filters"
	healthuc "github.com/kinoworks/cinedex/internal/usecase/health"
	recommenduc "github.com/kinoworks/cinedex/internal/usecase/recommend"
	searchuc "github.com/kinoworks/cinedex/internal/usecase/search"
	suggestuc "github.com/kinoworks/cinedex/internal/usecase/suggest"
	tasteuc "github.com/kinoworks/cinedex/internal/usecase/taste"
)

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeUnauthorized       = "unauthorized"
	codeMovieNotFound      = "movie_not_found"
	codeBackendUnavailable = "search_backend_unavailable"
	codeInternalError      = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the movie API.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	filters       *filtersuc.Service
	recommend     *recommenduc.Service
	catalog       *cataloguc.Service
	taste         *tasteuc.Service
	health        *healthuc.Service
	age           AgeResolver
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	filters *filtersuc.Service,
	recommend *recommenduc.Service,
	catalog *cataloguc.Service,
	taste *tasteuc.Service,
	health *healthuc.Service,
	age AgeResolver,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		suggest:   suggest,
		filters:   filters,
		recommend: recommend,
		catalog:   catalog,
		taste:     taste,
		health:    health,
		age:       age,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMovieNotFound, http.StatusNotFound, codeMovieNotFound),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, codeBackendUnavailable),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/autocomplete", s.handleAutocomplete)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/filters", s.handleFilters)
		r.Get("/popular", s.handlePopular)
		r.Get("/now-playing", s.handleNowPlaying)
		r.Get("/top-rated", s.handleTopRated)
		r.Get("/upcoming", s.handleUpcoming)
		r.Get("/discover", s.handleDiscover)
		r.Get("/all", s.handleAll)
		r.Get("/candidates", s.handleCandidates)
		r.Post("/batch", s.handleBatch)
		r.Post("/taste", s.handleTaste)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/recommendations", s.handleRecommendations)
	})
	r.Get("/health", s.handleHealth)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns the sentinel text for known errors and a generic
// message otherwise, so internals never leak into responses.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMovieNotFound,
		domain.ErrBackendUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
