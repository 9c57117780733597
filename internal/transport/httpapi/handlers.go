package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/kinoworks/cinedex/internal/domain/search/request"
	cataloguc "github.com/kinoworks/cinedex/internal/usecase/catalog"
	tasteuc "github.com/kinoworks/cinedex/internal/usecase/taste"
)

// handleSearch handles GET /api/movies/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	genreIDs, ok := queryCSVInts(r, "genreIds")
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "genreIds must be a comma-separated list of integers")
		return
	}

	p := request.Params{
		Keyword:       r.URL.Query().Get("q"),
		NowPlaying:    queryBoolPtr(r, "nowPlaying"),
		GenreIDs:      genreIDs,
		MinRating:     queryFloatPtr(r, "minRating"),
		MinVoteCount:  queryIntPtr(r, "minVoteCount"),
		ReleaseFrom:   r.URL.Query().Get("releaseDateFrom"),
		ReleaseTo:     r.URL.Query().Get("releaseDateTo"),
		SortBy:        r.URL.Query().Get("sortBy"),
		SortOrder:     r.URL.Query().Get("sortOrder"),
		Page:          queryInt(r, "page", 0),
		Size:          queryInt(r, "size", 0),
		ViewerIsAdult: s.age.IsAdult(r),
	}

	page, err := s.search.Search(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleAutocomplete handles GET /api/movies/autocomplete.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	items, err := s.suggest.Autocomplete(r.Context(), r.URL.Query().Get("q"), queryInt(r, "size", 0))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// handleSuggest handles GET /api/movies/suggest.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggest.Spelling(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// handleFilters handles GET /api/movies/filters.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.filters.Options(r.Context()))
}

// handleGet handles GET /api/movies/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	summary, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleRecommendations handles GET /api/movies/{id}/recommendations. The
// recommender degrades instead of failing, so this always answers 200.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	results := s.recommend.Recommend(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) window(r *http.Request) cataloguc.Window {
	return cataloguc.Window{
		Page:          queryInt(r, "page", 0),
		Size:          queryInt(r, "size", 0),
		ViewerIsAdult: s.age.IsAdult(r),
	}
}

// handlePopular handles GET /api/movies/popular.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.Popular(r.Context(), s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleNowPlaying handles GET /api/movies/now-playing.
func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.NowPlaying(r.Context(), s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleTopRated handles GET /api/movies/top-rated.
func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.TopRated(r.Context(), s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleUpcoming handles GET /api/movies/upcoming.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.Upcoming(r.Context(), s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleDiscover handles GET /api/movies/discover.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	genreID := queryIntPtr(r, "genreId")
	if genreID == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "genreId is required")
		return
	}
	page, err := s.catalog.Discover(r.Context(), *genreID, s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleAll handles GET /api/movies/all.
func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	page, err := s.catalog.All(r.Context(), s.window(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleCandidates handles GET /api/movies/candidates.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	results, err := s.catalog.Candidates(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// handleBatch handles POST /api/movies/batch.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "ids is required")
		return
	}

	results, err := s.catalog.GetBatch(r.Context(), req.IDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleTaste handles POST /api/movies/taste.
func (s *Server) handleTaste(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TopGenres      []string `json:"topGenres"`
		YearFrom       int      `json:"yearFrom"`
		YearTo         int      `json:"yearTo"`
		AvgLikedRating float64  `json:"avgLikedRating"`
		MovieIDs       []string `json:"movieIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.MovieIDs) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "movieIds is required")
		return
	}

	picks, err := s.catalog.GetBatch(r.Context(), req.MovieIDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	profile := s.taste.Profile(r.Context(), tasteuc.Preference{
		TopGenres:      req.TopGenres,
		YearFrom:       req.YearFrom,
		YearTo:         req.YearTo,
		AvgLikedRating: req.AvgLikedRating,
	}, picks)
	writeJSON(w, http.StatusOK, profile)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}
