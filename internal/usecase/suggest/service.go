// Package suggest implements typeahead autocomplete and did-you-mean spelling
// corrections for movie titles.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/metrics"
)

// Autocomplete sizing.
const (
	DefaultAutocompleteSize = 10
	maxAutocompleteSize     = 50
)

// spellingSize is how many correction candidates one misspelled token yields.
const spellingSize = 5

// Item is one autocomplete entry. Typeahead fires on every keystroke, so the
// payload stays minimal: no overview, poster, or genre data.
type Item struct {
	MovieID     string `json:"movieId"`
	Title       string `json:"title"`
	ReleaseDate string `json:"releaseDate"`
}

// Service handles autocomplete and spelling suggestions.
type Service struct {
	repo Repository
}

// New creates a suggest service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Autocomplete returns titles whose ngram-analyzed title matches every token
// of the prefix. A blank prefix short-circuits to an empty list without
// touching the backend.
func (s *Service) Autocomplete(ctx context.Context, prefix string, size int) ([]Item, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []Item{}, nil
	}
	if size <= 0 {
		size = DefaultAutocompleteSize
	}
	if size > maxAutocompleteSize {
		size = maxAutocompleteSize
	}

	q := query.Query{
		Root: query.Match{
			Field:    "title.ngram",
			Query:    prefix,
			Operator: query.OperatorAnd,
		},
		Size: size,
	}
	movies, _, err := s.repo.Search(ctx, q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("autocomplete", "error").Inc()
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("autocomplete", "ok").Inc()

	items := make([]Item, len(movies))
	for i, m := range movies {
		items[i] = Item{MovieID: m.ID, Title: m.Title, ReleaseDate: m.ReleaseDate}
	}
	return items, nil
}

// Spelling returns did-you-mean corrections for a probably misspelled title.
// A blank input yields no suggestions.
func (s *Service) Spelling(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}
	out, err := s.repo.Suggest(ctx, text, spellingSize)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("suggest", "error").Inc()
		return nil, fmt.Errorf("spelling suggestions: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("suggest", "ok").Inc()
	if out == nil {
		out = []string{}
	}
	return out, nil
}
