// Package result models one page of search output.
package result

import "github.com/kinoworks/cinedex/internal/domain"

// Page is one window of ranked results plus the total hit count reported by
// the store.
type Page struct {
	Total   int64            `json:"totalHits"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
	Results []domain.Summary `json:"results"`
}
