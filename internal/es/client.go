// Package es wraps the Elasticsearch client with the narrow surface the
// repositories need: raw query execution and single-document fetches. Query
// construction lives in the repository layer; this package only ships bodies
// over the wire and decodes the envelope.
package es

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	json "github.com/goccy/go-json"

	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
)

// Client is a thin wrapper around the Elasticsearch client bound to a single
// index.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New creates a Client from config.
func New(cfg config.ElasticConfig) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}
	return &Client{es: es, index: cfg.Index}, nil
}

// Index returns the index name this client is bound to.
func (c *Client) Index() string { return c.index }

// SearchResponse is the decoded envelope of a search call.
type SearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
	Suggest      map[string][]SuggestEntry  `json:"suggest"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

// Hit is one search hit with its raw source document.
type Hit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// SuggestEntry is one analyzed token of a suggest request together with its
// correction candidates.
type SuggestEntry struct {
	Text    string          `json:"text"`
	Offset  int             `json:"offset"`
	Length  int             `json:"length"`
	Options []SuggestOption `json:"options"`
}

// SuggestOption is one correction candidate.
type SuggestOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Freq  int     `json:"freq"`
}

// Search executes a raw query body against the bound index. Transport and
// non-2xx failures wrap domain.ErrBackendUnavailable.
func (c *Client) Search(ctx context.Context, body map[string]any) (*SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: search [%s]: %s", domain.ErrBackendUnavailable, res.Status(), msg)
	}

	var sr SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", domain.ErrBackendUnavailable, err)
	}
	return &sr, nil
}

// Get fetches a single document's source by id. Returns
// domain.ErrMovieNotFound on a missing document.
func (c *Client) Get(ctx context.Context, id string) (json.RawMessage, error) {
	res, err := c.es.Get(
		c.index,
		id,
		c.es.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: get request: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("get %q: %w", id, domain.ErrMovieNotFound)
	}
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: get [%s]: %s", domain.ErrBackendUnavailable, res.Status(), msg)
	}

	var doc struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode get response: %v", domain.ErrBackendUnavailable, err)
	}
	if !doc.Found {
		return nil, fmt.Errorf("get %q: %w", id, domain.ErrMovieNotFound)
	}
	return doc.Source, nil
}

// Ping checks cluster reachability.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: ping: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: ping [%s]", domain.ErrBackendUnavailable, res.Status())
	}
	return nil
}
