// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/yashowardhanspatil/cognemailAI/internal/httputil"
	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// serpAPIBase is the SerpAPI JSON endpoint. Declared as a var so tests can
// substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

const providerSerpAPI = "SerpAPI"

// Default request parameters: English results, Indian region, safe search on.
const (
	DefaultEngine   = "google"
	DefaultLanguage = "en"
	DefaultRegion   = "in"
	DefaultSafe     = "active"
)

// SerpAPIClient queries SerpAPI and returns its organic results.
type SerpAPIClient struct {
	Client *http.Client
	APIKey string
	Config types.SearchConfig
	Logger *slog.Logger
}

// NewSerpAPIClient builds a client from cfg, filling unset request
// parameters with the defaults.
func NewSerpAPIClient(cfg types.SearchConfig, apiKey string, logger *slog.Logger) *SerpAPIClient {
	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Safe == "" {
		cfg.Safe = DefaultSafe
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SerpAPIClient{
		Client: httputil.NewClient(cfg.HTTPConfig),
		APIKey: apiKey,
		Config: cfg,
		Logger: logger,
	}
}

// Name returns the provider name used in user-facing messages.
func (c *SerpAPIClient) Name() string { return providerSerpAPI }

// Search sends a single query to SerpAPI.
func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	if c.APIKey == "" {
		return nil, &ProviderError{Provider: providerSerpAPI, Message: "API key is not set"}
	}

	reqURL := c.endpoint() + "?" + c.params(query).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.Do(ctx, c.Client, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("search cancelled: %w", ctxErr)
		}
		return nil, &TransportError{Provider: providerSerpAPI, Err: err}
	}
	c.logger().Debug("search response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.Int("bytes", len(resp.Body)),
	)

	var sr serpResponse
	decodeErr := resp.DecodeJSON(&sr)

	// SerpAPI reports most failures as {"error": "..."}, with or without a
	// non-2xx status.
	if decodeErr == nil && sr.Error != "" {
		return nil, &ProviderError{Provider: providerSerpAPI, StatusCode: statusIfFailed(resp.StatusCode), Message: sr.Error}
	}
	if statusErr := resp.Err(); statusErr != nil {
		return nil, &ProviderError{Provider: providerSerpAPI, StatusCode: resp.StatusCode, Message: statusErr.Error()}
	}
	if decodeErr != nil {
		return nil, &ProviderError{Provider: providerSerpAPI, Message: decodeErr.Error()}
	}

	results := make([]types.SearchResult, 0, len(sr.OrganicResults))
	for i, r := range sr.OrganicResults {
		pos := r.Position
		if pos == 0 {
			pos = i + 1
		}
		results = append(results, types.SearchResult{
			Position: pos,
			Title:    r.Title,
			Link:     r.Link,
			Snippet:  r.Snippet,
		})
	}
	c.logger().Debug("organic results", slog.Int("count", len(results)))
	return results, nil
}

func (c *SerpAPIClient) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *SerpAPIClient) endpoint() string {
	if c.Config.Endpoint != "" {
		return c.Config.Endpoint
	}
	return serpAPIBase
}

func (c *SerpAPIClient) params(query string) url.Values {
	return url.Values{
		"engine":  {c.Config.Engine},
		"q":       {query},
		"hl":      {c.Config.Language},
		"gl":      {c.Config.Region},
		"safe":    {c.Config.Safe},
		"api_key": {c.APIKey},
	}
}

func statusIfFailed(code int) int {
	if code >= 200 && code < 300 {
		return 0
	}
	return code
}

// SerpAPI JSON structures. Only the fields the pipeline reads are mapped.
type serpResponse struct {
	Error          string        `json:"error"`
	OrganicResults []serpOrganic `json:"organic_results"`
}

type serpOrganic struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}
