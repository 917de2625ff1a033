package bravesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i2y/mcpgw/internal/domain"
)

// Defaults for the Brave web search endpoint.
const (
	DefaultURL        = "https://api.search.brave.com/res/v1/web/search"
	DefaultCountry    = "US"
	DefaultSearchLang = "en"
	DefaultCount      = 20
)

// ErrMissingAPIKey is returned by New when no subscription token is configured.
var ErrMissingAPIKey = errors.New("brave search API key is not set (API_KEY_BRAVE)")

// Config configures the search client. Zero fields take the defaults above.
type Config struct {
	APIKey     string
	URL        string
	Country    string
	SearchLang string
	Count      int
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.SearchLang == "" {
		c.SearchLang = DefaultSearchLang
	}
	if c.Count <= 0 {
		c.Count = DefaultCount
	}
	return c
}

// Client implements usecase.WebSearcher against the Brave Search API.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New creates a search client. A nil httpClient uses http.DefaultClient.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		cfg:    cfg.withDefaults(),
		client: httpClient,
		logger: logger.With("component", "brave_search"),
	}, nil
}

// Search runs a web search and returns Brave's JSON response unchanged.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ValidationError{Field: "query", Err: errors.New("query is required")}
	}
	log := c.logger.With(slog.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("country", c.cfg.Country)
	params.Set("search_lang", c.cfg.SearchLang)
	params.Set("count", strconv.Itoa(c.cfg.Count))
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.cfg.APIKey)

	log.Debug("Sending search request", slog.String("url", c.cfg.URL))
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("Search request failed", slog.Any("error", err))
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Search API returned error status", slog.Int("status", resp.StatusCode))
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: search response is not JSON", domain.ErrMalformedResponse)
	}

	log.Debug("Search request successful", slog.Int("size", len(body)))
	return json.RawMessage(body), nil
}
