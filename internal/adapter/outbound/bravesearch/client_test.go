package bravesearch_test

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/mcpgw/internal/adapter/outbound/bravesearch"
	"github.com/i2y/mcpgw/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg bravesearch.Config) *bravesearch.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.URL = server.URL + "/res/v1/web/search"
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	c, err := bravesearch.New(cfg, server.Client(), testLogger)
	require.NoError(t, err)
	return c
}

func TestSearch_Request(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"search","web":{"results":[]}}`))
	}, bravesearch.Config{APIKey: "secret"})

	res, err := c.Search(context.Background(), "coca-cola méxico")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"search","web":{"results":[]}}`, string(res))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/res/v1/web/search", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "coca-cola méxico", q.Get("q"))
	assert.Equal(t, "US", q.Get("country"))
	assert.Equal(t, "en", q.Get("search_lang"))
	assert.Equal(t, "20", q.Get("count"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "secret", got.Header.Get("X-Subscription-Token"))
}

func TestSearch_ConfigOverrides(t *testing.T) {
	var query map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}, bravesearch.Config{Country: "MX", SearchLang: "es", Count: 5})

	_, err := c.Search(context.Background(), "noticias")
	require.NoError(t, err)
	assert.Equal(t, []string{"MX"}, query["country"])
	assert.Equal(t, []string{"es"}, query["search_lang"])
	assert.Equal(t, []string{"5"}, query["count"])
}

func TestSearch_GzipResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"web":{"results":[{"title":"Go"}]}}`))
		_ = gz.Close()
	}, bravesearch.Config{})

	res, err := c.Search(context.Background(), "golang")
	require.NoError(t, err)
	assert.JSONEq(t, `{"web":{"results":[{"title":"Go"}]}}`, string(res))
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		query    string
		checkErr func(t *testing.T, err error)
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`rate limited`))
			},
			query: "go",
			checkErr: func(t *testing.T, err error) {
				var transportErr *domain.TransportError
				require.ErrorAs(t, err, &transportErr)
				assert.Equal(t, http.StatusTooManyRequests, transportErr.StatusCode)
				assert.Equal(t, "rate limited", transportErr.Body)
			},
		},
		{
			name: "body is not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			query: "go",
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrMalformedResponse)
			},
		},
		{
			name: "empty query",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no request expected")
			},
			query: "  ",
			checkErr: func(t *testing.T, err error) {
				var valErr *domain.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, "query", valErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler, bravesearch.Config{})
			res, err := c.Search(context.Background(), tt.query)
			assert.Nil(t, res)
			require.Error(t, err)
			tt.checkErr(t, err)
		})
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := bravesearch.New(bravesearch.Config{}, nil, testLogger)
	assert.ErrorIs(t, err, bravesearch.ErrMissingAPIKey)
}
