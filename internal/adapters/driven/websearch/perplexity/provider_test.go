package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchServer(t *testing.T, payload map[string]any, capture *searchRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if capture != nil {
			*capture = req
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestSearch_MissingAPIKeySetsErrorField(t *testing.T) {
	p := NewProvider(Config{BaseURL: "http://127.0.0.1:1"})

	resp, err := p.Search(context.Background(), "binary trees", 5, "week")

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, "Perplexity API key not configured", resp.Error)
}

func TestSearch_SendsQueryWithRecencyFilter(t *testing.T) {
	var captured searchRequest
	server := searchServer(t, map[string]any{
		"choices":   []map[string]any{{"message": map[string]any{"content": "answer"}}},
		"citations": []any{"https://go.dev/blog/slices"},
	}, &captured)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "go slice internals", 5, "month")

	require.NoError(t, err)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "sonar", captured.Model)
	assert.Equal(t, "month", captured.RecencyFilter)
	assert.True(t, captured.ReturnCitations)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "go slice internals", captured.Messages[1].Content)
}

func TestSearch_ParsesStringCitations(t *testing.T) {
	server := searchServer(t, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": "answer"}}},
		"citations": []any{
			"https://en.wikipedia.org/wiki/B-tree",
			"https://go.dev/doc/effective_go",
		},
	}, nil)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "b-trees", 5, "")

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Source 1", resp.Results[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/B-tree", resp.Results[0].URL)
	assert.Equal(t, "en.wikipedia.org", resp.Results[0].Domain)
	assert.InDelta(t, 0.8, resp.Results[0].Score, 1e-9)
	assert.Equal(t, "Source 2", resp.Results[1].Title)
}

func TestSearch_ParsesDetailedCitations(t *testing.T) {
	server := searchServer(t, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": "answer"}}},
		"citations": []any{
			map[string]any{
				"title":   "Understanding B-Trees",
				"url":     "https://example.org/btrees",
				"snippet": "A B-tree is a self-balancing tree.",
				"score":   0.93,
				"date":    "2026-01-15T00:00:00Z",
			},
		},
	}, nil)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "b-trees", 5, "")

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	got := resp.Results[0]
	assert.Equal(t, "Understanding B-Trees", got.Title)
	assert.Equal(t, "https://example.org/btrees", got.URL)
	assert.Equal(t, "A B-tree is a self-balancing tree.", got.Snippet)
	assert.InDelta(t, 0.93, got.Score, 1e-9)
	assert.Equal(t, "example.org", got.Domain)
	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, 2026, got.PublishedAt.Year())
}

func TestSearch_LimitCapsCitations(t *testing.T) {
	server := searchServer(t, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": "answer"}}},
		"citations": []any{
			"https://a.example.org",
			"https://b.example.org",
			"https://c.example.org",
		},
	}, nil)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "anything", 2, "")

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
}

func TestSearch_NoCitationsFallsBackToAnswerSnippet(t *testing.T) {
	long := strings.Repeat("x", 600)
	server := searchServer(t, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": long}}},
	}, nil)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "obscure topic", 5, "")

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	got := resp.Results[0]
	assert.Equal(t, "Search Result", got.Title)
	assert.Empty(t, got.URL)
	assert.Len(t, got.Snippet, fallbackSnippetLimit)
	assert.InDelta(t, 0.7, got.Score, 1e-9)
	assert.Equal(t, "perplexity.ai", got.Domain)
}

func TestSearch_EmptyAnswerAndNoCitationsReturnsNoResults(t *testing.T) {
	server := searchServer(t, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": ""}}},
	}, nil)
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "anything", 5, "")

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Error)
}

func TestSearch_HTTPErrorSetsErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := p.Search(context.Background(), "anything", 5, "")

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, "API error: 429", resp.Error)
}
