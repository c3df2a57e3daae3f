// Package perplexity provides a web search provider using the
// Perplexity API, an LLM-backed search service that returns an answer
// with source citations.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/domain"
	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.WebSearchProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.perplexity.ai"
	DefaultModel   = "sonar"
	DefaultTimeout = 30 * time.Second
)

const systemPrompt = "You are a helpful search assistant. Provide concise, factual information with sources. Include relevant URLs."

// Score assigned to results when the API does not provide its own.
const (
	citationScore = 0.8
	fallbackScore = 0.7
)

const fallbackSnippetLimit = 500

// Config holds configuration for the Perplexity provider.
type Config struct {
	// APIKey is the Perplexity API key. When empty the provider is
	// inert: Search returns empty results with the Error field set.
	APIKey string

	// BaseURL is the API base URL (default: https://api.perplexity.ai).
	BaseURL string

	// Model is the search model to use (default: sonar).
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Provider answers web queries through the Perplexity chat completions
// API with citation return enabled.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// searchRequest is the Perplexity /chat/completions request format.
type searchRequest struct {
	Model           string      `json:"model"`
	Messages        []searchMsg `json:"messages"`
	MaxTokens       int         `json:"max_tokens"`
	ReturnCitations bool        `json:"return_citations"`
	RecencyFilter   string      `json:"search_recency_filter,omitempty"`
}

// searchMsg is the chat message format.
type searchMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// searchResponse is the Perplexity /chat/completions response format.
// Citations are either plain URL strings or objects with metadata, so
// they are decoded in a second pass.
type searchResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []json.RawMessage `json:"citations"`
}

// citationDetail is the object form of a citation.
type citationDetail struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Date    string  `json:"date"`
}

// NewProvider creates a new Perplexity web search provider. A missing
// API key is not an error here; it surfaces per-search in the response
// Error field so hybrid search can degrade to course-only results.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Search runs one web query. recency filters results by age ("day",
// "week", "month", "year"); empty means no filter. Provider-side
// failures, including a missing API key and non-2xx responses, are
// reported through the response Error field rather than a Go error.
func (p *Provider) Search(ctx context.Context, query string, limit int, recency string) (domain.WebSearchResponse, error) {
	if p.apiKey == "" {
		return domain.WebSearchResponse{Error: "Perplexity API key not configured"}, nil
	}

	start := time.Now()

	reqBody := searchRequest{
		Model: p.model,
		Messages: []searchMsg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: query},
		},
		MaxTokens:       1024,
		ReturnCitations: true,
		RecencyFilter:   recency,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return domain.WebSearchResponse{}, fmt.Errorf("perplexity: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.WebSearchResponse{}, fmt.Errorf("perplexity: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.WebSearchResponse{}, fmt.Errorf("perplexity: request failed: %w", err)
	}
	defer resp.Body.Close()

	tookMS := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		return domain.WebSearchResponse{
			Error:  fmt.Sprintf("API error: %d", resp.StatusCode),
			TookMS: tookMS,
		}, nil
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.WebSearchResponse{}, fmt.Errorf("perplexity: failed to decode response: %w", err)
	}

	return domain.WebSearchResponse{
		Results: p.parseResults(parsed, limit),
		TookMS:  tookMS,
	}, nil
}

// parseResults turns the answer-plus-citations payload into structured
// results. When the API returns no citations but a non-empty answer, a
// single fallback result carries a snippet of the answer itself.
func (p *Provider) parseResults(resp searchResponse, limit int) []domain.WebResult {
	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	citations := resp.Citations
	if limit > 0 && len(citations) > limit {
		citations = citations[:limit]
	}

	results := make([]domain.WebResult, 0, len(citations))
	for i, raw := range citations {
		var link string
		if err := json.Unmarshal(raw, &link); err == nil {
			results = append(results, domain.WebResult{
				Title:  fmt.Sprintf("Source %d", i+1),
				URL:    link,
				Score:  citationScore,
				Domain: extractDomain(link),
			})
			continue
		}

		var detail citationDetail
		if err := json.Unmarshal(raw, &detail); err != nil {
			continue
		}
		result := domain.WebResult{
			Title:   detail.Title,
			URL:     detail.URL,
			Snippet: detail.Snippet,
			Score:   detail.Score,
			Domain:  extractDomain(detail.URL),
		}
		if result.Title == "" {
			result.Title = fmt.Sprintf("Source %d", i+1)
		}
		if result.Score == 0 {
			result.Score = citationScore
		}
		if ts, err := time.Parse(time.RFC3339, detail.Date); err == nil {
			result.PublishedAt = &ts
		}
		results = append(results, result)
	}

	if len(results) == 0 && content != "" {
		snippet := content
		if len(snippet) > fallbackSnippetLimit {
			snippet = snippet[:fallbackSnippetLimit]
		}
		now := time.Now()
		results = append(results, domain.WebResult{
			Title:       "Search Result",
			Snippet:     snippet,
			Score:       fallbackScore,
			Domain:      "perplexity.ai",
			PublishedAt: &now,
		})
	}

	return results
}

// Close releases resources (no-op for HTTP client).
func (p *Provider) Close() error {
	return nil
}

// extractDomain returns the host part of a URL, empty when the URL is
// blank or unparseable.
func extractDomain(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Host
}
