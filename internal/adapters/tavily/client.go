package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"blogsmith/pkg/errors"
)

// Client talks to the Tavily search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(reqPerMinute float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(reqPerMinute/60.0), burst) }
}

// WithMaxResults sets how many results to request per search.
func WithMaxResults(n int) Option {
	return func(c *Client) { c.maxResults = n }
}

// NewClient creates a new Tavily client.
func NewClient(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    "https://api.tavily.com",
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
		maxResults: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a single search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResponse holds the results of one search call.
type SearchResponse struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
}

// Search performs one web search. One outbound call, no retries; failures
// propagate to the calling agent's tool loop.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if c.apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tavily API key not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "search query is empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
	}

	body, err := json.Marshal(searchRequest{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: c.maxResults,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrProvider, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read search response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Wrapf(errors.ErrProviderAuth, "tavily returned %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrap(errors.ErrRateLimitExceeded, "tavily returned 429")
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Wrapf(errors.ErrProvider, "tavily returned %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		return nil, errors.Wrap(err, "unmarshal search response")
	}

	return &searchResp, nil
}

// FormatResults renders results as plain text for agent consumption.
func (r *SearchResponse) FormatResults() string {
	var b strings.Builder

	if r.Answer != "" {
		b.WriteString("Summary: ")
		b.WriteString(r.Answer)
		b.WriteString("\n\n")
	}

	for i, res := range r.Results {
		fmt.Fprintf(&b, "[%d] %s\n%s\n%s\n\n", i+1, res.Title, res.URL, res.Content)
	}

	return strings.TrimRight(b.String(), "\n")
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}
