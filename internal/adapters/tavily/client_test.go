package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/pkg/errors"
)

func TestSearch_Success(t *testing.T) {
	var captured searchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(SearchResponse{
			Query: captured.Query,
			Results: []Result{
				{Title: "Microgrids 101", URL: "https://example.com/a", Content: "Basics of microgrids.", Score: 0.9},
				{Title: "Grid resilience", URL: "https://example.com/b", Content: "Why microgrids matter.", Score: 0.7},
			},
		})
	}))
	defer server.Close()

	client := NewClient("tvly-key", 5*time.Second, WithBaseURL(server.URL), WithMaxResults(3))

	resp, err := client.Search(context.Background(), "renewable energy microgrids")
	require.NoError(t, err)

	assert.Equal(t, "tvly-key", captured.APIKey)
	assert.Equal(t, 3, captured.MaxResults)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Microgrids 101", resp.Results[0].Title)
}

func TestSearch_ProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"auth failure", http.StatusUnauthorized, errors.ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, errors.ErrRateLimitExceeded},
		{"server error", http.StatusBadGateway, errors.ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("tvly-key", 5*time.Second, WithBaseURL(server.URL))

			_, err := client.Search(context.Background(), "anything")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewClient("tvly-key", time.Second)

	_, err := client.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestSearch_MissingAPIKey(t *testing.T) {
	client := NewClient("", time.Second)

	_, err := client.Search(context.Background(), "topic")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFormatResults(t *testing.T) {
	resp := &SearchResponse{
		Answer: "Microgrids are local grids.",
		Results: []Result{
			{Title: "A", URL: "https://a", Content: "alpha"},
			{Title: "B", URL: "https://b", Content: "beta"},
		},
	}

	text := resp.FormatResults()
	assert.Contains(t, text, "Summary: Microgrids are local grids.")
	assert.Contains(t, text, "[1] A")
	assert.Contains(t, text, "[2] B")
	assert.Contains(t, text, "https://b")
}
