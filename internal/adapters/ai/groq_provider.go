package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blogsmith/pkg/errors"
)

// ProviderNameGroq identifies the Groq provider.
const ProviderNameGroq = "groq"

// GroqProvider implements ChatProvider against Groq's OpenAI-compatible API.
type GroqProvider struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	rateLimiter RateLimiter
	models      []ModelInfo
}

// GroqOption customizes the provider.
type GroqOption func(*GroqProvider)

// WithGroqBaseURL overrides the API base URL (used in tests).
func WithGroqBaseURL(url string) GroqOption {
	return func(p *GroqProvider) { p.baseURL = strings.TrimRight(url, "/") }
}

// WithGroqRateLimit sets the request rate limit.
func WithGroqRateLimit(reqPerMinute float64, burst int) GroqOption {
	return func(p *GroqProvider) {
		p.rateLimiter = NewTokenBucketLimiter(ProviderNameGroq, reqPerMinute, burst)
	}
}

// NewGroqProvider creates a new Groq provider instance.
func NewGroqProvider(apiKey string, timeout time.Duration, opts ...GroqOption) *GroqProvider {
	p := &GroqProvider{
		apiKey:      apiKey,
		baseURL:     "https://api.groq.com/openai/v1",
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: NewTokenBucketLimiter(ProviderNameGroq, 30, 5),
		models:      groqModels(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *GroqProvider) Name() string { return ProviderNameGroq }

// GetModel returns model info by name.
func (p *GroqProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "groq model %s not found", model)
}

// ListModels lists available models.
func (p *GroqProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

// SupportsTools indicates tool calling support.
func (p *GroqProvider) SupportsTools() bool { return true }

func groqModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:        ProviderNameGroq,
			Name:            "llama-3.3-70b-versatile",
			Family:          "llama-3.3",
			MaxTokens:       131072,
			InputCostPer1K:  0.00059,
			OutputCostPer1K: 0.00079,
			SupportsTools:   true,
		},
		{
			Provider:        ProviderNameGroq,
			Name:            "llama-3.1-8b-instant",
			Family:          "llama-3.1",
			MaxTokens:       131072,
			InputCostPer1K:  0.00005,
			OutputCostPer1K: 0.00008,
			SupportsTools:   true,
		},
	}
}
