package adk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"blogsmith/internal/adapters/ai"
	"blogsmith/pkg/errors"
)

type fakeChatProvider struct {
	lastReq ai.ChatRequest
	resp    *ai.ChatResponse
	err     error
}

func (f *fakeChatProvider) Name() string { return "fake" }

func (f *fakeChatProvider) GetModel(ctx context.Context, m string) (ai.ModelInfo, error) {
	return ai.ModelInfo{Name: m, SupportsTools: true}, nil
}

func (f *fakeChatProvider) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	return nil, nil
}

func (f *fakeChatProvider) SupportsTools() bool { return true }

func (f *fakeChatProvider) Chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func collect(t *testing.T, adapter *ModelAdapter, req *model.LLMRequest, stream bool) (*model.LLMResponse, error) {
	t.Helper()
	for resp, err := range adapter.GenerateContent(context.Background(), req, stream) {
		return resp, err
	}
	t.Fatal("sequence yielded nothing")
	return nil, nil
}

func TestGenerateContent_TextExchange(t *testing.T) {
	provider := &fakeChatProvider{
		resp: &ai.ChatResponse{
			Choices: []ai.Choice{{
				Message:      ai.Message{Role: ai.RoleAssistant, Content: "hello back"},
				FinishReason: ai.FinishReasonStop,
			}},
			Usage: ai.Usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14},
		},
	}
	adapter := NewModelAdapter(provider, "llama-3.3-70b-versatile", 2048, 0.7)

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			{Role: "user", Parts: []*genai.Part{{Text: "hello"}}},
		},
	}

	resp, err := collect(t, adapter, req, false)
	require.NoError(t, err)

	require.Len(t, provider.lastReq.Messages, 1)
	assert.Equal(t, ai.RoleUser, provider.lastReq.Messages[0].Role)
	assert.Equal(t, "hello", provider.lastReq.Messages[0].Content)
	assert.Equal(t, 2048, provider.lastReq.MaxTokens)

	require.NotNil(t, resp.Content)
	require.Len(t, resp.Content.Parts, 1)
	assert.Equal(t, "hello back", resp.Content.Parts[0].Text)
	assert.Equal(t, genai.FinishReasonStop, resp.FinishReason)
	assert.True(t, resp.TurnComplete)
	require.NotNil(t, resp.UsageMetadata)
	assert.Equal(t, int32(10), resp.UsageMetadata.PromptTokenCount)
	assert.Equal(t, int32(4), resp.UsageMetadata.CandidatesTokenCount)
}

func TestGenerateContent_ToolCallResponse(t *testing.T) {
	provider := &fakeChatProvider{
		resp: &ai.ChatResponse{
			Choices: []ai.Choice{{
				Message: ai.Message{
					Role: ai.RoleAssistant,
					ToolCalls: []ai.ToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: ai.FunctionCall{
							Name:      "web_search",
							Arguments: `{"query":"go generics"}`,
						},
					}},
				},
				FinishReason: ai.FinishReasonToolCalls,
			}},
		},
	}
	adapter := NewModelAdapter(provider, "llama-3.3-70b-versatile", 0, 0)

	resp, err := collect(t, adapter, &model.LLMRequest{}, false)
	require.NoError(t, err)

	require.Len(t, resp.Content.Parts, 1)
	fc := resp.Content.Parts[0].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "web_search", fc.Name)
	assert.Equal(t, "go generics", fc.Args["query"])
}

func TestGenerateContent_FunctionResponseBecomesToolMessage(t *testing.T) {
	provider := &fakeChatProvider{
		resp: &ai.ChatResponse{
			Choices: []ai.Choice{{Message: ai.Message{Content: "ok"}}},
		},
	}
	adapter := NewModelAdapter(provider, "m", 0, 0)

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			{
				Role: "function",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     "web_search",
						Response: map[string]any{"results": "stuff"},
					},
				}},
			},
		},
	}

	_, err := collect(t, adapter, req, false)
	require.NoError(t, err)

	require.Len(t, provider.lastReq.Messages, 1)
	msg := provider.lastReq.Messages[0]
	assert.Equal(t, ai.RoleTool, msg.Role)
	assert.Equal(t, "web_search", msg.ToolCallID)
	assert.Contains(t, msg.Content, "stuff")
}

func TestGenerateContent_StreamingNotSupported(t *testing.T) {
	adapter := NewModelAdapter(&fakeChatProvider{}, "m", 0, 0)

	_, err := collect(t, adapter, &model.LLMRequest{}, true)
	assert.ErrorIs(t, err, errors.ErrNotImplemented)
}

func TestGenerateContent_ProviderError(t *testing.T) {
	provider := &fakeChatProvider{err: errors.ErrProvider}
	adapter := NewModelAdapter(provider, "m", 0, 0)

	_, err := collect(t, adapter, &model.LLMRequest{}, false)
	assert.ErrorIs(t, err, errors.ErrProvider)
}
