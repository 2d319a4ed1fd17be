package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"blogsmith/pkg/errors"
)

// Ensure GroqProvider implements ChatProvider
var _ ChatProvider = (*GroqProvider)(nil)

// Chat sends a chat completion request to the Groq API.
func (p *GroqProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if p.apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "groq API key not configured")
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{
			Provider: ProviderNameGroq,
			Limit:    p.rateLimiter.Limit(),
			Err:      err,
		}
	}

	groqReq := groqRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if groqReq.MaxTokens == 0 {
		groqReq.MaxTokens = 4096
	}

	for _, msg := range req.Messages {
		groqMsg := groqMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		}

		for _, tc := range msg.ToolCalls {
			groqMsg.ToolCalls = append(groqMsg.ToolCalls, groqToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: groqFunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}

		if msg.ToolCallID != "" {
			groqMsg.ToolCallID = msg.ToolCallID
		}

		groqReq.Messages = append(groqReq.Messages, groqMsg)
	}

	for _, tool := range req.Tools {
		groqReq.Tools = append(groqReq.Tools, groqTool{
			Type: tool.Type,
			Function: groqFunctionDef{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				Parameters:  tool.Function.Parameters,
			},
		})
	}

	body, err := json.Marshal(groqReq)
	if err != nil {
		return nil, errors.Wrap(err, "marshal groq request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create groq request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.ErrProvider, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read groq response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Wrapf(errors.ErrProviderAuth, "groq returned %d", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrapf(errors.ErrRateLimitExceeded, "groq returned 429: %s", truncate(respBody, 200))
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Wrapf(errors.ErrProvider, "groq returned %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var groqResp groqResponse
	if err := json.Unmarshal(respBody, &groqResp); err != nil {
		return nil, errors.Wrap(err, "unmarshal groq response")
	}

	return convertGroqResponse(&groqResp), nil
}

func convertGroqResponse(resp *groqResponse) *ChatResponse {
	out := &ChatResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	for _, choice := range resp.Choices {
		msg := Message{
			Role:    MessageRole(choice.Message.Role),
			Content: choice.Message.Content,
		}

		for _, tc := range choice.Message.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}

		out.Choices = append(out.Choices, Choice{
			Index:        choice.Index,
			Message:      msg,
			FinishReason: FinishReason(choice.FinishReason),
		})
	}

	return out
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Wire types for the OpenAI-compatible chat completions endpoint.

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Tools       []groqTool    `json:"tools,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []groqToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type groqTool struct {
	Type     string          `json:"type"`
	Function groqFunctionDef `json:"function"`
}

type groqFunctionDef struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type groqToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function groqFunctionCall `json:"function"`
}

type groqFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type groqResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      groqMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
