package adk

import (
	"context"
	"encoding/json"
	"iter"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"blogsmith/internal/adapters/ai"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

// ModelAdapter adapts an ai.ChatProvider to ADK's model.LLM interface.
type ModelAdapter struct {
	provider    ai.ChatProvider
	modelName   string
	maxTokens   int
	temperature float64
	log         *logger.Logger
}

// NewModelAdapter creates a new ADK model adapter.
func NewModelAdapter(provider ai.ChatProvider, modelName string, maxTokens int, temperature float64) *ModelAdapter {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &ModelAdapter{
		provider:    provider,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		log:         logger.Get().With("component", "model_adapter", "model", modelName),
	}
}

// Name returns the model name.
func (m *ModelAdapter) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface.
func (m *ModelAdapter) GenerateContent(
	ctx context.Context,
	req *model.LLMRequest,
	stream bool,
) iter.Seq2[*model.LLMResponse, error] {
	if stream {
		return func(yield func(*model.LLMResponse, error) bool) {
			yield(nil, errors.Wrap(errors.ErrNotImplemented, "streaming not supported by groq adapter"))
		}
	}

	return func(yield func(*model.LLMResponse, error) bool) {
		chatReq := m.convertToChatRequest(req)

		m.log.Debugf("Calling LLM: messages=%d tools=%d", len(chatReq.Messages), len(chatReq.Tools))

		resp, err := m.provider.Chat(ctx, chatReq)
		if err != nil {
			m.log.Errorf("LLM call failed: %v", err)
			yield(nil, errors.Wrap(err, "chat provider failed"))
			return
		}

		m.log.Debugf("LLM response received: choices=%d tokens=%d", len(resp.Choices), resp.Usage.TotalTokens)

		yield(m.convertToADKResponse(resp), nil)
	}
}

// convertToChatRequest converts an ADK request to the provider's format.
func (m *ModelAdapter) convertToChatRequest(req *model.LLMRequest) ai.ChatRequest {
	chatReq := ai.ChatRequest{
		Model:       m.modelName,
		MaxTokens:   m.maxTokens,
		Temperature: m.temperature,
	}

	for _, content := range req.Contents {
		chatMsg := ai.Message{}

		switch content.Role {
		case "user":
			chatMsg.Role = ai.RoleUser
		case "model":
			chatMsg.Role = ai.RoleAssistant
		case "system":
			chatMsg.Role = ai.RoleSystem
		case "function", "tool":
			chatMsg.Role = ai.RoleTool
		default:
			chatMsg.Role = ai.RoleUser
		}

		for _, part := range content.Parts {
			if part.Text != "" {
				if chatMsg.Content != "" {
					chatMsg.Content += "\n"
				}
				chatMsg.Content += part.Text
			}
			if part.FunctionCall != nil {
				args, err := json.Marshal(part.FunctionCall.Args)
				if err != nil {
					args = []byte("{}")
				}
				chatMsg.Role = ai.RoleAssistant
				chatMsg.ToolCalls = append(chatMsg.ToolCalls, ai.ToolCall{
					ID:   part.FunctionCall.Name,
					Type: "function",
					Function: ai.FunctionCall{
						Name:      part.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			}
			if part.FunctionResponse != nil {
				chatMsg.Role = ai.RoleTool
				chatMsg.ToolCallID = part.FunctionResponse.Name
				chatMsg.Name = part.FunctionResponse.Name
				if respData, err := json.Marshal(part.FunctionResponse.Response); err == nil {
					chatMsg.Content = string(respData)
				}
			}
		}

		chatReq.Messages = append(chatReq.Messages, chatMsg)
	}

	if req.Tools != nil {
		for toolName, toolData := range req.Tools {
			desc := ""
			params := map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
				"required":   []string{},
			}
			if meta, ok := toolData.(map[string]interface{}); ok {
				if d, ok := meta["description"].(string); ok {
					desc = d
				}
				if p, ok := meta["parameters"].(map[string]interface{}); ok {
					params = p
				}
			}

			chatReq.Tools = append(chatReq.Tools, ai.ToolDefinition{
				Type: "function",
				Function: ai.FunctionDefinition{
					Name:        toolName,
					Description: desc,
					Parameters:  params,
				},
			})
		}
	}

	return chatReq
}

// convertToADKResponse converts a provider response back to ADK format.
func (m *ModelAdapter) convertToADKResponse(resp *ai.ChatResponse) *model.LLMResponse {
	adkResp := &model.LLMResponse{}

	if len(resp.Choices) == 0 {
		adkResp.FinishReason = genai.FinishReasonOther
		adkResp.ErrorMessage = "no choices in response"
		return adkResp
	}

	choice := resp.Choices[0]

	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}

	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: choice.Message.Content,
		})
	}

	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			m.log.Warnf("Failed to parse tool call arguments for %s: %v", tc.Function.Name, err)
			continue
		}

		content.Parts = append(content.Parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	adkResp.Content = content

	switch choice.FinishReason {
	case ai.FinishReasonLength:
		adkResp.FinishReason = genai.FinishReasonMaxTokens
	default:
		adkResp.FinishReason = genai.FinishReasonStop
	}

	adkResp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     int32(resp.Usage.PromptTokens),
		CandidatesTokenCount: int32(resp.Usage.CompletionTokens),
		TotalTokenCount:      int32(resp.Usage.TotalTokens),
	}

	adkResp.TurnComplete = true

	return adkResp
}

// Ensure ModelAdapter implements model.LLM
var _ model.LLM = (*ModelAdapter)(nil)
