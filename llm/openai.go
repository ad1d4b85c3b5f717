package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/roteiro-agents/roteiro/components"
)

// OpenAIClient talks to the OpenAI chat completions API (or any
// API-compatible endpoint via base URL override).
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewOpenAICompatible points the client at an alternative chat-completions
// endpoint.
func NewOpenAICompatible(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIClient) Invoke(ctx context.Context, history []components.Turn, constraint *ToolConstraint) (*components.Turn, error) {
	system, rest, err := splitSystem(history)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{Model: c.model}
	if system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, turn := range rest {
		msg, err := toOpenAIMessage(turn)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, msg)
	}
	if constraint != nil {
		req.Tools = []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        constraint.Name,
				Description: constraint.Description,
				Parameters:  constraint.InputSchema,
			},
		}}
		req.ToolChoice = openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: constraint.Name},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty completion")
	}
	return fromOpenAIMessage(resp.Choices[0].Message)
}

func toOpenAIMessage(turn components.Turn) (openai.ChatCompletionMessage, error) {
	switch turn.Role() {
	case components.UserRole:
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: turn.Content(),
		}, nil
	case components.AssistantRole:
		msg := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: turn.Content(),
		}
		if call := turn.ToolCall(); call != nil {
			args, err := json.Marshal(call.Arguments)
			if err != nil {
				return openai.ChatCompletionMessage{}, fmt.Errorf("encode tool arguments: %w", err)
			}
			msg.ToolCalls = []openai.ToolCall{{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: string(args),
				},
			}}
		}
		return msg, nil
	case components.ToolRole:
		return openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    turn.Content(),
			ToolCallID: turn.ToolCallID(),
		}, nil
	default:
		return openai.ChatCompletionMessage{}, fmt.Errorf("unsupported turn role %q", turn.Role())
	}
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) (*components.Turn, error) {
	if len(msg.ToolCalls) == 0 {
		return components.NewAssistantTurn(msg.Content), nil
	}
	call := msg.ToolCalls[0]
	args := make(map[string]any)
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("openai: decode tool arguments: %w", err)
		}
	}
	return components.NewToolCallTurn(msg.Content, components.ToolCall{
		ID:        call.ID,
		Name:      call.Function.Name,
		Arguments: args,
	}), nil
}
