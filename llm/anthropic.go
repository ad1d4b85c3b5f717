package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/roteiro-agents/roteiro/components"
)

const defaultMaxTokens = 4096

// AnthropicClient talks to the Anthropic Messages API.
type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int
}

func NewAnthropic(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		client:    anthropic.NewClient(apiKey),
		model:     anthropic.Model(model),
		maxTokens: defaultMaxTokens,
	}
}

func (c *AnthropicClient) Invoke(ctx context.Context, history []components.Turn, constraint *ToolConstraint) (*components.Turn, error) {
	system, rest, err := splitSystem(history)
	if err != nil {
		return nil, err
	}

	req := anthropic.MessagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
	}
	for _, turn := range rest {
		msg, err := toAnthropicMessage(turn)
		if err != nil {
			return nil, err
		}
		req.Messages = append(req.Messages, msg)
	}
	if constraint != nil {
		req.Tools = []anthropic.ToolDefinition{{
			Name:        constraint.Name,
			Description: constraint.Description,
			InputSchema: constraint.InputSchema,
		}}
		req.ToolChoice = &anthropic.ToolChoice{
			Type: "tool",
			Name: constraint.Name,
		}
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	return fromAnthropicResponse(&resp)
}

func toAnthropicMessage(turn components.Turn) (anthropic.Message, error) {
	switch turn.Role() {
	case components.UserRole:
		return anthropic.NewUserTextMessage(turn.Content()), nil
	case components.AssistantRole:
		if call := turn.ToolCall(); call != nil {
			input, err := json.Marshal(call.Arguments)
			if err != nil {
				return anthropic.Message{}, fmt.Errorf("encode tool arguments: %w", err)
			}
			var content []anthropic.MessageContent
			if turn.Content() != "" {
				content = append(content, anthropic.NewTextMessageContent(turn.Content()))
			}
			content = append(content, anthropic.MessageContent{
				Type: anthropic.MessagesContentTypeToolUse,
				MessageContentToolUse: &anthropic.MessageContentToolUse{
					ID:    call.ID,
					Name:  call.Name,
					Input: input,
				},
			})
			return anthropic.Message{Role: anthropic.RoleAssistant, Content: content}, nil
		}
		return anthropic.NewAssistantTextMessage(turn.Content()), nil
	case components.ToolRole:
		return anthropic.NewToolResultsMessage(turn.ToolCallID(), turn.Content(), false), nil
	default:
		return anthropic.Message{}, fmt.Errorf("unsupported turn role %q", turn.Role())
	}
}

func fromAnthropicResponse(resp *anthropic.MessagesResponse) (*components.Turn, error) {
	var text []string
	for _, block := range resp.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			text = append(text, block.GetText())
		case anthropic.MessagesContentTypeToolUse:
			tu := block.MessageContentToolUse
			if tu == nil {
				return nil, fmt.Errorf("anthropic: tool_use block without payload")
			}
			args := make(map[string]any)
			if len(tu.Input) > 0 {
				if err := json.Unmarshal(tu.Input, &args); err != nil {
					return nil, fmt.Errorf("anthropic: decode tool input: %w", err)
				}
			}
			return components.NewToolCallTurn(strings.Join(text, "\n"), components.ToolCall{
				ID:        tu.ID,
				Name:      tu.Name,
				Arguments: args,
			}), nil
		}
	}
	return components.NewAssistantTurn(strings.Join(text, "\n")), nil
}
