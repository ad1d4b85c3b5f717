// Package mcp bridges the tool backends onto the Model Context Protocol:
// ServeTools exposes a registry over stdio, Connect imports a remote
// server's tools back as local ones.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/roteiro-agents/roteiro/tools"
)

// ServeTools runs a stdio MCP server exposing every tool in reg. It blocks
// until the peer disconnects or ctx is cancelled.
func ServeTools(ctx context.Context, name, version string, reg *tools.Registry) error {
	server := sdk.NewServer(&sdk.Implementation{Name: name, Version: version}, nil)
	for _, tool := range reg.Tools() {
		tool := tool
		sdk.AddTool(server, &sdk.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		}, func(ctx context.Context, _ *sdk.CallToolRequest, args map[string]any) (*sdk.CallToolResult, any, error) {
			out, err := tool.Invoke(ctx, args)
			if err != nil {
				// Tool failures travel as result payloads so the
				// caller can feed them back to the model.
				return textResult(err.Error(), true), nil, nil
			}
			text, err := renderValue(out)
			if err != nil {
				return textResult(err.Error(), true), nil, nil
			}
			return textResult(text, false), nil, nil
		})
	}
	return server.Run(ctx, &sdk.StdioTransport{})
}

func textResult(text string, isErr bool) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		IsError: isErr,
		Content: []sdk.Content{&sdk.TextContent{Text: text}},
	}
}

// renderValue flattens a tool result to the single text block MCP carries.
func renderValue(v any) (string, error) {
	switch out := v.(type) {
	case nil:
		return "", nil
	case string:
		return out, nil
	case float64:
		return fmt.Sprintf("%g", out), nil
	default:
		raw, err := json.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("encode tool result: %w", err)
		}
		return string(raw), nil
	}
}
