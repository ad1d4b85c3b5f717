package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/roteiro-agents/roteiro/tools"
)

// Session is a live connection to one MCP tool server. Its tools stay valid
// until Close.
type Session struct {
	session *sdk.ClientSession
	tools   []tools.Tool
}

// Connect launches cmd as a stdio MCP server, lists its tools and wraps each
// one as a local tools.Tool.
func Connect(ctx context.Context, clientName string, cmd *exec.Cmd) (*Session, error) {
	client := sdk.NewClient(&sdk.Implementation{Name: clientName, Version: "dev"}, nil)
	session, err := client.Connect(ctx, &sdk.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect mcp server: %w", err)
	}

	listed, err := session.ListTools(ctx, nil)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("list mcp tools: %w", err)
	}

	s := &Session{session: session}
	for _, t := range listed.Tools {
		schema, err := decodeSchema(t.InputSchema)
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("tool %s: %w", t.Name, err)
		}
		remote := &remoteTool{session: session, schema: schema}
		remote.SetName(t.Name)
		remote.SetDescription(t.Description)
		s.tools = append(s.tools, remote)
	}
	return s, nil
}

// Tools returns the imported tools in server order.
func (s *Session) Tools() []tools.Tool {
	return s.tools
}

func (s *Session) Close() error {
	return s.session.Close()
}

// remoteTool forwards Invoke over the MCP session.
type remoteTool struct {
	tools.Config
	schema  map[string]any
	session *sdk.ClientSession
}

func (t *remoteTool) Schema() map[string]any {
	return t.schema
}

func (t *remoteTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	res, err := t.session.CallTool(ctx, &sdk.CallToolParams{
		Name:      t.Name(),
		Arguments: args,
	})
	if err != nil {
		return nil, err
	}
	text := flattenContent(res.Content)
	if res.IsError {
		return nil, fmt.Errorf("%s", text)
	}
	return text, nil
}

func flattenContent(content []sdk.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(*sdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// decodeSchema normalizes whatever schema shape the wire handed us into the
// map form the rest of the module uses.
func decodeSchema(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{"type": "object"}, nil
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("decode input schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode input schema: %w", err)
	}
	return m, nil
}
