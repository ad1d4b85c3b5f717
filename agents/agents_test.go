package agents

import (
	"context"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/llm"
	"github.com/roteiro-agents/roteiro/tools"
)

// scriptedStep is one canned model exchange.
type scriptedStep struct {
	reply *components.Turn
	err   error
}

// scriptedClient replays canned replies and records what it was asked.
type scriptedClient struct {
	steps       []scriptedStep
	calls       int
	constraints []*llm.ToolConstraint
	histories   [][]components.Turn
}

func (c *scriptedClient) Invoke(_ context.Context, history []components.Turn, constraint *llm.ToolConstraint) (*components.Turn, error) {
	idx := c.calls
	c.calls++
	c.histories = append(c.histories, history)
	c.constraints = append(c.constraints, constraint)
	if idx >= len(c.steps) {
		return components.NewAssistantTurn("resposta por omissão"), nil
	}
	step := c.steps[idx]
	if step.err != nil {
		return nil, step.err
	}
	return step.reply, nil
}

// fakeTool is a registry entry with a canned result.
type fakeTool struct {
	tools.Config
	result  any
	err     error
	gotArgs map[string]any
}

func newFakeTool(name string, result any, err error) *fakeTool {
	f := &fakeTool{result: result, err: err}
	f.SetName(name)
	f.SetDescription("ferramenta de teste " + name)
	return f
}

func (f *fakeTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"city"}, map[string]any{
		"city": tools.StringProperty("Nome da cidade."),
	})
}

func (f *fakeTool) Invoke(_ context.Context, args map[string]any) (any, error) {
	f.gotArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
