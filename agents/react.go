package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/llm"
	"github.com/roteiro-agents/roteiro/tools"
)

const reactPromptHeader = `És um assistente que responde ao pedido do utilizador usando a ferramenta {tool_name}.

Ferramenta disponível:
- Nome: {tool_name}
- Descrição: {tool_description}
- Esquema dos argumentos: `

const reactPromptFooter = `

Escolhe os argumentos adequados e invoca a ferramenta exatamente uma vez.`

// ReActExecutor runs the single-tool path: the model is constrained to one
// invocation of the pre-selected tool, the result is folded back into the
// transcript.
type ReActExecutor struct {
	client   llm.Client
	registry *tools.Registry
	logger   *slog.Logger
}

func NewReActExecutor(client llm.Client, registry *tools.Registry, logger *slog.Logger) *ReActExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReActExecutor{client: client, registry: registry, logger: logger}
}

// Run never propagates model or tool failures; every path records an outcome
// and leaves a visible turn behind.
func (e *ReActExecutor) Run(ctx context.Context, st *components.State) error {
	if e.client == nil || e.registry == nil {
		fail(st, "erro de configuração: cliente de modelo ou registo de ferramentas em falta")
		return nil
	}

	selected := st.SelectedTools()
	if len(selected) == 0 {
		return e.answerDirectly(ctx, st)
	}

	name := selected[0]
	tool, ok := e.registry.Lookup(name)
	if !ok {
		fail(st, fmt.Sprintf("ferramenta não encontrada: %s", name))
		return nil
	}

	prompt, err := e.buildPrompt(tool)
	if err != nil {
		fail(st, fmt.Sprintf("erro ao construir o prompt: %v", err))
		return nil
	}

	history := append([]components.Turn{*components.NewSystemTurn(prompt)}, st.History()...)
	constraint := &llm.ToolConstraint{
		Name:        tool.Name(),
		Description: tool.Description(),
		InputSchema: tool.Schema(),
	}
	reply, err := e.client.Invoke(ctx, history, constraint)
	if err != nil {
		fail(st, fmt.Sprintf("erro ao invocar o modelo: %v", err))
		return nil
	}
	st.Append(reply)

	call := reply.ToolCall()
	if call == nil {
		st.SetOutcome(reply.Content())
		return nil
	}

	e.logger.Info("invoking tool", "tool", call.Name, "call_id", call.ID)
	result, invokeErr := tool.Invoke(ctx, call.Arguments)
	var text string
	if invokeErr != nil {
		text = fmt.Sprintf("erro ao invocar a ferramenta %s: %v", tool.Name(), invokeErr)
	} else {
		text = outcomeText(result)
	}
	st.Append(components.NewToolResultTurn(text, call.ID))
	st.SetOutcome(text)
	return nil
}

// answerDirectly handles tasks with no selected tool.
func (e *ReActExecutor) answerDirectly(ctx context.Context, st *components.State) error {
	reply, err := e.client.Invoke(ctx, st.History(), nil)
	if err != nil {
		fail(st, fmt.Sprintf("erro ao invocar o modelo: %v", err))
		return nil
	}
	st.Append(reply)
	st.SetOutcome(reply.Content())
	return nil
}

// buildPrompt bakes the JSON-rendered schema into the template source. The
// schema must be brace-escaped first or Render rejects the template.
func (e *ReActExecutor) buildPrompt(tool tools.Tool) (string, error) {
	schema, err := json.Marshal(tool.Schema())
	if err != nil {
		return "", fmt.Errorf("encode schema: %w", err)
	}
	tpl := NewTemplate(reactPromptHeader + EscapeBraces(string(schema)) + reactPromptFooter)
	return tpl.Render(map[string]string{
		"tool_name":        tool.Name(),
		"tool_description": tool.Description(),
	})
}

// fail records a failure as both the outcome and a visible assistant turn.
func fail(st *components.State, text string) {
	st.SetOutcome(text)
	st.Append(components.NewAssistantTurn(text))
}

// outcomeText renders a tool or execution result for the transcript.
func outcomeText(v any) string {
	switch out := v.(type) {
	case nil:
		return ""
	case string:
		return out
	case float64:
		return fmt.Sprintf("%g", out)
	default:
		raw, err := json.Marshal(out)
		if err != nil {
			return fmt.Sprintf("%v", out)
		}
		return string(raw)
	}
}
