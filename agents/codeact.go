package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/llm"
	"github.com/roteiro-agents/roteiro/sandbox"
	"github.com/roteiro-agents/roteiro/tools"
)

const codeactPromptHeader = `És um assistente que resolve o pedido do utilizador escrevendo um pequeno programa JavaScript.

Ferramentas disponíveis no programa:
`

const codeactPromptRules = `
Regras de autoria:
- Define exatamente um ponto de entrada: async function main() {{ ... }}.
- Chama cada ferramenta com await e um único objeto de argumentos nomeados,
  por exemplo await get_weather({{city: "Lisboa"}}). Nunca uses argumentos posicionais.
- Guarda o resultado final na variável global final_output.
- Responde apenas com um bloco de código cercado por ` + "```javascript" + `.

Exemplo 1:
` + "```javascript" + `
async function main() {{
  const tempo = await get_weather({{city: "Lisboa"}});
  final_output = tempo;
}}
` + "```" + `

Exemplo 2:
` + "```javascript" + `
async function main() {{
  const soma = await add({{a: 2, b: 3}});
  const dobro = await multiply({{a: soma, b: 2}});
  final_output = "soma: " + soma + ", dobro: " + dobro;
}}
` + "```" + `
`

// noOutputMarker is the outcome when executed code neither bound the output
// variable nor printed anything.
const noOutputMarker = "<código executado sem produzir resultado>"

// CodeActExecutor runs the multi-tool path: the model authors a program, the
// sandbox executes it with the resolved tools bound, the captured output
// becomes the outcome.
type CodeActExecutor struct {
	client   llm.Client
	registry *tools.Registry
	box      sandbox.Sandbox
	logger   *slog.Logger
}

func NewCodeActExecutor(client llm.Client, registry *tools.Registry, box sandbox.Sandbox, logger *slog.Logger) *CodeActExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	if box == nil {
		box = sandbox.NewGoja(logger)
	}
	return &CodeActExecutor{client: client, registry: registry, box: box, logger: logger}
}

func (e *CodeActExecutor) Run(ctx context.Context, st *components.State) error {
	if e.client == nil || e.registry == nil {
		e.fail(st, "erro de configuração: cliente de modelo ou registo de ferramentas em falta")
		return nil
	}

	selected := st.SelectedTools()
	if len(selected) == 0 {
		e.fail(st, "nenhuma ferramenta selecionada para gerar código")
		return nil
	}
	var resolved []tools.Tool
	for _, name := range selected {
		if tool, ok := e.registry.Lookup(name); ok {
			resolved = append(resolved, tool)
		}
	}
	if len(resolved) == 0 {
		e.fail(st, "nenhuma ferramenta válida no registo para gerar código")
		return nil
	}

	prompt, err := buildCodePrompt(resolved)
	if err != nil {
		e.fail(st, fmt.Sprintf("erro ao construir o prompt: %v", err))
		return nil
	}

	history := append([]components.Turn{*components.NewSystemTurn(prompt)}, st.History()...)
	reply, err := e.client.Invoke(ctx, history, nil)
	if err != nil {
		e.fail(st, fmt.Sprintf("erro ao invocar o modelo: %v", err))
		return nil
	}
	st.Append(reply)

	code, ok := extractCode(reply.Content())
	if !ok {
		// No program: the model chose to answer in natural language.
		st.SetOutcome(reply.Content())
		return nil
	}

	namespace := map[string]any{sandbox.OutputVar: nil}
	for _, tool := range resolved {
		namespace[tool.Name()] = sandbox.ToolFunc(tool.Invoke)
	}
	e.logger.Info("executing generated code", "tools", len(resolved), "bytes", len(code))
	res, err := e.box.Execute(ctx, code, namespace)
	if err != nil {
		return err
	}

	outcome := executionOutcome(res)
	st.SetOutcome(outcome)
	st.Append(components.NewUserTurn("Resultado da execução do código:\n" + outcomeText(outcome)))
	return nil
}

// fail mirrors the single-tool failure handling, except that an identical
// consecutive assistant error turn is not appended twice.
func (e *CodeActExecutor) fail(st *components.State, text string) {
	st.SetOutcome(text)
	if last, ok := st.LastTurn(); ok &&
		last.Role() == components.AssistantRole && last.Content() == text {
		return
	}
	st.Append(components.NewAssistantTurn(text))
}

// executionOutcome applies the outcome precedence: bound output variable,
// then captured stdout, then the fixed marker.
func executionOutcome(res *sandbox.Result) any {
	if v, ok := res.Vars[sandbox.OutputVar]; ok && v != nil {
		return v
	}
	if strings.TrimSpace(res.Stdout) != "" {
		return strings.TrimRight(res.Stdout, "\n")
	}
	return noOutputMarker
}

// buildCodePrompt enumerates the resolved tools and renders the authoring
// rules. Tool descriptions and argument keys are escaped before being baked
// into the template source.
func buildCodePrompt(resolved []tools.Tool) (string, error) {
	var list strings.Builder
	for _, tool := range resolved {
		args := strings.Join(tools.ArgumentKeys(tool.Schema()), ", ")
		list.WriteString(fmt.Sprintf("- %s(%s): %s\n",
			tool.Name(), EscapeBraces(args), EscapeBraces(tool.Description())))
	}
	tpl := NewTemplate(codeactPromptHeader + list.String() + codeactPromptRules)
	return tpl.Render(nil)
}

// codeEvidence marks a generic fenced block as an executable program rather
// than prose.
var codeEvidence = []string{"async function main", "await ", "function ", "=", "console.log"}

// extractCode finds the program in a model reply. Blocks tagged javascript
// or js win; a block with another (or no) tag qualifies only with structural
// evidence.
func extractCode(reply string) (string, bool) {
	var fallback string
	rest := reply
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			break
		}
		rest = rest[start+3:]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			break
		}
		tag := strings.TrimSpace(rest[:nl])
		rest = rest[nl+1:]
		end := strings.Index(rest, "```")
		if end < 0 {
			break
		}
		body := strings.TrimRight(rest[:end], "\n")
		rest = rest[end+3:]

		switch strings.ToLower(tag) {
		case "javascript", "js":
			return body, true
		default:
			if fallback == "" && hasCodeEvidence(body) {
				fallback = body
			}
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

func hasCodeEvidence(body string) bool {
	for _, marker := range codeEvidence {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
