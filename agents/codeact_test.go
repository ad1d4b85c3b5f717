package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/tools"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			"javascript fence",
			"claro:\n```javascript\nfinal_output = 1;\n```\n",
			"final_output = 1;",
			true,
		},
		{
			"js fence",
			"```js\nconst a = 1;\n```",
			"const a = 1;",
			true,
		},
		{
			"javascript preferred over earlier generic",
			"```\nvar x = 1;\n```\ndepois:\n```javascript\nfinal_output = 2;\n```",
			"final_output = 2;",
			true,
		},
		{
			"generic fence with evidence",
			"```\nasync function main() {\n  final_output = 3;\n}\n```",
			"async function main() {\n  final_output = 3;\n}",
			true,
		},
		{
			"generic fence without evidence",
			"```\napenas texto simples\n```",
			"",
			false,
		},
		{
			"no fence",
			"não percebi o pedido, podes reformular?",
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractCode(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractCode = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCodeActFastFails(t *testing.T) {
	client := &scriptedClient{}
	e := NewCodeActExecutor(client, tools.NewRegistry(), nil, nil)

	st := components.NewState(components.NewUserTurn("calcula"))
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	outcome, _ := st.Outcome().(string)
	if !strings.Contains(outcome, "nenhuma ferramenta selecionada") {
		t.Errorf("outcome = %q", outcome)
	}

	st = components.NewState(components.NewUserTurn("calcula"))
	st.SetSelectedTools([]string{"inexistente"})
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	outcome, _ = st.Outcome().(string)
	if !strings.Contains(outcome, "nenhuma ferramenta válida") {
		t.Errorf("outcome = %q", outcome)
	}
	if client.calls != 0 {
		t.Errorf("fast fails must not call the model, got %d calls", client.calls)
	}
}

func TestCodeActExecutesGeneratedCode(t *testing.T) {
	tool := newFakeTool("get_weather", "Em Lisboa: céu limpo, 24°C.", nil)
	reply := "```javascript\n" +
		"async function main() {\n" +
		"  const tempo = await get_weather({city: \"Lisboa\"});\n" +
		"  final_output = tempo;\n" +
		"}\n" +
		"```"
	client := &scriptedClient{steps: []scriptedStep{
		{reply: components.NewAssistantTurn(reply)},
	}}

	st := components.NewState(components.NewUserTurn("combina o tempo em lisboa"))
	st.SetSelectedTools([]string{"get_weather"})

	e := NewCodeActExecutor(client, tools.NewRegistry(tool), nil, nil)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}

	if st.Outcome() != "Em Lisboa: céu limpo, 24°C." {
		t.Errorf("outcome = %v", st.Outcome())
	}
	if tool.gotArgs["city"] != "Lisboa" {
		t.Errorf("tool args = %v", tool.gotArgs)
	}
	last, _ := st.LastTurn()
	if last.Role() != components.UserRole ||
		!strings.Contains(last.Content(), "Resultado da execução") {
		t.Errorf("execution result turn missing: %+v", last)
	}

	sys := client.histories[0][0]
	if sys.Role() != components.SystemRole ||
		!strings.Contains(sys.Content(), "get_weather(city)") {
		t.Errorf("system prompt should enumerate tools: %q", sys.Content())
	}
	if strings.Contains(sys.Content(), "{{") {
		t.Errorf("rendered prompt must not leak escaped braces: %q", sys.Content())
	}
}

func TestCodeActStdoutFallbackAndMarker(t *testing.T) {
	tool := newFakeTool("add", 5, nil)
	client := &scriptedClient{steps: []scriptedStep{
		{reply: components.NewAssistantTurn("```javascript\nconsole.log(\"ola\");\n```")},
		{reply: components.NewAssistantTurn("```javascript\nvar _tmp = 1;\n```")},
	}}
	e := NewCodeActExecutor(client, tools.NewRegistry(tool), nil, nil)

	st := components.NewState(components.NewUserTurn("calcula"))
	st.SetSelectedTools([]string{"add"})
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if st.Outcome() != "ola" {
		t.Errorf("stdout fallback outcome = %v", st.Outcome())
	}

	st = components.NewState(components.NewUserTurn("calcula"))
	st.SetSelectedTools([]string{"add"})
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if st.Outcome() != noOutputMarker {
		t.Errorf("marker outcome = %v", st.Outcome())
	}
}

func TestCodeActClarificationReply(t *testing.T) {
	tool := newFakeTool("add", 5, nil)
	client := &scriptedClient{steps: []scriptedStep{
		{reply: components.NewAssistantTurn("que números queres somar?")},
	}}
	e := NewCodeActExecutor(client, tools.NewRegistry(tool), nil, nil)

	st := components.NewState(components.NewUserTurn("calcula a soma"))
	st.SetSelectedTools([]string{"add"})
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if st.Outcome() != "que números queres somar?" {
		t.Errorf("outcome = %v", st.Outcome())
	}
	last, _ := st.LastTurn()
	if last.Role() != components.AssistantRole {
		t.Errorf("clarification reply should be the last turn: %+v", last)
	}
}

func TestCodeActSandboxFaultRendered(t *testing.T) {
	tool := newFakeTool("add", 5, nil)
	client := &scriptedClient{steps: []scriptedStep{
		{reply: components.NewAssistantTurn("```javascript\nnaoExiste();\n```")},
	}}
	e := NewCodeActExecutor(client, tools.NewRegistry(tool), nil, nil)

	st := components.NewState(components.NewUserTurn("calcula"))
	st.SetSelectedTools([]string{"add"})
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	outcome, _ := st.Outcome().(string)
	if !strings.Contains(outcome, "erro ao executar o código") {
		t.Errorf("outcome = %q", outcome)
	}
}

func TestCodeActDuplicateErrorTurnNotAppended(t *testing.T) {
	e := NewCodeActExecutor(&scriptedClient{}, tools.NewRegistry(), nil, nil)
	st := components.NewState(components.NewUserTurn("calcula"))

	e.fail(st, "mesmo erro")
	e.fail(st, "mesmo erro")
	if st.TurnCount() != 2 {
		t.Errorf("TurnCount = %d, want 2 (user + one error turn)", st.TurnCount())
	}

	e.fail(st, "erro diferente")
	if st.TurnCount() != 3 {
		t.Errorf("TurnCount = %d, want 3", st.TurnCount())
	}
}
