package components

import "testing"

func TestStateAppendOnly(t *testing.T) {
	st := NewState(NewUserTurn("olá"))
	st.Append(NewAssistantTurn("bom dia"))

	if got := st.TurnCount(); got != 2 {
		t.Fatalf("TurnCount = %d, want 2", got)
	}

	hist := st.History()
	if hist[0].Role() != UserRole || hist[1].Role() != AssistantRole {
		t.Fatalf("unexpected roles %v %v", hist[0].Role(), hist[1].Role())
	}

	// Mutating the snapshot must not affect the transcript.
	hist[0] = *NewSystemTurn("tampered")
	if st.History()[0].Content() != "olá" {
		t.Fatal("History snapshot is not isolated from the transcript")
	}
}

func TestLastTurn(t *testing.T) {
	st := NewState()
	if _, ok := st.LastTurn(); ok {
		t.Fatal("LastTurn on empty state should report false")
	}
	st.Append(NewUserTurn("x"))
	st.Append(NewAssistantTurn("y"))
	last, ok := st.LastTurn()
	if !ok || last.Content() != "y" {
		t.Fatalf("LastTurn = %v %v", last.Content(), ok)
	}
}

func TestToolCallTurnGeneratesCallID(t *testing.T) {
	turn := NewToolCallTurn("", ToolCall{Name: "get_weather", Arguments: map[string]any{"location": "Lisboa"}})
	call := turn.ToolCall()
	if call == nil {
		t.Fatal("expected pending tool call")
	}
	if call.ID == "" {
		t.Fatal("expected generated correlation ID")
	}

	result := NewToolResultTurn("12°C", call.ID)
	if result.ToolCallID() != call.ID {
		t.Fatalf("correlation mismatch: %s != %s", result.ToolCallID(), call.ID)
	}
	if result.Role() != ToolRole {
		t.Fatalf("unexpected role %s", result.Role())
	}
}

func TestSelectedToolsCopied(t *testing.T) {
	st := NewState()
	ids := []string{"add", "multiply"}
	st.SetSelectedTools(ids)
	ids[0] = "tampered"
	if got := st.SelectedTools(); got[0] != "add" {
		t.Fatalf("SelectedTools leaked caller slice: %v", got)
	}
}
