package components

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// NewCallID returns a correlation ID for a tool call when the model provider
// did not supply one.
func NewCallID() string {
	return uuid.NewString()
}

// Role is the role of the turn author.
type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	ToolRole      Role = "tool"
)

// ToolCall is a pending tool invocation requested by an assistant turn.
type ToolCall struct {
	// ID correlates the request with the tool turn carrying its result.
	ID string
	// Name is the tool identifier to invoke.
	Name string
	// Arguments maps argument names to values.
	Arguments map[string]any
}

// Turn is one entry in the conversation transcript.
//
// Assistant turns may carry at most one pending tool call. Tool turns carry
// the correlation ID of the call they answer.
type Turn struct {
	role    Role
	content string
	// toolCall is the pending invocation on an assistant turn, nil otherwise.
	toolCall *ToolCall
	// toolCallID correlates a tool turn with the assistant turn that
	// requested it.
	toolCallID string
	// turnID is a unique identifier for this turn.
	turnID string
}

// NewTurn returns a plain text turn with the given role.
func NewTurn(role Role, content string) *Turn {
	return &Turn{
		role:    role,
		content: content,
		turnID:  NewTurnID(),
	}
}

// NewSystemTurn returns a system turn.
func NewSystemTurn(content string) *Turn { return NewTurn(SystemRole, content) }

// NewUserTurn returns a user turn.
func NewUserTurn(content string) *Turn { return NewTurn(UserRole, content) }

// NewAssistantTurn returns an assistant turn with no pending tool call.
func NewAssistantTurn(content string) *Turn { return NewTurn(AssistantRole, content) }

// NewToolCallTurn returns an assistant turn carrying a pending tool call.
// A missing call ID is replaced with a generated one so the transcript stays
// addressable.
func NewToolCallTurn(content string, call ToolCall) *Turn {
	if call.ID == "" {
		call.ID = NewCallID()
	}
	t := NewTurn(AssistantRole, content)
	t.toolCall = &call
	return t
}

// NewToolResultTurn returns a tool turn carrying the result (or error text)
// for the call identified by callID.
func NewToolResultTurn(content, callID string) *Turn {
	t := NewTurn(ToolRole, content)
	t.toolCallID = callID
	return t
}

// Role returns the turn role.
func (t Turn) Role() Role { return t.role }

// Content returns the turn text payload.
func (t Turn) Content() string { return t.content }

// ToolCall returns the pending tool call, or nil.
func (t Turn) ToolCall() *ToolCall { return t.toolCall }

// ToolCallID returns the correlation ID on a tool turn, empty otherwise.
func (t Turn) ToolCallID() string { return t.toolCallID }

// TurnID returns the unique turn identifier.
func (t Turn) TurnID() string { return t.turnID }
