// Package llm wraps the model providers behind a single chat interface.
// Providers are injected, never constructed inside the orchestration layer.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/roteiro-agents/roteiro/components"
)

// ToolConstraint forces the next assistant turn to call one specific tool.
type ToolConstraint struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// Client is one chat-completion provider. Invoke sends the transcript and
// returns the next assistant turn, which carries either text or a tool call.
type Client interface {
	Invoke(ctx context.Context, history []components.Turn, constraint *ToolConstraint) (*components.Turn, error)
}

// ErrSystemConflict reports system turns that do not form one leading block.
// Providers accept a single system prompt, so the transcript cannot express
// anything else.
var ErrSystemConflict = errors.New("multiple non-consecutive system messages")

// IsSystemConflict reports whether err is the system-placement conflict.
func IsSystemConflict(err error) bool {
	return errors.Is(err, ErrSystemConflict)
}

// splitSystem merges the leading system turns into one prompt and returns the
// remaining transcript. A system turn after any non-system turn is a
// conflict.
func splitSystem(history []components.Turn) (string, []components.Turn, error) {
	var system []string
	rest := history
	for len(rest) > 0 && rest[0].Role() == components.SystemRole {
		system = append(system, rest[0].Content())
		rest = rest[1:]
	}
	for _, turn := range rest {
		if turn.Role() == components.SystemRole {
			return "", nil, fmt.Errorf("%w: system turn after %s turn", ErrSystemConflict, rest[0].Role())
		}
	}
	return strings.Join(system, "\n\n"), rest, nil
}

var rateLimitSignatures = []string{"429", "rate_limit_error", "ResourceExhausted"}

// IsRateLimit reports whether err is a provider rate-limit rejection, either
// as a typed provider error or by its wire signature.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
		return true
	}
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) && oaErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	for _, sig := range rateLimitSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
