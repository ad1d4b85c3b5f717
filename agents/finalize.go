package agents

import (
	"context"
	"log/slog"
	"time"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/llm"
	"github.com/roteiro-agents/roteiro/retry"
)

const finalPrompt = `Compõe a resposta final ao pedido original do utilizador.

Trata todos os resultados de ferramentas e de código presentes na conversa
como verdade absoluta. Responde de forma concisa e confiante. Nunca digas
que te falta informação que já foi obtida.`

// DefaultFinalizePolicy retries rate-limited model calls with doubling
// backoff; everything else fails on the first attempt.
func DefaultFinalizePolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		Retryable:   llm.IsRateLimit,
	}
}

// Finalizer composes the user-facing answer from the transcript and the
// latest outcome.
type Finalizer struct {
	client llm.Client
	policy retry.Policy
	logger *slog.Logger
}

func NewFinalizer(client llm.Client, policy retry.Policy, logger *slog.Logger) *Finalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finalizer{client: client, policy: policy, logger: logger}
}

// Run is a no-op when the last turn is already a terminal assistant turn, so
// finalizing twice without new activity performs no model call. Failures
// degrade to an assistant turn carrying the raw outcome; only rate limits
// are retried.
func (f *Finalizer) Run(ctx context.Context, st *components.State) error {
	if last, ok := st.LastTurn(); ok &&
		last.Role() == components.AssistantRole && last.ToolCall() == nil {
		return nil
	}
	if f.client == nil {
		f.degrade(st)
		return nil
	}

	history := append([]components.Turn{*components.NewSystemTurn(finalPrompt)}, st.History()...)
	var reply *components.Turn
	err := f.policy.Do(ctx, func() error {
		r, callErr := f.client.Invoke(ctx, history, nil)
		if callErr != nil {
			return callErr
		}
		reply = r
		return nil
	})
	if err == nil {
		st.Append(reply)
		st.SetOutcome(reply.Content())
		return nil
	}

	switch {
	case llm.IsSystemConflict(err):
		f.logger.Warn("finalize rejected for system turn conflict", "error", err)
	case llm.IsRateLimit(err):
		f.logger.Warn("finalize exhausted rate-limit retries", "error", err)
	default:
		f.logger.Error("finalize failed", "error", err)
	}
	f.degrade(st)
	return nil
}

// degrade appends the raw outcome as the final turn when composing failed.
func (f *Finalizer) degrade(st *components.State) {
	text := "Não foi possível compor a resposta final, mas o resultado obtido foi preservado: " +
		outcomeText(st.Outcome())
	st.Append(components.NewAssistantTurn(text))
}
