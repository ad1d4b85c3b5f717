// Package sandbox executes model-synthesized JavaScript against a namespace
// of bound tool functions.
//
// This is a demonstration sandbox, not a security boundary: scripts share
// the host process and are limited only by what the namespace exposes and by
// context cancellation. Do not run it on untrusted input in production.
package sandbox

import "context"

// OutputVar is the global the synthesized code binds its answer to.
const OutputVar = "final_output"

// outputAliases are accepted when the script bound its answer to a
// differently named global. First non-null wins, adopted under OutputVar.
var outputAliases = []string{"resultado", "resultado_final", "resposta_final", "resposta"}

// ToolFunc is a tool invocation bound into the sandbox. The sandboxed script
// calls it with a single named-argument object.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// Result carries everything a script produced: captured print output and the
// global variables the script introduced. When the script bound an answer,
// Vars[OutputVar] holds it.
type Result struct {
	Stdout string
	Vars   map[string]any
}

// Sandbox runs untrusted code with the given namespace in scope. ToolFunc
// entries become callable globals, everything else is bound as a plain
// value. Evaluation faults never surface as errors; they are rendered into
// Result.Stdout so the caller can show them to the model.
type Sandbox interface {
	Execute(ctx context.Context, source string, namespace map[string]any) (*Result, error)
}
