// Package calculator implements the arithmetic tool backends: two-operand
// add and multiply plus a free-form expression evaluator.
package calculator

import (
	"context"
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/roteiro-agents/roteiro/tools"
)

// AddTool sums two numeric operands.
type AddTool struct {
	tools.Config
}

func NewAdd(opts ...tools.Option) *AddTool {
	ret := new(AddTool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("add")
	}
	if ret.Description() == "" {
		ret.SetDescription("Soma dois números.")
	}
	return ret
}

func (t *AddTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"a", "b"}, map[string]any{
		"a": tools.NumberProperty("Primeiro número."),
		"b": tools.NumberProperty("Segundo número."),
	})
}

func (t *AddTool) Invoke(_ context.Context, args map[string]any) (any, error) {
	a, b, err := operands(args)
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

// MultiplyTool multiplies two numeric operands.
type MultiplyTool struct {
	tools.Config
}

func NewMultiply(opts ...tools.Option) *MultiplyTool {
	ret := new(MultiplyTool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("multiply")
	}
	if ret.Description() == "" {
		ret.SetDescription("Multiplica dois números.")
	}
	return ret
}

func (t *MultiplyTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"a", "b"}, map[string]any{
		"a": tools.NumberProperty("Primeiro número."),
		"b": tools.NumberProperty("Segundo número."),
	})
}

func (t *MultiplyTool) Invoke(_ context.Context, args map[string]any) (any, error) {
	a, b, err := operands(args)
	if err != nil {
		return nil, err
	}
	return a * b, nil
}

// EvalTool evaluates a full arithmetic expression. Common math functions and
// constants (pi, e, sqrt2, ...) are available inside expressions.
type EvalTool struct {
	tools.Config
}

func NewEval(opts ...tools.Option) *EvalTool {
	ret := new(EvalTool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("eval")
	}
	if ret.Description() == "" {
		ret.SetDescription("Avalia uma expressão matemática, por exemplo '2 + 2 * pi'.")
	}
	return ret
}

func (t *EvalTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"expression"}, map[string]any{
		"expression": tools.StringProperty("Expressão matemática a avaliar."),
	})
}

func (t *EvalTool) Invoke(_ context.Context, args map[string]any) (any, error) {
	raw, ok := args["expression"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("missing expression argument")
	}
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(raw, functions)
	if err != nil {
		return nil, err
	}
	return exp.Evaluate(constParams)
}

func operands(args map[string]any) (float64, float64, error) {
	a, err := toFloat(args["a"])
	if err != nil {
		return 0, 0, fmt.Errorf("argument a: %w", err)
	}
	b, err := toFloat(args["b"])
	if err != nil {
		return 0, 0, fmt.Errorf("argument b: %w", err)
	}
	return a, b, nil
}
