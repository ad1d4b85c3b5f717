package tools

import (
	"context"
	"sort"
)

// Tool is an external capability invoked by name with a named-argument
// mapping. Implementations may perform network or external-process I/O and
// may fail; callers treat invocation errors as data, not as faults.
type Tool interface {
	// Name is the unique tool identifier.
	Name() string
	// Description is the human/model facing summary.
	Description() string
	// Schema describes the arguments in JSON-Schema shape
	// ({"type":"object","properties":{...},"required":[...]}).
	Schema() map[string]any
	// Invoke runs the tool with the given arguments.
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

// ArgumentKeys extracts the argument names from a JSON-Schema-shaped schema,
// sorted for deterministic prompt rendering. Returns nil when the schema has
// no recognizable properties block.
func ArgumentKeys(schema map[string]any) []string {
	props, ok := schema["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ObjectSchema is a convenience constructor for the common single-level
// object schema.
func ObjectSchema(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty describes one string argument inside an ObjectSchema.
func StringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// NumberProperty describes one numeric argument inside an ObjectSchema.
func NumberProperty(description string) map[string]any {
	return map[string]any{
		"type":        "number",
		"description": description,
	}
}
