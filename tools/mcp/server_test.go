package mcp

import (
	"testing"
)

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "céu limpo", "céu limpo"},
		{"float", 4.0, "4"},
		{"float fraction", 2.5, "2.5"},
		{"slice", []string{"clientes", "pedidos"}, `["clientes","pedidos"]`},
		{"map", map[string]any{"affected_rows": 1}, `{"affected_rows":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderValue(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("renderValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeSchema(t *testing.T) {
	m, err := decodeSchema(nil)
	if err != nil {
		t.Fatal(err)
	}
	if m["type"] != "object" {
		t.Errorf("nil schema should default to object, got %v", m)
	}

	in := map[string]any{"type": "object", "required": []any{"city"}}
	m, err = decodeSchema(in)
	if err != nil {
		t.Fatal(err)
	}
	if m["type"] != "object" {
		t.Errorf("map schema should pass through, got %v", m)
	}

	m, err = decodeSchema(struct {
		Type string `json:"type"`
	}{Type: "object"})
	if err != nil {
		t.Fatal(err)
	}
	if m["type"] != "object" {
		t.Errorf("struct schema should round-trip, got %v", m)
	}
}
