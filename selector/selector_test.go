package selector

import (
	"fmt"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"É", "e"},
		{"Qual é o TEMPO?", "qual e o tempo?"},
		{"informação", "informacao"},
		{"côco à lã", "coco a la"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"É", "ação", "Multiplicação", "já normalizado", "2+2"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestSelectWeatherAndMath(t *testing.T) {
	s := New(nil)
	got := s.Select("qual o tempo e a soma", []string{"get_weather", "add"})
	want := []string{"get_weather", "add"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select = %v, want %v", got, want)
	}
}

func TestSelectLongestMatchPrecedence(t *testing.T) {
	table := DefaultRules()
	// A shorter conflicting keyword must not pre-empt the specific phrase.
	table["lista"] = "read_query"
	s := New(table)

	got := s.Select("listar tabelas", []string{"list_tables", "read_query"})
	if len(got) == 0 || got[0] != "list_tables" {
		t.Fatalf("Select = %v, want list_tables first", got)
	}
}

func TestSelectSubsetOfAvailable(t *testing.T) {
	s := New(nil)
	got := s.Select("qual o tempo e a soma de 2 e 3", []string{"add"})
	want := []string{"add"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select = %v, want %v", got, want)
	}
}

func TestSelectNoMatch(t *testing.T) {
	s := New(nil)
	if got := s.Select("conta-me uma historia", []string{"get_weather"}); len(got) != 0 {
		t.Fatalf("Select = %v, want empty", got)
	}
}

func TestSelectReadQueryCompanions(t *testing.T) {
	s := New(nil)
	available := []string{"read_query", "describe_table", "list_tables", "get_weather"}
	got := s.Select("consultar os voos", available)
	want := []string{"read_query", "describe_table", "list_tables"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select = %v, want %v", got, want)
	}
}

func TestSelectNoDuplicates(t *testing.T) {
	s := New(nil)
	got := s.Select("tempo clima weather", []string{"get_weather"})
	want := []string{"get_weather"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select = %v, want %v", got, want)
	}
}

func TestParseRules(t *testing.T) {
	raw := []byte("keywords:\n  tempo: get_weather\n  \"listar tabelas\": list_tables\n")
	table, err := ParseRules(raw)
	if err != nil {
		t.Fatal(err)
	}
	if table["tempo"] != "get_weather" || table["listar tabelas"] != "list_tables" {
		t.Fatalf("unexpected table %v", table)
	}

	if _, err := ParseRules([]byte("keywords: {}\n")); err == nil {
		t.Fatal("expected error for empty keyword table")
	}
}

func ExampleKeywordSelector_Select() {
	s := New(nil)
	fmt.Println(s.Select("qual é o tempo em lisboa?", []string{"get_weather", "add"}))
	// Output:
	// [get_weather]
}
