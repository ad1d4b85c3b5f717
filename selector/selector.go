package selector

import (
	"sort"
	"strings"
)

// Selector narrows the set of available tool identifiers down to the ones
// relevant for a task description. Implementations must return a subset of
// the available identifiers, ranked most relevant first, and must never fail:
// an empty result simply means no tool looked useful.
//
// The default implementation is a keyword matcher; a retriever backed by
// embeddings can replace it without touching the router or the executors.
type Selector interface {
	Select(query string, available []string) []string
}

// rule is one keyword→tool mapping, stored with the keyword already
// normalized so Select never normalizes twice.
type rule struct {
	keyword string
	tool    string
}

// KeywordSelector matches normalized keywords as substrings of the normalized
// query. Keywords are tested longest first so a multi-word phrase wins over a
// short fragment it contains.
type KeywordSelector struct {
	rules      []rule
	companions map[string][]string
}

// DefaultRules is the built-in keyword table for the demo tool set. Keys are
// matched after normalization, so accents in either the keyword or the query
// do not matter.
func DefaultRules() map[string]string {
	return map[string]string{
		"tempo":          "get_weather",
		"weather":        "get_weather",
		"clima":          "get_weather",
		"soma":           "add",
		"add":            "add",
		"+":              "add",
		"matematica":     "add",
		"multiplica":     "multiply",
		"*":              "multiply",
		"tabela":         "list_tables",
		"listar tabelas": "list_tables",
		"tables":         "list_tables",
		"colunas":        "describe_table",
		"descrever":      "describe_table",
		"schema":         "describe_table",
		"ler":            "read_query",
		"le":             "read_query",
		"select":         "read_query",
		"consultar":      "read_query",
		"query":          "read_query",
		"escrever":       "write_query",
		"inserir":        "write_query",
		"atualizar":      "write_query",
		"apagar":         "write_query",
		"insert":         "write_query",
		"update":         "write_query",
		"delete":         "write_query",
		"base de dados":  "list_tables",
		"database":       "list_tables",
		"db":             "list_tables",
		"sqlite":         "list_tables",
	}
}

// defaultCompanions enriches read-style selections with the schema
// introspection tools a query almost always needs next.
func defaultCompanions() map[string][]string {
	return map[string][]string{
		"read_query": {"describe_table", "list_tables"},
	}
}

// New builds a KeywordSelector from a keyword→tool table. A nil table uses
// DefaultRules.
func New(table map[string]string) *KeywordSelector {
	if table == nil {
		table = DefaultRules()
	}
	rules := make([]rule, 0, len(table))
	for k, v := range table {
		rules = append(rules, rule{keyword: Normalize(k), tool: v})
	}
	// Longest keyword first so specific phrases are tested before the short
	// substrings they contain; ties break lexicographically for determinism.
	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].keyword) != len(rules[j].keyword) {
			return len(rules[i].keyword) > len(rules[j].keyword)
		}
		return rules[i].keyword < rules[j].keyword
	})
	return &KeywordSelector{
		rules:      rules,
		companions: defaultCompanions(),
	}
}

// Select implements Selector. The result preserves keyword scan order,
// contains no duplicates, and is always a subset of available.
func (s *KeywordSelector) Select(query string, available []string) []string {
	normalized := Normalize(query)

	availSet := make(map[string]struct{}, len(available))
	for _, id := range available {
		availSet[id] = struct{}{}
	}

	var selected []string
	seen := make(map[string]struct{})
	pick := func(id string) {
		if _, ok := availSet[id]; !ok {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}

	for _, r := range s.rules {
		if strings.Contains(normalized, r.keyword) {
			pick(r.tool)
		}
	}

	// Fixed-point enrichment for read-style tools, not a general inference.
	for _, id := range selected {
		for _, extra := range s.companions[id] {
			pick(extra)
		}
	}

	return selected
}
