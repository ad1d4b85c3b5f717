package selector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk layout for a keyword table.
//
//	keywords:
//	  tempo: get_weather
//	  "listar tabelas": list_tables
type ruleFile struct {
	Keywords map[string]string `yaml:"keywords"`
}

// LoadRules reads a keyword→tool table from a YAML file. The table replaces
// the built-in one; pass the result to New.
func LoadRules(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules decodes a YAML keyword table.
func ParseRules(raw []byte) (map[string]string, error) {
	var f ruleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(f.Keywords) == 0 {
		return nil, fmt.Errorf("parse rules: no keywords defined")
	}
	return f.Keywords, nil
}
