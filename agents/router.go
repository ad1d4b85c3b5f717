package agents

import "strings"

// Strategy names the execution path chosen for one task.
type Strategy string

const (
	// StrategyReAct answers with at most one model-argued tool call.
	StrategyReAct Strategy = "react"
	// StrategyCodeAct has the model author a program that calls the tools.
	StrategyCodeAct Strategy = "codeact"
)

// complexityMarkers route a task to code synthesis. Matching is lower-case
// but keeps accents, so "código" is matched as written.
var complexityMarkers = []string{
	"calcular",
	"processar",
	"combinar",
	"código",
	"code",
	" e ",
	"sql",
}

// Route decides the strategy for a task: code synthesis when the text shows
// computational intent or more than one tool is in play, single-tool
// otherwise.
func Route(task string, selected []string) Strategy {
	if len(selected) > 1 {
		return StrategyCodeAct
	}
	lowered := strings.ToLower(task)
	for _, marker := range complexityMarkers {
		if strings.Contains(lowered, marker) {
			return StrategyCodeAct
		}
	}
	return StrategyReAct
}
