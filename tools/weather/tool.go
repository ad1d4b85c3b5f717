// Package weather implements the demonstration weather backend. Conditions
// are canned per city so demos stay deterministic and offline.
package weather

import (
	"context"
	"fmt"

	"github.com/roteiro-agents/roteiro/selector"
	"github.com/roteiro-agents/roteiro/tools"
)

type report struct {
	condition string
	celsius   int
}

var reports = map[string]report{
	"lisboa":         {"céu limpo", 24},
	"porto":          {"aguaceiros", 18},
	"coimbra":        {"nublado", 21},
	"braga":          {"chuva fraca", 17},
	"faro":           {"sol", 28},
	"sao paulo":      {"parcialmente nublado", 23},
	"rio de janeiro": {"sol", 30},
}

const defaultReport = "tempo ameno, 20°C"

// Tool reports current conditions for a city.
type Tool struct {
	tools.Config
}

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("get_weather")
	}
	if ret.Description() == "" {
		ret.SetDescription("Obtém o tempo atual para uma cidade.")
	}
	return ret
}

func (t *Tool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"city"}, map[string]any{
		"city": tools.StringProperty("Nome da cidade."),
	})
}

func (t *Tool) Invoke(_ context.Context, args map[string]any) (any, error) {
	city, ok := args["city"].(string)
	if !ok || city == "" {
		return nil, fmt.Errorf("missing city argument")
	}
	r, ok := reports[selector.Normalize(city)]
	if !ok {
		return fmt.Sprintf("Em %s: %s.", city, defaultReport), nil
	}
	return fmt.Sprintf("Em %s: %s, %d°C.", city, r.condition, r.celsius), nil
}
