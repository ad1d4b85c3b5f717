package agents

import (
	"context"
	"fmt"

	"github.com/roteiro-agents/roteiro/components"
)

// End terminates a graph walk.
const End = "__end__"

// NodeFunc is one graph step. Nodes fold their own failures into the state;
// a returned error aborts the walk (cancellation, wiring defects).
type NodeFunc func(ctx context.Context, st *components.State) error

// Graph is a minimal named-node state machine: each node has either one
// static successor or a conditional picking the successor from the state.
type Graph struct {
	nodes map[string]NodeFunc
	edges map[string]string
	conds map[string]func(*components.State) string
	entry string
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]NodeFunc),
		edges: make(map[string]string),
		conds: make(map[string]func(*components.State) string),
	}
}

func (g *Graph) AddNode(name string, fn NodeFunc) *Graph {
	g.nodes[name] = fn
	return g
}

func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges[from] = to
	return g
}

func (g *Graph) AddConditionalEdge(from string, pick func(*components.State) string) *Graph {
	g.conds[from] = pick
	return g
}

func (g *Graph) SetEntry(name string) *Graph {
	g.entry = name
	return g
}

// Run walks the graph from the entry node until End. Each node runs at most
// a bounded number of times the graph has nodes, so a wiring cycle cannot
// spin forever.
func (g *Graph) Run(ctx context.Context, st *components.State) error {
	if g.entry == "" {
		return fmt.Errorf("graph: no entry node")
	}
	maxSteps := len(g.nodes) * len(g.nodes)
	if maxSteps < len(g.nodes) {
		maxSteps = len(g.nodes)
	}

	current := g.entry
	for step := 0; current != End; step++ {
		if step > maxSteps {
			return fmt.Errorf("graph: walk exceeded %d steps at node %s", maxSteps, current)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fn, ok := g.nodes[current]
		if !ok {
			return fmt.Errorf("graph: unknown node %s", current)
		}
		if err := fn(ctx, st); err != nil {
			return err
		}
		if pick, ok := g.conds[current]; ok {
			current = pick(st)
			continue
		}
		next, ok := g.edges[current]
		if !ok {
			return fmt.Errorf("graph: node %s has no outgoing edge", current)
		}
		current = next
	}
	return nil
}
