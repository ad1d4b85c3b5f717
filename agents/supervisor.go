package agents

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/roteiro-agents/roteiro/components"
	"github.com/roteiro-agents/roteiro/llm"
	"github.com/roteiro-agents/roteiro/retry"
	"github.com/roteiro-agents/roteiro/sandbox"
	"github.com/roteiro-agents/roteiro/selector"
	"github.com/roteiro-agents/roteiro/tools"
)

// Node names of the standard graph.
const (
	NodeSupervisor = "supervisor"
	NodeReAct      = "react_agent"
	NodeCodeAct    = "codeact_agent"
	NodeFinal      = "final_answer"
)

// Options carries the injected collaborators for an Orchestrator. Client and
// Registry are required; the rest default sensibly.
type Options struct {
	Client   llm.Client
	Registry *tools.Registry
	Selector selector.Selector
	Sandbox  sandbox.Sandbox
	Logger   *slog.Logger
	// FinalizePolicy overrides the default rate-limit retry policy.
	FinalizePolicy *retry.Policy
}

// Orchestrator owns the standard task graph: supervisor → route → one
// executor → finalizer.
type Orchestrator struct {
	graph    *Graph
	selector selector.Selector
	registry *tools.Registry
	logger   *slog.Logger
	tasks    *atomic.Int64
}

// New assembles the standard graph from the injected collaborators.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sel := opts.Selector
	if sel == nil {
		sel = selector.New(selector.DefaultRules())
	}
	box := opts.Sandbox
	if box == nil {
		box = sandbox.NewGoja(logger)
	}
	policy := DefaultFinalizePolicy()
	if opts.FinalizePolicy != nil {
		policy = *opts.FinalizePolicy
	}

	o := &Orchestrator{
		selector: sel,
		registry: opts.Registry,
		logger:   logger,
		tasks:    atomic.NewInt64(0),
	}

	react := NewReActExecutor(opts.Client, opts.Registry, logger)
	codeact := NewCodeActExecutor(opts.Client, opts.Registry, box, logger)
	finalizer := NewFinalizer(opts.Client, policy, logger)

	o.graph = NewGraph().
		AddNode(NodeSupervisor, o.supervise).
		AddNode(NodeReAct, react.Run).
		AddNode(NodeCodeAct, codeact.Run).
		AddNode(NodeFinal, finalizer.Run).
		AddConditionalEdge(NodeSupervisor, o.pickExecutor).
		AddEdge(NodeReAct, NodeFinal).
		AddEdge(NodeCodeAct, NodeFinal).
		AddEdge(NodeFinal, End).
		SetEntry(NodeSupervisor)
	return o
}

// Run walks one task through the graph.
func (o *Orchestrator) Run(ctx context.Context, st *components.State) error {
	o.tasks.Inc()
	return o.graph.Run(ctx, st)
}

// RunTask is a convenience wrapper: seeds a fresh state with the user text,
// runs the graph and returns the state.
func (o *Orchestrator) RunTask(ctx context.Context, task string) (*components.State, error) {
	st := components.NewState(components.NewUserTurn(task))
	if err := o.Run(ctx, st); err != nil {
		return st, err
	}
	return st, nil
}

// TaskCount returns how many tasks this orchestrator has started.
func (o *Orchestrator) TaskCount() int64 {
	return o.tasks.Load()
}

// supervise records the task description and narrows the candidate tools.
func (o *Orchestrator) supervise(_ context.Context, st *components.State) error {
	task := lastUserText(st)
	if task == "" {
		return fmt.Errorf("supervisor: no user turn in transcript")
	}
	st.SetTask(task)

	var available []string
	if o.registry != nil {
		available = o.registry.Names()
	}
	selected := o.selector.Select(task, available)
	st.SetSelectedTools(selected)
	o.logger.Info("task prepared", "task", task, "selected_tools", selected)
	return nil
}

// pickExecutor routes to exactly one executor per task.
func (o *Orchestrator) pickExecutor(st *components.State) string {
	strategy := Route(st.Task(), st.SelectedTools())
	o.logger.Info("routed task", "strategy", string(strategy))
	if strategy == StrategyCodeAct {
		return NodeCodeAct
	}
	return NodeReAct
}

func lastUserText(st *components.State) string {
	history := st.History()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role() == components.UserRole {
			return history[i].Content()
		}
	}
	return ""
}
