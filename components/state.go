package components

import "sync"

// State is the shared conversation state for one task execution. It is owned
// by the orchestrator and passed by reference to every node.
//
// The transcript is append-only within a task: components add turns, never
// remove them. State is safe for use from the single in-flight step that the
// orchestrator runs at a time; the lock only guards against accidental
// concurrent inspection (e.g. from tests or logging).
type State struct {
	mtx sync.RWMutex
	// turns is the chronological transcript.
	turns []Turn
	// taskDescription is the routing text of the latest user turn.
	taskDescription string
	// selectedTools are the tool identifiers chosen for this task, in
	// relevance-rank order. May be empty.
	selectedTools []string
	// outcome is the latest result produced by whichever executor ran.
	outcome any
}

// NewState returns a State seeded with the given turns.
func NewState(turns ...*Turn) *State {
	st := &State{turns: make([]Turn, 0, len(turns)+8)}
	for _, t := range turns {
		if t == nil {
			continue
		}
		st.turns = append(st.turns, *t)
	}
	return st
}

// Append adds a turn to the transcript.
func (s *State) Append(t *Turn) {
	if t == nil {
		return
	}
	s.mtx.Lock()
	s.turns = append(s.turns, *t)
	s.mtx.Unlock()
}

// History returns a snapshot of the transcript.
func (s *State) History() []Turn {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// LastTurn returns the most recent turn, if any.
func (s *State) LastTurn() (Turn, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// TurnCount returns the number of turns in the transcript.
func (s *State) TurnCount() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.turns)
}

// SetTask records the task description for routing.
func (s *State) SetTask(desc string) {
	s.mtx.Lock()
	s.taskDescription = desc
	s.mtx.Unlock()
}

// Task returns the task description.
func (s *State) Task() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.taskDescription
}

// SetSelectedTools records the tool identifiers chosen for this task.
func (s *State) SetSelectedTools(ids []string) {
	s.mtx.Lock()
	s.selectedTools = append([]string(nil), ids...)
	s.mtx.Unlock()
}

// SelectedTools returns the chosen tool identifiers in rank order.
func (s *State) SelectedTools() []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return append([]string(nil), s.selectedTools...)
}

// SetOutcome records the latest executor result.
func (s *State) SetOutcome(v any) {
	s.mtx.Lock()
	s.outcome = v
	s.mtx.Unlock()
}

// Outcome returns the latest executor result.
func (s *State) Outcome() any {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.outcome
}
