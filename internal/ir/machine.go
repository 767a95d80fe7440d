package ir

import "sort"

// TransitionTable is the immutable internal representation of the cycle's edges
type TransitionTable struct {
	ID      string
	Initial State
	States  map[State]*StateConfig
}

// StateConfig holds the outgoing edges of a single state
type StateConfig struct {
	State       State
	Transitions []*TransitionConfig
}

// TransitionConfig represents a single {source, trigger} -> target edge
type TransitionConfig struct {
	Trigger Trigger
	Target  State
}

// Edge is a flattened transition used for listing and export
type Edge struct {
	Source  State
	Trigger Trigger
	Target  State
}

// NewTransitionTable creates a new TransitionTable with an initialized state map
func NewTransitionTable(id string, initial State) *TransitionTable {
	return &TransitionTable{
		ID:      id,
		Initial: initial,
		States:  make(map[State]*StateConfig),
	}
}

// NewStateConfig creates a new StateConfig
func NewStateConfig(s State) *StateConfig {
	return &StateConfig{
		State:       s,
		Transitions: nil,
	}
}

// NewTransitionConfig creates a new TransitionConfig
func NewTransitionConfig(trigger Trigger, target State) *TransitionConfig {
	return &TransitionConfig{
		Trigger: trigger,
		Target:  target,
	}
}

// GetState returns the state config for the given state, or nil if not found
func (t *TransitionTable) GetState(s State) *StateConfig {
	return t.States[s]
}

// FindTransition finds the first edge for the given trigger
// Returns nil if no matching edge is found
func (s *StateConfig) FindTransition(trigger Trigger) *TransitionConfig {
	for _, tr := range s.Transitions {
		if tr.Trigger == trigger {
			return tr
		}
	}
	return nil
}

// Target resolves the target of the edge leaving source on trigger
func (t *TransitionTable) Target(source State, trigger Trigger) (State, bool) {
	sc := t.GetState(source)
	if sc == nil {
		return source, false
	}
	tr := sc.FindTransition(trigger)
	if tr == nil {
		return source, false
	}
	return tr.Target, true
}

// SortedStates returns the declared states in enumeration order
func (t *TransitionTable) SortedStates() []State {
	states := make([]State, 0, len(t.States))
	for s := range t.States {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Edges returns every edge ordered by source state, then declaration order
func (t *TransitionTable) Edges() []Edge {
	var edges []Edge
	for _, s := range t.SortedStates() {
		for _, tr := range t.States[s].Transitions {
			edges = append(edges, Edge{Source: s, Trigger: tr.Trigger, Target: tr.Target})
		}
	}
	return edges
}

// Reachable returns the set of states reachable from the initial state
func (t *TransitionTable) Reachable() map[State]bool {
	seen := map[State]bool{t.Initial: true}
	queue := []State{t.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sc := t.GetState(current)
		if sc == nil {
			continue
		}
		for _, tr := range sc.Transitions {
			if !seen[tr.Target] {
				seen[tr.Target] = true
				queue = append(queue, tr.Target)
			}
		}
	}
	return seen
}
