package agentcycle

import "github.com/felixgeelhaar/agentcycle/internal/ir"

// TableBuilder provides a fluent API for constructing transition tables
type TableBuilder struct {
	id      string
	initial State
	states  []*StateBuilder
}

// StateBuilder provides a fluent API for declaring the edges of one state
type StateBuilder struct {
	table       *TableBuilder
	state       State
	transitions []*TransitionBuilder
}

// TransitionBuilder provides a fluent API for constructing a single edge
type TransitionBuilder struct {
	state   *StateBuilder
	trigger Trigger
	target  State
}

// NewTable creates a new TableBuilder with the given ID.
// The initial state defaults to Init.
func NewTable(id string) *TableBuilder {
	return &TableBuilder{
		id:      id,
		initial: Init,
	}
}

// WithInitial sets the initial state
func (b *TableBuilder) WithInitial(initial State) *TableBuilder {
	b.initial = initial
	return b
}

// State starts declaring the edges leaving the given state
func (b *TableBuilder) State(s State) *StateBuilder {
	sb := &StateBuilder{
		table: b,
		state: s,
	}
	b.states = append(b.states, sb)
	return sb
}

// Build constructs the final TransitionTable from the builder
func (b *TableBuilder) Build() (*TransitionTable, error) {
	table := ir.NewTransitionTable(b.id, b.initial)

	for _, sb := range b.states {
		sc := table.GetState(sb.state)
		if sc == nil {
			sc = ir.NewStateConfig(sb.state)
			table.States[sb.state] = sc
		}
		for _, tb := range sb.transitions {
			sc.Transitions = append(sc.Transitions, ir.NewTransitionConfig(tb.trigger, tb.target))
		}
	}

	if err := ir.Validate(table); err != nil {
		return nil, err
	}

	return table, nil
}

// --- StateBuilder methods ---

// On starts building a new edge taken on the given trigger
func (b *StateBuilder) On(trigger Trigger) *TransitionBuilder {
	tb := &TransitionBuilder{
		state:   b,
		trigger: trigger,
		target:  b.state,
	}
	b.transitions = append(b.transitions, tb)
	return tb
}

// Done completes the state declaration and returns to the table builder
func (b *StateBuilder) Done() *TableBuilder {
	return b.table
}

// --- TransitionBuilder methods ---

// Target sets the target state of the edge
func (b *TransitionBuilder) Target(target State) *TransitionBuilder {
	b.target = target
	return b
}

// On starts a new edge on the same state (chainable)
func (b *TransitionBuilder) On(trigger Trigger) *TransitionBuilder {
	return b.state.On(trigger)
}

// Done completes the state declaration and returns to the table builder
func (b *TransitionBuilder) Done() *TableBuilder {
	return b.state.Done()
}

var defaultTable = mustBuild(NewTable("agentCycle").
	State(Init).
	On(TriggerInitialized).Target(Idle).
	Done().
	State(Idle).
	On(TriggerMove).Target(Movement).
	On(TriggerShoot).Target(Shooting).
	On(TriggerCalc).Target(Calculation).
	On(TriggerStop).Target(Stopped).
	Done().
	State(Movement).
	On(TriggerMoved).Target(Idle).
	On(TriggerMoveLimit).Target(Shooting).
	Done().
	State(Shooting).
	On(TriggerFired).Target(Idle).
	Done().
	State(Calculation).
	On(TriggerCalcOK).Target(Idle).
	On(TriggerCalcFault).Target(Error).
	Done().
	State(Error).
	On(TriggerRecovered).Target(Idle).
	On(TriggerErrorLimit).Target(Stopped).
	Done().
	State(Stopped).
	Done())

// DefaultTable returns the edges the state machine resolves its outcomes through.
// The returned table is shared and must not be modified.
func DefaultTable() *TransitionTable {
	return defaultTable
}

func mustBuild(b *TableBuilder) *TransitionTable {
	table, err := b.Build()
	if err != nil {
		panic("agentcycle: invalid default table: " + err.Error())
	}
	return table
}
