// Package export provides exporters for converting the agent cycle's
// transition table to external formats like XState JSON and Mermaid.
package export

import (
	"encoding/json"
	"strings"

	"github.com/felixgeelhaar/agentcycle/internal/ir"
)

// XStateExporter converts a TransitionTable to XState-compatible JSON format.
// The exported JSON can be used with:
// - XState Visualizer (stately.ai/viz)
// - XState v5 compatible tools
type XStateExporter struct {
	table *ir.TransitionTable
}

// NewXStateExporter creates a new exporter for the given transition table
func NewXStateExporter(table *ir.TransitionTable) *XStateExporter {
	return &XStateExporter{table: table}
}

// XStateMachine represents an XState machine configuration
type XStateMachine struct {
	ID      string                `json:"id"`
	Initial string                `json:"initial,omitempty"`
	States  map[string]XStateNode `json:"states"`
}

// XStateNode represents a single state in XState format
type XStateNode struct {
	Type string                      `json:"type,omitempty"` // "final" for the terminal state
	On   map[string]XStateTransition `json:"on,omitempty"`
}

// XStateTransition represents a transition in XState format
type XStateTransition struct {
	Target string `json:"target,omitempty"`
}

// StateKey returns the key a state is exported under
func StateKey(s ir.State) string {
	return strings.ToLower(s.String())
}

// Export converts the transition table to XState JSON format
func (e *XStateExporter) Export() (*XStateMachine, error) {
	machine := &XStateMachine{
		ID:      e.table.ID,
		Initial: StateKey(e.table.Initial),
		States:  make(map[string]XStateNode, len(e.table.States)),
	}

	for s, sc := range e.table.States {
		node := XStateNode{}
		if s.Terminal() {
			node.Type = "final"
		}
		for _, tr := range sc.Transitions {
			if node.On == nil {
				node.On = make(map[string]XStateTransition)
			}
			node.On[string(tr.Trigger)] = XStateTransition{Target: StateKey(tr.Target)}
		}
		machine.States[StateKey(s)] = node
	}

	return machine, nil
}

// ExportJSON returns the table as a JSON string
func (e *XStateExporter) ExportJSON() (string, error) {
	machine, err := e.Export()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(machine)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ExportJSONIndent returns the table as a formatted JSON string
func (e *XStateExporter) ExportJSONIndent(prefix, indent string) (string, error) {
	machine, err := e.Export()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(machine, prefix, indent)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Mermaid renders the table as a Mermaid stateDiagram-v2 document.
// Edges appear in source state order so the output is stable.
func (e *XStateExporter) Mermaid() string {
	var b strings.Builder
	b.WriteString("stateDiagram-v2\n")
	b.WriteString("    [*] --> " + StateKey(e.table.Initial) + "\n")
	for _, edge := range e.table.Edges() {
		b.WriteString("    " + StateKey(edge.Source) + " --> " + StateKey(edge.Target) + " : " + string(edge.Trigger) + "\n")
	}
	for _, s := range ir.States {
		if _, ok := e.table.States[s]; ok && s.Terminal() {
			b.WriteString("    " + StateKey(s) + " --> [*]\n")
		}
	}
	return b.String()
}
