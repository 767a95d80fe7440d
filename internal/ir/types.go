package ir

import "time"

// State identifies a node of the agent cycle
type State int

const (
	// StateInit is the only initial state
	StateInit State = iota
	// StateIdle waits for a command
	StateIdle
	// StateMovement counts one move
	StateMovement
	// StateShooting resets the move counter
	StateShooting
	// StateCalculation checks the move counter
	StateCalculation
	// StateError counts one failure
	StateError
	// StateStopped is the terminal state
	StateStopped
)

// States lists every member of the enumeration in declaration order
var States = []State{
	StateInit,
	StateIdle,
	StateMovement,
	StateShooting,
	StateCalculation,
	StateError,
	StateStopped,
}

// String returns the upper-case name of the state
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateIdle:
		return "IDLE"
	case StateMovement:
		return "MOVEMENT"
	case StateShooting:
		return "SHOOTING"
	case StateCalculation:
		return "CALCULATION"
	case StateError:
		return "ERROR"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is a member of the enumeration
func (s State) Valid() bool {
	return s >= StateInit && s <= StateStopped
}

// Terminal reports whether s ends a run
func (s State) Terminal() bool {
	return s == StateStopped
}

// Trigger names the outcome of a state action that selects an edge
type Trigger string

// Triggers produced by the per-state actions
const (
	TriggerInitialized Trigger = "initialized"
	TriggerMove        Trigger = "move"
	TriggerShoot       Trigger = "shoot"
	TriggerCalc        Trigger = "calc"
	TriggerStop        Trigger = "stop"
	TriggerMoved       Trigger = "moved"
	TriggerMoveLimit   Trigger = "moveLimit"
	TriggerFired       Trigger = "fired"
	TriggerCalcOK      Trigger = "calcOk"
	TriggerCalcFault   Trigger = "calcFault"
	TriggerRecovered   Trigger = "recovered"
	TriggerErrorLimit  Trigger = "errorLimit"
)

// HistoryEntry records one transition
type HistoryEntry struct {
	State State
	At    time.Time
}
