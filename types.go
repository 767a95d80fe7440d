package agentcycle

import (
	"time"

	"github.com/felixgeelhaar/agentcycle/internal/ir"
)

// Re-export types from internal/ir for public API
type (
	// State identifies a node of the agent cycle
	State = ir.State
	// Trigger names the outcome of a state action
	Trigger = ir.Trigger
	// HistoryEntry records one transition
	HistoryEntry = ir.HistoryEntry
	// Edge is a single {source, trigger} -> target transition
	Edge = ir.Edge
	// TransitionTable holds the legal edges of the cycle
	TransitionTable = ir.TransitionTable
)

// Re-export constants
const (
	Init        = ir.StateInit
	Idle        = ir.StateIdle
	Movement    = ir.StateMovement
	Shooting    = ir.StateShooting
	Calculation = ir.StateCalculation
	Error       = ir.StateError
	Stopped     = ir.StateStopped

	TriggerInitialized = ir.TriggerInitialized
	TriggerMove        = ir.TriggerMove
	TriggerShoot       = ir.TriggerShoot
	TriggerCalc        = ir.TriggerCalc
	TriggerStop        = ir.TriggerStop
	TriggerMoved       = ir.TriggerMoved
	TriggerMoveLimit   = ir.TriggerMoveLimit
	TriggerFired       = ir.TriggerFired
	TriggerCalcOK      = ir.TriggerCalcOK
	TriggerCalcFault   = ir.TriggerCalcFault
	TriggerRecovered   = ir.TriggerRecovered
	TriggerErrorLimit  = ir.TriggerErrorLimit
)

// Command tokens accepted while Idle
const (
	CommandStatus = "status"
	CommandMove   = "move"
	CommandShoot  = "shoot"
	CommandCalc   = "calc"
	CommandStop   = "stop"
)

// Commands lists the recognized Idle tokens in menu order
var Commands = []string{CommandStatus, CommandMove, CommandShoot, CommandCalc, CommandStop}

// Timing and threshold constants of the cycle
const (
	// RunDelay replaces the initial delay once Init has been processed
	RunDelay = 1000 * time.Millisecond
	// FallbackInterval is slept between ticks when the delay is zero
	FallbackInterval = 100 * time.Millisecond
	// MoveLimit is the move count that forces a shot
	MoveLimit = 3
	// ErrorLimit is the error count that stops the machine
	ErrorLimit = 3
)

// Status is a point-in-time snapshot of the machine's counters
type Status struct {
	State         State
	LastHeartbeat time.Time
	Delay         time.Duration
	ErrorCount    int
	MoveCount     int
}

// Clock supplies the current time. Implementations must be monotonic non-decreasing.
type Clock interface {
	Now() time.Time
}

// Sleeper suspends the run loop between ticks
type Sleeper interface {
	Sleep(d time.Duration)
}

// CommandSource supplies one command token per Idle tick.
// A returned error is treated as invalid input.
type CommandSource interface {
	Next() (string, error)
}

// Reporter renders a status snapshot and the history on demand
type Reporter interface {
	Report(status Status, history []HistoryEntry)
}

// Hook observes a transition after it has been recorded.
// from equals to when a state is re-entered.
type Hook func(from, to State, at time.Time)
