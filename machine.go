package agentcycle

import (
	"io"
	"log/slog"
	"time"
)

// StateMachine runs the agent cycle. It is single-owner and not safe for
// concurrent use.
type StateMachine struct {
	table         *TransitionTable
	current       State
	delay         time.Duration
	lastHeartbeat time.Time
	errorCount    int
	moveCount     int
	history       historyLog

	clock         Clock
	sleeper       Sleeper
	customSleeper bool
	commands      CommandSource
	reporter      Reporter
	hooks         []Hook
	logger        *slog.Logger
}

// New creates a state machine in Init with an empty history.
// Without options the delay is zero, time comes from the system clock, and
// Idle reads no commands.
func New(opts ...Option) *StateMachine {
	m := &StateMachine{
		table:   DefaultTable(),
		current: Init,
		clock:   SystemClock{},
		sleeper: SystemClock{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.history.reset()
	return m
}

// State returns the current state
func (m *StateMachine) State() State {
	return m.current
}

// Delay returns the minimum spacing between ticks
func (m *StateMachine) Delay() time.Duration {
	return m.delay
}

// SetDelay overrides the minimum spacing between ticks
func (m *StateMachine) SetDelay(d time.Duration) {
	m.delay = d
}

// ErrorCount returns how many times Error has been processed
func (m *StateMachine) ErrorCount() int {
	return m.errorCount
}

// MoveCount returns the moves since the last shot
func (m *StateMachine) MoveCount() int {
	return m.moveCount
}

// LastHeartbeat returns the time of the last transition or tick
func (m *StateMachine) LastHeartbeat() time.Time {
	return m.lastHeartbeat
}

// History returns a copy of the transition record
func (m *StateMachine) History() []HistoryEntry {
	return m.history.snapshot()
}

// Status returns a snapshot of the machine's counters
func (m *StateMachine) Status() Status {
	return Status{
		State:         m.current,
		LastHeartbeat: m.lastHeartbeat,
		Delay:         m.delay,
		ErrorCount:    m.errorCount,
		MoveCount:     m.moveCount,
	}
}

// Done returns true once the machine has reached the terminal state
func (m *StateMachine) Done() bool {
	return m.current.Terminal()
}

// TransitionTo moves to s unconditionally, stamps the heartbeat and records
// the entry in the history.
func (m *StateMachine) TransitionTo(s State) {
	from := m.current
	m.current = s
	m.lastHeartbeat = m.clock.Now()
	m.history.append(HistoryEntry{State: s, At: m.lastHeartbeat})

	m.logger.Debug("transition", "from", from, "to", s)
	for _, h := range m.hooks {
		h(from, s, m.lastHeartbeat)
	}
}

// Start forces the machine into Init, recording the entry
func (m *StateMachine) Start() {
	m.TransitionTo(Init)
}

// Advance performs one tick. It returns false without touching any state
// when the delay since the last heartbeat has not elapsed yet.
func (m *StateMachine) Advance() bool {
	if m.current != Init && m.clock.Now().Sub(m.lastHeartbeat) < m.delay {
		return false
	}

	switch m.current {
	case Init:
		m.delay = RunDelay
		m.fire(TriggerInitialized)
	case Idle:
		m.processCommand()
	case Movement:
		m.moveCount++
		if m.moveCount >= MoveLimit {
			m.fire(TriggerMoveLimit)
		} else {
			m.fire(TriggerMoved)
		}
	case Shooting:
		m.moveCount = 0
		m.fire(TriggerFired)
	case Calculation:
		if m.moveCount == 0 {
			m.fire(TriggerCalcFault)
		} else {
			m.fire(TriggerCalcOK)
		}
	case Error:
		m.errorCount++
		m.logger.Warn("handling error state", "errorCount", m.errorCount)
		if m.errorCount >= ErrorLimit {
			m.fire(TriggerErrorLimit)
		} else {
			m.fire(TriggerRecovered)
		}
	case Stopped:
		// The run loop finalizes
	default:
		m.logger.Warn("unrecognized state", "state", int(m.current))
		m.TransitionTo(Error)
	}

	if m.current != Stopped {
		m.lastHeartbeat = m.clock.Now()
	}
	return true
}

// RunUntilStopped enters Init and ticks until Stopped, sleeping the delay
// (or FallbackInterval when the delay is zero) between ticks, then calls
// Shutdown.
func (m *StateMachine) RunUntilStopped() {
	m.logger.Info("state machine started")
	m.Start()

	for m.current != Stopped {
		m.Advance()
		if m.delay > 0 {
			m.sleeper.Sleep(m.delay)
		} else {
			m.sleeper.Sleep(FallbackInterval)
		}
	}
	m.Shutdown()
}

// Shutdown clears the history. State and counters are left as they are.
func (m *StateMachine) Shutdown() {
	m.history.reset()
	m.logger.Info("state machine stopped",
		"errorCount", m.errorCount,
		"moveCount", m.moveCount)
}

// fire follows the edge for trigger out of the current state
func (m *StateMachine) fire(trigger Trigger) {
	target, ok := m.table.Target(m.current, trigger)
	if !ok {
		m.logger.Warn("no edge for trigger", "state", m.current, "trigger", trigger)
		target = Error
	}
	m.TransitionTo(target)
}

// processCommand reads one token and either reports or follows its edge.
// Unknown tokens leave the machine in Idle.
func (m *StateMachine) processCommand() {
	if m.commands == nil {
		return
	}

	cmd, err := m.commands.Next()
	if err != nil {
		m.logger.Warn("reading command failed", "error", err)
		return
	}

	switch cmd {
	case CommandStatus:
		if m.reporter != nil {
			m.reporter.Report(m.Status(), m.History())
		}
	case CommandMove:
		m.fire(TriggerMove)
	case CommandShoot:
		m.fire(TriggerShoot)
	case CommandCalc:
		m.fire(TriggerCalc)
	case CommandStop:
		m.fire(TriggerStop)
	default:
		m.logger.Warn("invalid command, staying idle", "command", cmd)
	}
}
