package agentcycle

import (
	"log/slog"
	"time"
)

// Option configures a StateMachine at construction
type Option func(*StateMachine)

// WithInitialDelay sets the delay used until Init has been processed
func WithInitialDelay(d time.Duration) Option {
	return func(m *StateMachine) {
		m.delay = d
	}
}

// WithClock replaces the system clock. If c also implements Sleeper it
// becomes the run loop's sleeper unless WithSleeper is given. A nil clock is
// ignored.
func WithClock(c Clock) Option {
	return func(m *StateMachine) {
		if c == nil {
			return
		}
		m.clock = c
		if s, ok := c.(Sleeper); ok && !m.customSleeper {
			m.sleeper = s
		}
	}
}

// WithSleeper replaces the sleeper used between run loop iterations.
// A nil sleeper is ignored.
func WithSleeper(s Sleeper) Option {
	return func(m *StateMachine) {
		if s == nil {
			return
		}
		m.sleeper = s
		m.customSleeper = true
	}
}

// WithCommandSource sets where Idle reads its commands from
func WithCommandSource(src CommandSource) Option {
	return func(m *StateMachine) {
		m.commands = src
	}
}

// WithReporter sets the renderer for the status command
func WithReporter(r Reporter) Option {
	return func(m *StateMachine) {
		m.reporter = r
	}
}

// WithHook registers a transition observer. Hooks run in registration order.
func WithHook(h Hook) Option {
	return func(m *StateMachine) {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(m *StateMachine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHistoryLimit keeps only the newest n history entries. Zero means unbounded.
func WithHistoryLimit(n int) Option {
	return func(m *StateMachine) {
		if n > 0 {
			m.history.limit = n
		}
	}
}
