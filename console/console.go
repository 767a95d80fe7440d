// Package console provides a line-oriented terminal presentation for the
// agent cycle: a menu-driven command source, a status reporter and a
// transition narrator.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/agentcycle"
)

// menuChoices maps the numbered menu entries to command tokens
var menuChoices = map[string]string{
	"1": agentcycle.CommandStatus,
	"2": agentcycle.CommandMove,
	"3": agentcycle.CommandShoot,
	"4": agentcycle.CommandCalc,
	"5": agentcycle.CommandStop,
}

var menuLabels = []string{
	"Show status and state history",
	"Move (transition to MOVEMENT)",
	"Shoot (transition to SHOOTING)",
	"Calculate (transition to CALCULATION)",
	"Stop (transition to STOPPED)",
}

// Normalize maps a menu number or command name to its token.
// Unrecognized input is returned trimmed and lower-cased.
func Normalize(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ""
	}
	choice := strings.ToLower(fields[0])
	if tok, ok := menuChoices[choice]; ok {
		return tok
	}
	return choice
}

// LineSource reads one command per line, printing the menu before each read.
// End of input is reported as the stop command so a run can finish, and so
// is every read after a read or write error.
type LineSource struct {
	reader *bufio.Reader
	out    io.Writer
	failed bool
}

// NewLineSource creates a LineSource reading from in and prompting on out
func NewLineSource(in io.Reader, out io.Writer) *LineSource {
	return &LineSource{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Next prompts and returns the next command token
func (s *LineSource) Next() (string, error) {
	if s.failed {
		return agentcycle.CommandStop, nil
	}

	tok, err := s.next()
	if err != nil {
		s.failed = true
		return "", err
	}
	return tok, nil
}

func (s *LineSource) next() (string, error) {
	if err := s.prompt(); err != nil {
		return "", err
	}

	text, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read command: %w", err)
		}
		if text == "" {
			return agentcycle.CommandStop, nil
		}
	}

	tok := Normalize(text)
	if !isCommand(tok) {
		if _, err := fmt.Fprintln(s.out, "Invalid choice. Staying in IDLE."); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}
	return tok, nil
}

func (s *LineSource) prompt() error {
	var b strings.Builder
	b.WriteString("\n--- IDLE: choose an action ---\n")
	for i, label := range menuLabels {
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	b.WriteString("Enter your choice: ")

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

func isCommand(tok string) bool {
	for _, c := range agentcycle.Commands {
		if c == tok {
			return true
		}
	}
	return false
}

// TextReporter prints status snapshots and history as plain text
type TextReporter struct {
	out io.Writer
	err error
}

// NewTextReporter creates a TextReporter writing to out
func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{out: out}
}

// Report writes the status block followed by the history block
func (r *TextReporter) Report(status agentcycle.Status, history []agentcycle.HistoryEntry) {
	var b strings.Builder
	writeStatus(&b, status)
	writeHistory(&b, history)
	r.write(b.String())
}

// Err returns the first write error, if any
func (r *TextReporter) Err() error {
	return r.err
}

func (r *TextReporter) write(s string) {
	if r.err != nil {
		return
	}
	if _, err := io.WriteString(r.out, s); err != nil {
		r.err = fmt.Errorf("write report: %w", err)
	}
}

func writeStatus(b *strings.Builder, status agentcycle.Status) {
	b.WriteString("--- FSM Status ---\n")
	fmt.Fprintf(b, "Current State: %s\n", status.State)
	fmt.Fprintf(b, "Last Heartbeat: %s\n", formatStamp(status.LastHeartbeat))
	fmt.Fprintf(b, "Delay: %d ms\n", status.Delay.Milliseconds())
	fmt.Fprintf(b, "Error Count: %d\n", status.ErrorCount)
	fmt.Fprintf(b, "Move Count: %d\n", status.MoveCount)
	b.WriteString("------------------\n")
}

func writeHistory(b *strings.Builder, history []agentcycle.HistoryEntry) {
	b.WriteString("--- State History ---\n")
	if len(history) == 0 {
		b.WriteString("No history available.\n")
	}
	for _, e := range history {
		fmt.Fprintf(b, "State: %s, Time: %s\n", e.State, formatStamp(e.At))
	}
	b.WriteString("---------------------\n")
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d ms", t.UnixMilli())
}

// Narrator prints one line per transition, the way an operator console
// would describe what the agent is doing.
type Narrator struct {
	out    io.Writer
	status func() agentcycle.Status
	err    error
}

// NewNarrator creates a Narrator. status may be nil; when set, lines that
// mention a counter read it after the transition.
func NewNarrator(out io.Writer, status func() agentcycle.Status) *Narrator {
	return &Narrator{out: out, status: status}
}

// Hook returns the narrator as a transition hook
func (n *Narrator) Hook() agentcycle.Hook {
	return func(from, to agentcycle.State, at time.Time) {
		if n.err != nil {
			return
		}
		if _, err := io.WriteString(n.out, n.line(from, to)+"\n"); err != nil {
			n.err = fmt.Errorf("write narration: %w", err)
		}
	}
}

// Err returns the first write error, if any
func (n *Narrator) Err() error {
	return n.err
}

func (n *Narrator) line(from, to agentcycle.State) string {
	var st agentcycle.Status
	if n.status != nil {
		st = n.status()
	}

	switch {
	case to == agentcycle.Init:
		return "FSM starting..."
	case from == agentcycle.Init && to == agentcycle.Idle:
		return "System initialized. Entering IDLE state."
	case from == agentcycle.Movement && to == agentcycle.Shooting:
		return fmt.Sprintf("Moved %d times. Transitioning to SHOOTING.", agentcycle.MoveLimit)
	case from == agentcycle.Movement:
		return fmt.Sprintf("Moving... move count: %d. Transitioning to IDLE.", st.MoveCount)
	case from == agentcycle.Shooting:
		return "Shooting... move count reset. Transitioning to IDLE."
	case from == agentcycle.Calculation && to == agentcycle.Error:
		return "Calculating... move count is 0. Transitioning to ERROR."
	case from == agentcycle.Calculation:
		return "Calculating... move count is above 0. Transitioning to IDLE."
	case from == agentcycle.Error && to == agentcycle.Stopped:
		return fmt.Sprintf("Handling error (count %d). Limit reached, transitioning to STOPPED.", st.ErrorCount)
	case from == agentcycle.Error:
		return fmt.Sprintf("Handling error (count %d). Transitioning to IDLE.", st.ErrorCount)
	default:
		return fmt.Sprintf("%s -> %s", from, to)
	}
}

// StartupReport returns a hook that renders a status report once Init has
// handed over to Idle. snapshot is read at that moment.
func StartupReport(r agentcycle.Reporter, snapshot func() (agentcycle.Status, []agentcycle.HistoryEntry)) agentcycle.Hook {
	return func(from, to agentcycle.State, at time.Time) {
		if from != agentcycle.Init || to != agentcycle.Idle {
			return
		}
		r.Report(snapshot())
	}
}
