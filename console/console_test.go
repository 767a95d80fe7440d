package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/agentcycle"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", agentcycle.CommandStatus},
		{"2", agentcycle.CommandMove},
		{"3", agentcycle.CommandShoot},
		{"4", agentcycle.CommandCalc},
		{"5", agentcycle.CommandStop},
		{"  MOVE  ", agentcycle.CommandMove},
		{"calc now", agentcycle.CommandCalc},
		{"6", "6"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLineSource_Next(t *testing.T) {
	var out bytes.Buffer
	src := NewLineSource(strings.NewReader("2\nbogus\nshoot\n"), &out)

	want := []string{agentcycle.CommandMove, "bogus", agentcycle.CommandShoot, agentcycle.CommandStop}
	for i, w := range want {
		got, err := src.Next()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: expected %q, got %q", i, w, got)
		}
	}

	text := out.String()
	if strings.Count(text, "Enter your choice:") != len(want) {
		t.Errorf("expected a prompt per read, got:\n%s", text)
	}
	if !strings.Contains(text, "5. Stop (transition to STOPPED)") {
		t.Errorf("expected menu entries in prompt, got:\n%s", text)
	}
	if strings.Count(text, "Invalid choice") != 1 {
		t.Errorf("expected one invalid choice notice, got:\n%s", text)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLineSource_ReadError(t *testing.T) {
	src := NewLineSource(failingReader{}, &bytes.Buffer{})

	_, err := src.Next()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read command:") {
		t.Errorf("expected wrapped read error, got %v", err)
	}

	// The reader is not retried once it has failed
	got, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error after failure: %v", err)
	}
	if got != agentcycle.CommandStop {
		t.Errorf("expected %q after failure, got %q", agentcycle.CommandStop, got)
	}
}

func TestLineSource_OversizedLine(t *testing.T) {
	input := strings.Repeat("x", 70*1024) + "\n5\n"
	src := NewLineSource(strings.NewReader(input), &bytes.Buffer{})

	got, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 70*1024 {
		t.Errorf("expected the long line as one token, got %d bytes", len(got))
	}

	got, err = src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != agentcycle.CommandStop {
		t.Errorf("expected %q, got %q", agentcycle.CommandStop, got)
	}
}

func TestLineSource_OversizedLineRunStops(t *testing.T) {
	input := strings.Repeat("x", 70*1024) + "\n5\n"
	clock := agentcycle.NewManualClock(time.Unix(0, 0))
	m := agentcycle.New(
		agentcycle.WithClock(clock),
		agentcycle.WithCommandSource(NewLineSource(strings.NewReader(input), &bytes.Buffer{})),
	)

	m.Start()
	for i := 0; i < 50 && !m.Done(); i++ {
		m.Advance()
		clock.Advance(m.Delay())
	}

	if m.State() != agentcycle.Stopped {
		t.Errorf("expected STOPPED, got %s", m.State())
	}
}

func TestLineSource_UnterminatedLastLine(t *testing.T) {
	src := NewLineSource(strings.NewReader("2"), &bytes.Buffer{})

	want := []string{agentcycle.CommandMove, agentcycle.CommandStop}
	for i, w := range want {
		got, err := src.Next()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: expected %q, got %q", i, w, got)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestLineSource_PromptError(t *testing.T) {
	src := NewLineSource(strings.NewReader("1\n"), failingWriter{})

	if _, err := src.Next(); err == nil {
		t.Fatal("expected prompt write error")
	}
	if got, _ := src.Next(); got != agentcycle.CommandStop {
		t.Errorf("expected %q after failure, got %q", agentcycle.CommandStop, got)
	}
}

func TestTextReporter_Report(t *testing.T) {
	var out bytes.Buffer
	r := NewTextReporter(&out)

	at := time.UnixMilli(1700000000123)
	r.Report(agentcycle.Status{
		State:         agentcycle.Idle,
		LastHeartbeat: at,
		Delay:         time.Second,
		ErrorCount:    1,
		MoveCount:     2,
	}, []agentcycle.HistoryEntry{
		{State: agentcycle.Init, At: at},
		{State: agentcycle.Idle, At: at},
	})

	text := out.String()
	for _, want := range []string{
		"Current State: IDLE",
		"Last Heartbeat: 1700000000123 ms",
		"Delay: 1000 ms",
		"Error Count: 1",
		"Move Count: 2",
		"State: INIT, Time: 1700000000123 ms",
		"State: IDLE, Time: 1700000000123 ms",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in report, got:\n%s", want, text)
		}
	}
	if r.Err() != nil {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestTextReporter_EmptyHistory(t *testing.T) {
	var out bytes.Buffer
	NewTextReporter(&out).Report(agentcycle.Status{}, nil)

	if !strings.Contains(out.String(), "No history available.") {
		t.Errorf("expected empty history notice, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Last Heartbeat: -") {
		t.Errorf("expected placeholder for zero heartbeat, got:\n%s", out.String())
	}
}

func TestTextReporter_WriteError(t *testing.T) {
	r := NewTextReporter(failingWriter{})
	r.Report(agentcycle.Status{}, nil)

	if r.Err() == nil {
		t.Fatal("expected write error to be kept")
	}
}

func TestNarrator_RunTranscript(t *testing.T) {
	var out bytes.Buffer
	clock := agentcycle.NewManualClock(time.Unix(0, 0))
	src := NewLineSource(strings.NewReader("2\n2\n2\n3\n4\n5\n"), &bytes.Buffer{})

	var m *agentcycle.StateMachine
	narrator := NewNarrator(&out, func() agentcycle.Status { return m.Status() })
	m = agentcycle.New(
		agentcycle.WithClock(clock),
		agentcycle.WithCommandSource(src),
		agentcycle.WithHook(narrator.Hook()),
	)

	m.RunUntilStopped()

	text := out.String()
	for _, want := range []string{
		"FSM starting...",
		"System initialized. Entering IDLE state.",
		"Moving... move count: 1. Transitioning to IDLE.",
		"Moving... move count: 2. Transitioning to IDLE.",
		"Moved 3 times. Transitioning to SHOOTING.",
		"Shooting... move count reset. Transitioning to IDLE.",
		"Calculating... move count is 0. Transitioning to ERROR.",
		"Handling error (count 1). Transitioning to IDLE.",
		"IDLE -> STOPPED",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in transcript, got:\n%s", want, text)
		}
	}
	if m.State() != agentcycle.Stopped {
		t.Errorf("expected STOPPED, got %s", m.State())
	}
}

func TestNarrator_WriteError(t *testing.T) {
	n := NewNarrator(failingWriter{}, nil)
	hook := n.Hook()

	hook(agentcycle.Init, agentcycle.Init, time.Unix(0, 0))
	hook(agentcycle.Init, agentcycle.Idle, time.Unix(1, 0))

	if n.Err() == nil {
		t.Fatal("expected write error to be kept")
	}
	if !strings.Contains(n.Err().Error(), "write narration:") {
		t.Errorf("expected wrapped write error, got %v", n.Err())
	}
}

func TestStartupReport(t *testing.T) {
	var out bytes.Buffer
	clock := agentcycle.NewManualClock(time.UnixMilli(5000))
	src := NewLineSource(strings.NewReader("5\n"), &bytes.Buffer{})

	var m *agentcycle.StateMachine
	m = agentcycle.New(
		agentcycle.WithClock(clock),
		agentcycle.WithCommandSource(src),
		agentcycle.WithHook(StartupReport(NewTextReporter(&out), func() (agentcycle.Status, []agentcycle.HistoryEntry) {
			return m.Status(), m.History()
		})),
	)

	m.RunUntilStopped()

	text := out.String()
	if strings.Count(text, "--- FSM Status ---") != 1 {
		t.Fatalf("expected exactly one startup report, got:\n%s", text)
	}
	for _, want := range []string{
		"Current State: IDLE",
		"Delay: 1000 ms",
		"State: INIT, Time: 5000 ms",
		"State: IDLE, Time: 5000 ms",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in startup report, got:\n%s", want, text)
		}
	}
}
