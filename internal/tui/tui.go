// Package tui renders the agent cycle on a full-screen terminal and reads
// menu choices from the keyboard.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/felixgeelhaar/agentcycle"
)

const maxLogLines = 200

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText   = tcell.StyleDefault
	styleState  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDimmed = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var menu = []string{
	"1  status    show status and history",
	"2  move      transition to MOVEMENT",
	"3  shoot     transition to SHOOTING",
	"4  calc      transition to CALCULATION",
	"5  stop      transition to STOPPED",
	"q  quit      same as stop",
}

// Screen is a tcell-backed command source, reporter and transition log.
// It is driven from the state machine's goroutine only.
type Screen struct {
	screen  tcell.Screen
	status  agentcycle.Status
	history []agentcycle.HistoryEntry
	log     []string
	notice  string
}

// New initializes a terminal screen
func New() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen wraps an existing screen, initializing it
func NewWithScreen(screen tcell.Screen) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s := &Screen{screen: screen}
	s.draw()
	return s, nil
}

// Close restores the terminal
func (s *Screen) Close() {
	s.screen.Fini()
}

// Next waits for a key and returns its command token.
// A finalized screen yields the stop command.
func (s *Screen) Next() (string, error) {
	s.notice = "Choose an action"
	s.draw()

	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return agentcycle.CommandStop, nil
		case *tcell.EventResize:
			s.screen.Sync()
			s.draw()
		case *tcell.EventKey:
			tok := commandForKey(ev.Key(), ev.Rune())
			if tok == "" {
				continue
			}
			if !isCommand(tok) {
				s.notice = fmt.Sprintf("Invalid choice %q. Staying in IDLE.", tok)
			} else {
				s.notice = ""
			}
			s.draw()
			return tok, nil
		}
	}
}

// Report stores the snapshot and redraws
func (s *Screen) Report(status agentcycle.Status, history []agentcycle.HistoryEntry) {
	s.status = status
	s.history = history
	s.draw()
}

// Hook returns a transition hook that logs the transition and refreshes the
// status panel using the supplied accessor.
func (s *Screen) Hook(status func() agentcycle.Status) agentcycle.Hook {
	return func(from, to agentcycle.State, at time.Time) {
		if status != nil {
			s.status = status()
		}
		s.appendLog(fmt.Sprintf("%s  %-11s -> %s", at.Format("15:04:05.000"), from, to))
		s.draw()
	}
}

func (s *Screen) appendLog(line string) {
	s.log = append(s.log, line)
	if len(s.log) > maxLogLines {
		s.log = append(s.log[:0], s.log[len(s.log)-maxLogLines:]...)
	}
}

// commandForKey maps a key press to a token. Keys that carry no choice
// return the empty string.
func commandForKey(key tcell.Key, r rune) string {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return agentcycle.CommandStop
	case tcell.KeyRune:
	default:
		return ""
	}

	switch r {
	case '1':
		return agentcycle.CommandStatus
	case '2':
		return agentcycle.CommandMove
	case '3':
		return agentcycle.CommandShoot
	case '4':
		return agentcycle.CommandCalc
	case '5', 'q':
		return agentcycle.CommandStop
	case ' ':
		return ""
	default:
		return string(r)
	}
}

func isCommand(tok string) bool {
	for _, c := range agentcycle.Commands {
		if c == tok {
			return true
		}
	}
	return false
}

type line struct {
	text  string
	style tcell.Style
}

// layout composes the screen content top to bottom for the given height
func (s *Screen) layout(height int) []line {
	lines := []line{{"agentcycle", styleTitle}, {"", styleText}}

	for _, m := range menu {
		lines = append(lines, line{m, styleText})
	}
	lines = append(lines, line{"", styleText})

	stateStyle := styleState
	if s.status.State == agentcycle.Error || s.status.State == agentcycle.Stopped {
		stateStyle = styleAlert
	}
	lines = append(lines,
		line{fmt.Sprintf("State:     %s", s.status.State), stateStyle},
		line{fmt.Sprintf("Delay:     %d ms", s.status.Delay.Milliseconds()), styleText},
		line{fmt.Sprintf("Moves:     %d/%d", s.status.MoveCount, agentcycle.MoveLimit), styleText},
		line{fmt.Sprintf("Errors:    %d/%d", s.status.ErrorCount, agentcycle.ErrorLimit), styleText},
		line{fmt.Sprintf("History:   %d entries", len(s.history)), styleText},
		line{"", styleText},
	)

	if s.notice != "" {
		lines = append(lines, line{s.notice, styleTitle}, line{"", styleText})
	}

	// Remaining rows show the newest log lines
	room := height - len(lines)
	if room > 0 {
		start := 0
		if len(s.log) > room {
			start = len(s.log) - room
		}
		for _, l := range s.log[start:] {
			lines = append(lines, line{l, styleDimmed})
		}
	}
	return lines
}

func (s *Screen) draw() {
	width, height := s.screen.Size()
	s.screen.Clear()
	for y, l := range s.layout(height) {
		if y >= height {
			break
		}
		x := 0
		for _, r := range l.text {
			if x >= width {
				break
			}
			s.screen.SetContent(x, y, r, nil, l.style)
			x++
		}
	}
	s.screen.Show()
}
