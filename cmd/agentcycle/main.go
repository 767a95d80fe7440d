// Package main runs the agent cycle interactively until it stops.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/agentcycle"
	"github.com/felixgeelhaar/agentcycle/console"
	"github.com/felixgeelhaar/agentcycle/internal/audio"
	"github.com/felixgeelhaar/agentcycle/internal/config"
	"github.com/felixgeelhaar/agentcycle/internal/tui"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	if err := run(cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run(cfg config.Config, in io.Reader, out, errOut io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	opts := []agentcycle.Option{
		agentcycle.WithInitialDelay(cfg.InitialDelay),
		agentcycle.WithLogger(logger),
	}
	if cfg.HistoryLimit > 0 {
		opts = append(opts, agentcycle.WithHistoryLimit(cfg.HistoryLimit))
	}

	if cfg.Audio {
		player, err := audio.NewPlayer()
		if err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer player.Close()
			opts = append(opts, agentcycle.WithHook(player.Hook()))
		}
	}

	var m *agentcycle.StateMachine
	status := func() agentcycle.Status { return m.Status() }

	switch cfg.UI {
	case config.UITUI:
		screen, err := tui.New()
		if err != nil {
			return err
		}
		defer screen.Close()
		opts = append(opts,
			agentcycle.WithCommandSource(screen),
			agentcycle.WithReporter(screen),
			agentcycle.WithHook(screen.Hook(status)))
	default:
		reporter := console.NewTextReporter(out)
		narrator := console.NewNarrator(out, status)
		opts = append(opts,
			agentcycle.WithCommandSource(console.NewLineSource(in, out)),
			agentcycle.WithReporter(reporter),
			agentcycle.WithHook(narrator.Hook()),
			agentcycle.WithHook(console.StartupReport(reporter, func() (agentcycle.Status, []agentcycle.HistoryEntry) {
				return m.Status(), m.History()
			})))
		defer func() {
			if err := reporter.Err(); err != nil {
				logger.Warn("status output failed", "error", err)
			}
			if err := narrator.Err(); err != nil {
				logger.Warn("narration output failed", "error", err)
			}
		}()
	}

	m = agentcycle.New(opts...)
	m.RunUntilStopped()

	if cfg.UI != config.UITUI {
		if _, err := fmt.Fprintln(out, "System stopped, shutting down... History cleared."); err != nil {
			return fmt.Errorf("write shutdown notice: %w", err)
		}
	}
	return nil
}
