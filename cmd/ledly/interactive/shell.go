// Package interactive provides the interactive command-line interface
// for ledly.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Executor runs one command line split into fields and reports whether the
// shell should exit.
type Executor interface {
	ExecuteLine(ctx context.Context, fields []string) (bool, error)
}

// Shell is a readline-driven command loop.
type Shell struct {
	exec Executor
	rl   *readline.Instance
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("on"),
	readline.PcItem("off"),
	readline.PcItem("color"),
	readline.PcItem("brightness"),
	readline.PcItem("pulsate",
		readline.PcItem("red"),
		readline.PcItem("green"),
		readline.PcItem("blue"),
	),
	readline.PcItem("breathe"),
	readline.PcItem("stop"),
	readline.PcItem("devices"),
	readline.PcItem("use"),
	readline.PcItem("chars",
		readline.PcItem("write"),
		readline.PcItem("write-without-response"),
		readline.PcItem("notify"),
		readline.PcItem("read"),
	),
	readline.PcItem("char"),
	readline.PcItem("alias"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

// New creates a shell. historyFile may be empty.
func New(exec Executor, historyFile string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ledly> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{exec: exec, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	fmt.Fprintln(s.rl.Stdout(), "ledly interactive shell (type 'help' for commands)")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		quit, err := s.exec.ExecuteLine(ctx, fields)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}
	}
}
