// Package cli holds the line-oriented console front ends behind the tablefsm command.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/internal/presentation/tui"
	"golang.org/x/term"
)

// Console reads lines from an input stream and writes results to an output stream.
// Interactive consoles show prompts and help and survive engine errors;
// non-interactive ones (pipes, files) stop at the first error.
type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	errOut      io.Writer
	interactive bool
	sanitizer   input.Sanitizer
	logger      *slog.Logger
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) ConsoleOption {
	return func(c *Console) {
		c.interactive = interactive
	}
}

// WithSanitizer sets the input limits.
func WithSanitizer(s input.Sanitizer) ConsoleOption {
	return func(c *Console) {
		c.sanitizer = s
	}
}

// WithLogger sets the console logger.
func WithLogger(logger *slog.Logger) ConsoleOption {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConsole creates a console. It is interactive when both in and out are terminals.
func NewConsole(in io.Reader, out, errOut io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		errOut:      errOut,
		interactive: isTerminal(in) && isTerminal(out),
		sanitizer:   input.New(input.DefaultMaxSize),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.in.Buffer(make([]byte, 0, min(4096, c.sanitizer.MaxSize+1)), c.sanitizer.MaxSize+1)
	return c
}

// Interactive reports whether prompts and banners are shown.
func (c *Console) Interactive() bool {
	return c.interactive
}

// Banner prints the banner on interactive consoles.
func (c *Console) Banner(version string) {
	if c.interactive {
		tui.PrintBanner(c.out, version)
	}
}

// Markdown renders help text on interactive consoles.
func (c *Console) Markdown(md string) {
	if !c.interactive {
		return
	}
	rendered, err := tui.NewRenderer(0)(md)
	if err != nil {
		rendered = md
	}
	fmt.Fprint(c.out, rendered)
}

// readLine prompts (when interactive) and returns the next sanitized line.
// ok is false at end of input.
func (c *Console) readLine(label string) (line string, ok bool, err error) {
	if c.interactive {
		fmt.Fprint(c.out, tui.Prompt(c.out, label))
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			if err == bufio.ErrTooLong {
				return "", false, fmt.Errorf("%w: line longer than %d bytes", input.ErrInputTooLarge, c.sanitizer.MaxSize)
			}
			return "", false, err
		}
		return "", false, nil
	}
	line, err = c.sanitizer.Clean(c.in.Text())
	return line, true, err
}

// loop feeds every input line to handle until end of input, "quit" or "exit".
func (c *Console) loop(ctx context.Context, label string, handle func(line string) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok, err := c.readLine(label)
		if !ok {
			return err
		}
		switch strings.TrimSpace(line) {
		case "quit", "exit":
			return nil
		}
		if err == nil {
			err = handle(line)
		}
		if err != nil {
			if !c.interactive {
				return err
			}
			c.logger.Debug("line rejected", "err", err)
			fmt.Fprintln(c.errOut, tui.Failure(c.errOut, "Error: "+err.Error()))
		}
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
