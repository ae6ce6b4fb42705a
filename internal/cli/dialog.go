package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tablefsm/internal/presentation/tui"
	"github.com/aretw0/tablefsm/pkg/dialog"
	"github.com/aretw0/tablefsm/pkg/fsm"
)

// consolePrompter answers dialog questions from the console input.
type consolePrompter struct {
	c *Console
}

func (p consolePrompter) Ask(question string) (string, error) {
	fmt.Fprintln(p.c.out, question)
	line, ok, err := p.c.readLine("")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no answer to %q: %w", question, io.ErrUnexpectedEOF)
	}
	return line, nil
}

func (p consolePrompter) Say(message string) error {
	_, err := fmt.Fprintln(p.c.out, message)
	return err
}

// RunDialog plays script, asking questions on the console.
// An empty script plays dialog.DefaultScript.
func (c *Console) RunDialog(ctx context.Context, script []string, opts ...fsm.Option) (*dialog.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(script) == 0 {
		script = dialog.DefaultScript
	}
	c.Markdown(tui.DialogHelp)
	return dialog.Run(consolePrompter{c: c}, script, opts...)
}
