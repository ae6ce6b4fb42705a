package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/tablefsm/internal/presentation/tui"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
)

// Evaluator feeds one line to an RPN machine and returns what it emitted.
type Evaluator func(ctx context.Context, line string) ([]int64, []string, error)

// LocalEvaluator keeps one evaluator in memory for the whole console run.
func LocalEvaluator(opts ...fsm.Option) Evaluator {
	m := rpn.New(opts...)
	return func(_ context.Context, line string) ([]int64, []string, error) {
		err := m.ProcessSequence(rpn.Symbols(line))
		out, diags := m.Context().TakeOutput()
		return out, diags, err
	}
}

// SessionEvaluator evaluates every line inside a persisted session, so the
// stack survives across console runs.
func SessionEvaluator(mgr *session.Manager[rpn.State, rune, *rpn.Calculator], sessionID string) Evaluator {
	return func(ctx context.Context, line string) ([]int64, []string, error) {
		var out []int64
		var diags []string
		err := mgr.Do(ctx, sessionID, func(m *rpn.Machine) error {
			err := m.ProcessSequence(rpn.Symbols(line))
			out, diags = m.Context().TakeOutput()
			return err
		})
		return out, diags, err
	}
}

// RunRPN runs the RPN console until end of input.
// Each emitted value is printed on its own line, followed by diagnostics.
func (c *Console) RunRPN(ctx context.Context, eval Evaluator) error {
	c.Markdown(tui.RPNHelp)
	return c.loop(ctx, "rpn", func(line string) error {
		if strings.TrimSpace(line) == "help" {
			c.Markdown(tui.RPNHelp)
			return nil
		}
		out, diags, err := eval(ctx, line)
		for _, v := range out {
			fmt.Fprintln(c.out, v)
		}
		for _, d := range diags {
			fmt.Fprintln(c.out, d)
		}
		return err
	})
}
