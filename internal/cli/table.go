package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/tablefsm/pkg/table"
)

// RunTable drives a table machine from the console. Each line is split into
// symbols the way the table asks and the machine's output is printed after it.
func (c *Console) RunTable(ctx context.Context, def *table.Definition, m *table.Machine) error {
	if c.interactive && def.Description != "" {
		c.Markdown("# " + def.Name + "\n\n" + def.Description + "\n")
	}
	return c.loop(ctx, def.Name, func(line string) error {
		err := m.ProcessSequence(def.TokenizeLine(line))
		for _, o := range m.Context().TakeOutput() {
			fmt.Fprintln(c.out, o)
		}
		c.logger.Debug("line processed", "state", m.CurrentState())
		return err
	})
}
