package table

import (
	"fmt"
	"strconv"

	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/registry"
	"github.com/aretw0/tablefsm/pkg/rpn"
)

// ErrStackUnderflow is returned by builtins that need more stack values than
// available. It is the evaluator's sentinel, so errors.Is works across both.
var ErrStackUnderflow = rpn.ErrStackUnderflow

// Memory is the context of table-driven machines: a string stack, named
// variables and an output buffer.
type Memory struct {
	Stack  []string          `json:"stack"`
	Vars   map[string]string `json:"vars,omitempty"`
	Output []string          `json:"output,omitempty"`
}

// NewMemory returns empty memory.
func NewMemory() *Memory {
	return &Memory{Vars: make(map[string]string)}
}

// TakeOutput returns and clears the output buffer.
func (m *Memory) TakeOutput() []string {
	out := m.Output
	m.Output = nil
	return out
}

func (m *Memory) push(s string) {
	m.Stack = append(m.Stack, s)
}

func (m *Memory) pop() (string, error) {
	if len(m.Stack) == 0 {
		return "", ErrStackUnderflow
	}
	top := m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]
	return top, nil
}

// Machine is the machine type built from tables.
type Machine = fsm.Machine[string, string, *Memory]

// Action is the action type table files refer to by name.
type Action = fsm.Action[string, string, *Memory]

// Builtins returns a fresh registry holding the builtin actions.
func Builtins() *registry.Registry[Action] {
	r := registry.New[Action]()
	r.Register("noop", func(*Machine) error { return nil })
	r.Register("push", actPush)
	r.Register("append", actAppend)
	r.Register("pop", actPop)
	r.Register("emit", actEmit)
	r.Register("emit_symbol", actEmitSymbol)
	r.Register("apply", actApply)
	r.Register("to_int", actToInt)
	r.Register("store", actStore)
	r.Register("error", actError)
	return r
}

func symbol(m *Machine) string {
	s, _ := m.LastSymbol()
	return s
}

func actPush(m *Machine) error {
	m.Context().push(symbol(m))
	return nil
}

func actAppend(m *Machine) error {
	mem := m.Context()
	if len(mem.Stack) == 0 {
		return ErrStackUnderflow
	}
	mem.Stack[len(mem.Stack)-1] += symbol(m)
	return nil
}

func actPop(m *Machine) error {
	_, err := m.Context().pop()
	return err
}

func actEmit(m *Machine) error {
	mem := m.Context()
	top, err := mem.pop()
	if err != nil {
		return err
	}
	mem.Output = append(mem.Output, top)
	return nil
}

func actEmitSymbol(m *Machine) error {
	mem := m.Context()
	mem.Output = append(mem.Output, symbol(m))
	return nil
}

func actToInt(m *Machine) error {
	mem := m.Context()
	if len(mem.Stack) == 0 {
		return ErrStackUnderflow
	}
	v, err := strconv.ParseInt(mem.Stack[len(mem.Stack)-1], 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %w", err)
	}
	mem.Stack[len(mem.Stack)-1] = strconv.FormatInt(v, 10)
	return nil
}

func actApply(m *Machine) error {
	op := []rune(symbol(m))
	if len(op) != 1 {
		return fmt.Errorf("operator must be a single character, got %q", symbol(m))
	}

	mem := m.Context()
	if len(mem.Stack) < 2 {
		return ErrStackUnderflow
	}
	n := len(mem.Stack)
	left, err := strconv.ParseInt(mem.Stack[n-2], 10, 64)
	if err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	right, err := strconv.ParseInt(mem.Stack[n-1], 10, 64)
	if err != nil {
		return fmt.Errorf("right operand: %w", err)
	}
	v, err := rpn.Apply(op[0], left, right)
	if err != nil {
		return err
	}
	mem.Stack = append(mem.Stack[:n-2], strconv.FormatInt(v, 10))
	return nil
}

func actStore(m *Machine) error {
	mem := m.Context()
	if mem.Vars == nil {
		mem.Vars = make(map[string]string)
	}
	mem.Vars[m.CurrentState()] = symbol(m)
	return nil
}

func actError(m *Machine) error {
	mem := m.Context()
	mem.Output = append(mem.Output, fmt.Sprintf("undefined input: %q in %s", symbol(m), m.CurrentState()))
	return nil
}
