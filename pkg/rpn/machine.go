package rpn

import (
	"fmt"

	"github.com/aretw0/tablefsm/pkg/fsm"
)

// State is a state of the evaluator table.
type State string

const (
	StateInit           State = "INIT"
	StateBuildingNumber State = "BUILDING_NUMBER"
)

// Machine is the evaluator's machine type.
type Machine = fsm.Machine[State, rune, *Calculator]

const (
	digits     = "0123456789"
	whitespace = " \t\n\r\v\f"
	operators  = "+-*/"
)

// DoesNotCompute prefixes the diagnostic recorded for unexpected input.
const DoesNotCompute = "That does not compute."

// New creates an evaluator with an empty calculator.
func New(opts ...fsm.Option) *Machine {
	m := fsm.New[State, rune](StateInit, &Calculator{}, opts...)
	Register(m)
	return m
}

// Register installs the evaluator table on m.
func Register(m *Machine) {
	m.SetDefaultTransition(onError, StateInit)
	m.AddTransitionAny(StateInit, nil, StateInit)
	m.AddTransition('=', StateInit, onEqual, StateInit)
	m.AddTransitionList([]rune(digits), StateInit, beginNumber, StateBuildingNumber)
	m.AddTransitionList([]rune(digits), StateBuildingNumber, buildNumber, StateBuildingNumber)
	m.AddTransitionList([]rune(whitespace), StateBuildingNumber, endNumber, StateInit)
	m.AddTransitionList([]rune(operators), StateInit, onOperator, StateInit)
}

// Symbols turns one line of input into evaluator symbols. A trailing newline
// is appended so a number at the end of the line is closed.
func Symbols(line string) []rune {
	return append([]rune(line), '\n')
}

// Evaluate runs expr on a fresh evaluator and returns the emitted values.
func Evaluate(expr string) ([]int64, []string, error) {
	m := New()
	err := m.ProcessSequence(Symbols(expr))
	out, diags := m.Context().TakeOutput()
	return out, diags, err
}

func beginNumber(m *Machine) error {
	sym, _ := m.LastSymbol()
	m.Context().Digits = string(sym)
	return nil
}

func buildNumber(m *Machine) error {
	sym, _ := m.LastSymbol()
	m.Context().Digits += string(sym)
	return nil
}

func endNumber(m *Machine) error {
	return m.Context().closeNumber()
}

func onOperator(m *Machine) error {
	c := m.Context()
	left, right, err := c.pop2()
	if err != nil {
		return err
	}
	op, _ := m.LastSymbol()
	v, err := Apply(op, left, right)
	if err != nil {
		c.Stack = append(c.Stack, left, right)
		return err
	}
	c.push(v)
	return nil
}

func onEqual(m *Machine) error {
	c := m.Context()
	if len(c.Stack) == 0 {
		return fmt.Errorf("%w: nothing to emit", ErrStackUnderflow)
	}
	top := c.Stack[len(c.Stack)-1]
	c.Stack = c.Stack[:len(c.Stack)-1]
	c.Output = append(c.Output, top)
	return nil
}

func onError(m *Machine) error {
	c := m.Context()
	sym, _ := m.LastSymbol()
	c.Digits = ""
	c.Diagnostics = append(c.Diagnostics, fmt.Sprintf("%s %q", DoesNotCompute, sym))
	return nil
}
