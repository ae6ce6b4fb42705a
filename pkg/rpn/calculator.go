package rpn

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrStackUnderflow is returned when an operator or "=" needs more values than the stack holds.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrDivisionByZero is returned by "/" when the right operand is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNumberOverflow is returned when a literal does not fit in an int64.
	ErrNumberOverflow = errors.New("number out of range")
)

// Calculator is the evaluator's context.
type Calculator struct {
	Stack       []int64  `json:"stack"`
	Digits      string   `json:"digits,omitempty"`
	Output      []int64  `json:"output,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// TakeOutput returns and clears the values and diagnostics emitted so far.
func (c *Calculator) TakeOutput() ([]int64, []string) {
	out, diags := c.Output, c.Diagnostics
	c.Output, c.Diagnostics = nil, nil
	return out, diags
}

func (c *Calculator) push(v int64) {
	c.Stack = append(c.Stack, v)
}

func (c *Calculator) pop2() (left, right int64, err error) {
	n := len(c.Stack)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need 2 values, have %d", ErrStackUnderflow, n)
	}
	left, right = c.Stack[n-2], c.Stack[n-1]
	c.Stack = c.Stack[:n-2]
	return left, right, nil
}

func (c *Calculator) closeNumber() error {
	v, err := strconv.ParseInt(c.Digits, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNumberOverflow, c.Digits)
	}
	c.Digits = ""
	c.push(v)
	return nil
}

// Apply combines two operands with one of + - * /.
// Division floors toward negative infinity.
func Apply(op rune, left, right int64) (int64, error) {
	switch op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		q := left / right
		if (left%right != 0) && ((left < 0) != (right < 0)) {
			q--
		}
		return q, nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}
