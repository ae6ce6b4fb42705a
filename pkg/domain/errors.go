package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionUndefined is matched by every UndefinedTransitionError.
	ErrTransitionUndefined = errors.New("transition is undefined")

	// ErrActionFailed is matched by every ActionError.
	ErrActionFailed = errors.New("transition action failed")

	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")
)

// UndefinedTransitionError reports that no exact, wildcard or default rule
// matches the (symbol, state) pair.
type UndefinedTransitionError struct {
	Symbol any
	State  any
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("transition is undefined: (%s, %s)", Label(e.Symbol), Label(e.State))
}

func (e *UndefinedTransitionError) Is(target error) bool {
	return target == ErrTransitionUndefined
}

// ActionError wraps the error returned by a rule action.
// The state transition of the failing rule is never committed.
type ActionError struct {
	Symbol any
	State  any
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action failed on (%s, %s): %v", Label(e.Symbol), Label(e.State), e.Err)
}

func (e *ActionError) Is(target error) bool {
	return target == ErrActionFailed
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsUndefinedTransition reports whether err was caused by a failed rule resolution.
func IsUndefinedTransition(err error) bool {
	var e *UndefinedTransitionError
	return errors.As(err, &e)
}

// IsActionFailure reports whether err was returned by a rule action.
func IsActionFailure(err error) bool {
	var e *ActionError
	return errors.As(err, &e)
}
