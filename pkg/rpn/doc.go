// Package rpn is a Reverse Polish Notation evaluator built on a character-level
// fsm.Machine.
//
// Numbers are non-negative integers, operators are + - * / and "=" pops and
// emits the top of the stack:
//
//	167 3 2 2 * * * 1 - =
//
// emits 2003. Input that the table does not understand is turned into a
// diagnostic by the default transition instead of an error.
package rpn
