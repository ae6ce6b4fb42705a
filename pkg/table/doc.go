// Package table loads transition tables from YAML or JSON files and builds
// fsm machines from them.
//
// Actions are referred to by name and resolved against a registry of actions;
// Builtins provides a small stack-oriented vocabulary that is enough to express
// the RPN evaluator as data:
//
//	name: rpn
//	initial: INIT
//	tokenize: chars
//	default: {action: error, next: INIT}
//	any:
//	  - {state: INIT, next: INIT}
//	transitions:
//	  - {symbols: ["="], state: INIT, action: emit}
//	  - {chars: "0123456789", state: INIT, action: push, next: BUILDING_NUMBER}
//	  - {chars: "0123456789", state: BUILDING_NUMBER, action: append}
//	  - {chars: " \t\n", state: BUILDING_NUMBER, action: to_int, next: INIT}
//	  - {chars: "+-*/", state: INIT, action: apply}
//
// A transition without "next" is a self-loop. A transition without "action" has
// no side effect.
package table
