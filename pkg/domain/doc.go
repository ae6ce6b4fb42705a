/*
Package domain contains the pure, non-generic types shared by the tablefsm engine and its adapters.

It is kept free of I/O and persistence so that the engine, stores, transports and
observability layers can agree on a vocabulary without importing each other.

# Key Entities

  - UndefinedTransitionError: the single failure mode intrinsic to rule resolution.
  - ActionError: a consumer action refused to complete; the transition was not committed.
  - TransitionEvent and LifecycleHooks: observability callbacks fired by the dispatcher.
  - Snapshot: a serialisable picture of a machine (state, last symbol, context).
  - TransitionInfo: a flat description of one registered rule, used for graphs.
*/
package domain
