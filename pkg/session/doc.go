/*
Package session hosts many fsm machines behind session IDs.

A Machine is single-threaded and keeps its state in memory. The Manager turns
that into a multi-session service: every call locks the session (in-process,
and optionally through a ports.DistributedLocker shared between replicas),
rebuilds a machine from a factory, restores the stored snapshot, runs the
caller's function and saves the resulting snapshot.
*/
package session
