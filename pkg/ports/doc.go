/*
Package ports defines the driven ports (interfaces) used around the tablefsm engine.

These interfaces decouple session hosting from concrete storage and locking
backends.

# Key Interfaces

  - SnapshotStore: persists machine snapshots per session.
  - DistributedLocker: serialises access to a session across processes.
*/
package ports
