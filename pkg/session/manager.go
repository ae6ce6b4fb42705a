package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Factory builds a machine in its initial state, with its rules registered.
type Factory[S, Y comparable, C any] func() *fsm.Machine[S, Y, C]

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type options struct {
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*options)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *options) {
		o.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks (default DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager[S, Y comparable, C any] struct {
	store   ports.SnapshotStore
	factory Factory[S, Y, C]
	opts    options

	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewManager creates a Manager persisting snapshots in store.
func NewManager[S, Y comparable, C any](store ports.SnapshotStore, factory Factory[S, Y, C], opts ...Option) *Manager[S, Y, C] {
	o := options{
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[S, Y, C]{
		store:   store,
		factory: factory,
		opts:    o,
		locks:   make(map[string]*lockEntry),
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager[S, Y, C]) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager[S, Y, C]) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Do runs fn on the session's machine and persists the result.
// Unknown sessions start from a fresh machine. The snapshot is saved even
// when fn fails, mirroring ProcessSequence, which never rolls back.
func (m *Manager[S, Y, C]) Do(ctx context.Context, sessionID string, fn func(*fsm.Machine[S, Y, C]) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		machine, _, err := m.restore(ctx, sessionID)
		if err != nil {
			return err
		}

		runErr := fn(machine)

		snap, err := machine.Snapshot()
		if err == nil {
			err = m.store.Save(ctx, sessionID, snap)
		}
		if err != nil {
			m.opts.logger.Error("failed to persist session", "session_id", sessionID, "error", err)
			return errors.Join(runErr, fmt.Errorf("failed to save session: %w", err))
		}

		m.opts.logger.Debug("session saved", "session_id", sessionID, "state", machine.CurrentState())
		return runErr
	})
}

// Load returns a machine restored from the session's snapshot without saving
// anything back. Returns domain.ErrSessionNotFound for unknown sessions.
func (m *Manager[S, Y, C]) Load(ctx context.Context, sessionID string) (*fsm.Machine[S, Y, C], error) {
	var machine *fsm.Machine[S, Y, C]
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var found bool
		var err error
		machine, found, err = m.restore(ctx, sessionID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrSessionNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return machine, nil
}

func (m *Manager[S, Y, C]) restore(ctx context.Context, sessionID string) (*fsm.Machine[S, Y, C], bool, error) {
	machine := m.factory()

	snap, err := m.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		m.opts.logger.Debug("session created", "session_id", sessionID)
		return machine, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}

	if err := machine.Restore(snap); err != nil {
		return nil, false, fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}
	return machine, true, nil
}

// Delete removes the session from the store.
func (m *Manager[S, Y, C]) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager[S, Y, C]) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager[S, Y, C]) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager[S, Y, C]) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.opts.locker != nil {
		unlock, err := m.opts.locker.Lock(ctx, sessionID, m.opts.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.opts.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
