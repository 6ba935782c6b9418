// Package txn implements a single-writer, copy-on-write "last-write-undo"
// transaction log: not an ACID transaction manager, just a stack of
// whole-database snapshots that a rollback can pop. There is no isolation
// (in-flight mutations are visible to all readers) and no atomic commit
// of a group of changes.
package txn

import "github.com/katalvlaran/graphdb/internal/gerrors"

// State is the transaction manager's coarse state machine.
type State int

const (
	// NoTx is the default state: mutations are never snapshotted.
	NoTx State = iota
	// Active is tx-open/active: every mutation pushes a snapshot first.
	Active
	// Stopped is tx-open/stopped: the tx is open but cannot roll back.
	Stopped
)

// Snapshot is an opaque whole-database snapshot; storage.Engine defines
// its concrete shape and passes it through untouched.
type Snapshot interface{}

// Manager tracks transaction state and the snapshot stack. It holds no
// reference to the database itself: callers push/pop snapshots they
// captured themselves (storage.Engine does so with its unexported
// captureSnapshot/restoreSnapshot methods).
type Manager struct {
	state State
	stack []Snapshot
}

// New returns a manager in the NoTx state.
func New() *Manager {
	return &Manager{state: NoTx}
}

// State reports the current transaction state.
func (m *Manager) State() State { return m.state }

// Begin must be called from NoTx; it clears the stack and moves to
// Active. Calling it from Active or Stopped is a state error.
func (m *Manager) Begin() error {
	if m.state != NoTx {
		return gerrors.State("begin: a transaction is already open")
	}
	m.state = Active
	m.stack = nil
	return nil
}

// ShouldSnapshot reports whether the caller must capture a snapshot before
// applying a mutation. True only in the Active state.
func (m *Manager) ShouldSnapshot() bool {
	return m.state == Active
}

// Push records a pre-mutation snapshot. No-op outside the Active state;
// callers are expected to guard with ShouldSnapshot but Push is safe to
// call unconditionally.
func (m *Manager) Push(snap Snapshot) {
	if m.state != Active {
		return
	}
	m.stack = append(m.stack, snap)
}

// Rollback must be called from Active. It pops the most recent snapshot
// and returns it for the caller to restore; if the stack is empty it
// returns ok=false (a diagnostic no-op, never an error).
func (m *Manager) Rollback() (snap Snapshot, ok bool, err error) {
	if m.state != Active {
		return nil, false, gerrors.State("rollback: no active transaction")
	}
	if len(m.stack) == 0 {
		return nil, false, nil
	}
	last := len(m.stack) - 1
	snap = m.stack[last]
	m.stack = m.stack[:last]
	return snap, true, nil
}

// Commit must be called from Active. It discards the most recent snapshot
// (the last change becomes permanent) and leaves the tx open.
func (m *Manager) Commit() error {
	if m.state != Active {
		return gerrors.State("commit: no active transaction")
	}
	if len(m.stack) > 0 {
		m.stack = m.stack[:len(m.stack)-1]
	}
	return nil
}

// Stop must be called from Active. It clears the stack and moves to
// Stopped: the tx remains open but can no longer roll back.
func (m *Manager) Stop() error {
	if m.state != Active {
		return gerrors.State("stop: no active transaction")
	}
	m.state = Stopped
	m.stack = nil
	return nil
}

// Depth returns the number of pending snapshots, mostly for tests and
// diagnostics.
func (m *Manager) Depth() int { return len(m.stack) }
