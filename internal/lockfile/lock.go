// Package lockfile provides a cross-platform, non-blocking advisory file
// lock. The catalog holds it while it creates, deletes or renames a
// database, so only one process at a time rewrites the registry through
// those calls. Backup, restore, import and the engine's own writes to
// companion files do not take it.
package lockfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/graphdb/internal/gerrors"
)

// ErrLockBusy is returned when the lock is already held by another
// process, surfaced to callers as a gerrors.StateError.
var ErrLockBusy = errors.New("lock busy: held by another process")

// Lock holds an open file descriptor for the duration an exclusive,
// non-blocking lock is held on it.
type Lock struct {
	f *os.File
}

// Acquire opens (creating if necessary) path and takes an exclusive,
// non-blocking lock on it. It returns a gerrors.StateError wrapping
// ErrLockBusy if another process already holds the lock.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, gerrors.IO("open lock file", err)
	}
	if err := flockExclusiveNonBlocking(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLockBusy) {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrLockBusy, gerrors.ErrState)
		}
		return nil, gerrors.IO("acquire lock", err)
	}
	return &Lock{f: f}, nil
}

// Release unlocks and closes the underlying file descriptor.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	if err := flockUnlock(l.f); err != nil {
		l.f.Close()
		return gerrors.IO("release lock", err)
	}
	return l.f.Close()
}
