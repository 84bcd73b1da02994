// Package lock provides advisory locking for a store directory.
//
// spec.md leaves file locking unspecified ("no file locking is required by
// the spec") but explicitly invites it as a hardening measure ("an
// implementation may add advisory locking"). Two live Instances opened
// against the same directory on the same host are undefined behavior per
// spec.md §5; this package turns that undefined behavior into a fast,
// explicit failure for the common single-host case, the same way
// itsknk/gocask locks its active file before rotating it.
package lock

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

// fileName is the advisory lock file created inside the store directory.
// It is not one of the generation files and is never read by recovery.
const fileName = "LOCK"

// Lock holds an exclusive advisory lock on a store directory.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes a non-blocking exclusive lock on dir. It returns
// (nil, false, nil) if the lock is already held, by another process or by
// another Lock on the same directory in this process, rather than
// blocking — Open should treat that as a fast failure.
func Acquire(dir string) (*Lock, bool, error) {
	fl := flock.New(filepath.Join(dir, fileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &Lock{flock: fl}, true, nil
}

// Release releases the lock, allowing another Instance to open the
// directory.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
