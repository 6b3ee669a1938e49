package recorder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrSessionLocked is returned when another recorder holds the session lock.
var ErrSessionLocked = errors.New("another recording session is already running")

// SessionLock guards one recording per state directory.
type SessionLock struct {
	path string
	lock *flock.Flock
}

// NewSessionLock prepares a lock at path without acquiring it.
func NewSessionLock(path string) *SessionLock {
	return &SessionLock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *SessionLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking.
func (l *SessionLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrSessionLocked
	}
	return nil
}

// Release drops the lock.
func (l *SessionLock) Release() error {
	return l.lock.Unlock()
}
