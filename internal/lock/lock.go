// Package lock provides an exclusive, advisory file lock guarding a
// single REPL session's snapshot directory, so two `primitives repl`
// invocations against the same snapshot don't race on save, built on
// golang.org/x/sys/unix's flock wrapper instead of the raw syscall
// package.
package lock

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultTimeout is how long Acquire waits before giving up.
const DefaultTimeout = 5 * time.Second

var (
	ErrTimeout = errors.New("lock: timed out acquiring session lock")
	ErrOpen    = errors.New("lock: failed to open lock file")
)

// Session is an acquired lock on a snapshot directory.
type Session struct {
	path string
	file *os.File
}

// Acquire tries to take an exclusive, non-blocking lock on dir+".lock",
// retrying until timeout elapses.
func Acquire(dir string, timeout time.Duration) (*Session, error) {
	path := dir + ".lock"

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	deadline := time.Now().Add(timeout)

	const retryInterval = 10 * time.Millisecond

	for {
		err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &Session{path: path, file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: %s", ErrTimeout, dir)
		}

		time.Sleep(retryInterval)
	}
}

// Release drops the lock and closes the underlying file.
func (s *Session) Release() {
	if s == nil || s.file == nil {
		return
	}

	_ = unix.Flock(int(s.file.Fd()), unix.LOCK_UN)
	_ = s.file.Close()
}
