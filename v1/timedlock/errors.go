package timedlock

import (
	"errors"
	"fmt"
)

// ErrTimeout is matched by every acquisition timeout, so callers can use
// errors.Is without caring which acquisition path timed out.
var ErrTimeout = errors.New("timedlock: timeout")

// errLockHeld is the underlying failure surfaced by the non-timed try
// operations when the lock cannot be taken immediately.
var errLockHeld = errors.New("lock is already held")

// Op identifies an acquisition path on a timed lock.
type Op string

const (
	// OpLock is the exclusive acquisition of a TimedMutex.
	OpLock Op = "lock"
	// OpRead is the shared acquisition of a TimedRWLock.
	OpRead Op = "read"
	// OpWrite is the exclusive acquisition of a TimedRWLock.
	OpWrite Op = "write"
)

// TimeoutError reports that a bounded acquisition exceeded its timeout.
// Seconds is the configured timeout in whole seconds, not the measured wait.
type TimeoutError struct {
	Op      Op
	Seconds uint64
}

func (e *TimeoutError) Error() string {
	if e.Op == OpLock {
		return fmt.Sprintf("Timed out while waiting for `lock` after %d seconds.", e.Seconds)
	}
	return fmt.Sprintf("Timed out while waiting for `%s` lock after %d seconds.", e.Op, e.Seconds)
}

// Is reports ErrTimeout as a match.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// TryLockError wraps the underlying lock's immediate try-acquisition
// failure. It is never returned by the timed operations.
type TryLockError struct {
	Err error
}

func (e *TryLockError) Error() string { return "timedlock: try lock failed: " + e.Err.Error() }

func (e *TryLockError) Unwrap() error { return e.Err }
