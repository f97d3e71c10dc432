package timedlock

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// TimedMutex is a mutual-exclusion lock guarding a value of type T. The
// protected value is reachable only through a Guard returned by a successful
// acquisition, and every timed acquisition is bounded by the timeout fixed
// at construction.
type TimedMutex[T any] struct {
	sem   *semaphore.Weighted
	mon   *monitor
	value T
}

// NewMutex returns a TimedMutex protecting value, with the default timeout
// of 30 seconds.
func NewMutex[T any](value T, opts ...Option) *TimedMutex[T] {
	return &TimedMutex[T]{
		sem:   semaphore.NewWeighted(1),
		mon:   newMonitor("mutex", newConfig(opts)),
		value: value,
	}
}

// NewMutexWithTimeout returns a TimedMutex with an explicit timeout. It
// panics if d is not positive.
func NewMutexWithTimeout[T any](value T, d time.Duration, opts ...Option) *TimedMutex[T] {
	return NewMutex(value, append(opts, WithTimeout(d))...)
}

// Lock blocks until the exclusive guard is obtained. If the timeout elapses
// first it panics with a *TimeoutError naming the operation and the
// configured timeout in seconds. Use LockErr when a timeout must be
// recoverable.
func (m *TimedMutex[T]) Lock() *Guard[T] {
	if err := m.mon.acquire(context.Background(), m.sem, 1, OpLock); err != nil {
		panic(err)
	}
	return &Guard[T]{m: m}
}

// LockErr blocks until the exclusive guard is obtained, the timeout
// elapses, or ctx is cancelled. A timeout is returned as a *TimeoutError;
// cancellation is returned as ctx.Err().
func (m *TimedMutex[T]) LockErr(ctx context.Context) (*Guard[T], error) {
	if err := m.mon.acquire(ctx, m.sem, 1, OpLock); err != nil {
		return nil, err
	}
	return &Guard[T]{m: m}, nil
}

// TryLock attempts to take the guard without waiting. This is the delegated
// non-timed operation of the underlying lock: an immediate failure is
// wrapped in a *TryLockError, never reinterpreted as a timeout.
func (m *TimedMutex[T]) TryLock() (*Guard[T], error) {
	if !m.sem.TryAcquire(1) {
		return nil, &TryLockError{Err: errLockHeld}
	}
	m.mon.tryAcquired()
	return &Guard[T]{m: m}, nil
}

// Timeout returns the acquisition timeout configured at construction.
func (m *TimedMutex[T]) Timeout() time.Duration { return m.mon.timeout }

// Guard grants exclusive access to the value protected by a TimedMutex
// until Unlock is called. A Guard is not safe for concurrent use.
type Guard[T any] struct {
	m        *TimedMutex[T]
	released bool
}

// Value borrows the protected value. The pointer must not be used after
// Unlock.
func (g *Guard[T]) Value() *T { return &g.m.value }

// Unlock releases the guard. Unlocking an already released guard panics.
func (g *Guard[T]) Unlock() {
	if g.released {
		panic("timedlock: unlock of released guard")
	}
	g.released = true
	g.m.mon.released()
	g.m.sem.Release(1)
}
