package timedlock

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// maxReaders bounds the number of concurrent readers. A writer acquires the
// full weight, and since the semaphore grants waiters in FIFO order a
// waiting writer blocks readers that arrive after it.
const maxReaders = 1 << 30

// TimedRWLock is a reader/writer lock guarding a value of type T. Any
// number of readers or a single writer may hold it at a time. Read and
// write acquisitions are independent paths sharing the one timeout fixed at
// construction.
type TimedRWLock[T any] struct {
	sem   *semaphore.Weighted
	mon   *monitor
	value T
}

// NewRWLock returns a TimedRWLock protecting value, with the default
// timeout of 30 seconds.
func NewRWLock[T any](value T, opts ...Option) *TimedRWLock[T] {
	return &TimedRWLock[T]{
		sem:   semaphore.NewWeighted(maxReaders),
		mon:   newMonitor("rwlock", newConfig(opts)),
		value: value,
	}
}

// NewRWLockWithTimeout returns a TimedRWLock with an explicit timeout. It
// panics if d is not positive.
func NewRWLockWithTimeout[T any](value T, d time.Duration, opts ...Option) *TimedRWLock[T] {
	return NewRWLock(value, append(opts, WithTimeout(d))...)
}

// RLock blocks until a shared guard is obtained, panicking with a
// *TimeoutError once the timeout elapses. Use RLockErr when a timeout must
// be recoverable.
func (l *TimedRWLock[T]) RLock() *RGuard[T] {
	if err := l.mon.acquire(context.Background(), l.sem, 1, OpRead); err != nil {
		panic(err)
	}
	return &RGuard[T]{l: l}
}

// RLockErr blocks until a shared guard is obtained, the timeout elapses, or
// ctx is cancelled. A timeout is returned as a *TimeoutError; cancellation
// is returned as ctx.Err().
func (l *TimedRWLock[T]) RLockErr(ctx context.Context) (*RGuard[T], error) {
	if err := l.mon.acquire(ctx, l.sem, 1, OpRead); err != nil {
		return nil, err
	}
	return &RGuard[T]{l: l}, nil
}

// Lock blocks until the exclusive guard is obtained, panicking with a
// *TimeoutError once the timeout elapses. Use LockErr when a timeout must
// be recoverable.
func (l *TimedRWLock[T]) Lock() *WGuard[T] {
	if err := l.mon.acquire(context.Background(), l.sem, maxReaders, OpWrite); err != nil {
		panic(err)
	}
	return &WGuard[T]{l: l}
}

// LockErr blocks until the exclusive guard is obtained, the timeout
// elapses, or ctx is cancelled. A timeout is returned as a *TimeoutError;
// cancellation is returned as ctx.Err().
func (l *TimedRWLock[T]) LockErr(ctx context.Context) (*WGuard[T], error) {
	if err := l.mon.acquire(ctx, l.sem, maxReaders, OpWrite); err != nil {
		return nil, err
	}
	return &WGuard[T]{l: l}, nil
}

// TryRLock attempts to take a shared guard without waiting. An immediate
// failure is wrapped in a *TryLockError, never reinterpreted as a timeout.
func (l *TimedRWLock[T]) TryRLock() (*RGuard[T], error) {
	if !l.sem.TryAcquire(1) {
		return nil, &TryLockError{Err: errLockHeld}
	}
	l.mon.tryAcquired()
	return &RGuard[T]{l: l}, nil
}

// TryLock attempts to take the exclusive guard without waiting. An
// immediate failure is wrapped in a *TryLockError.
func (l *TimedRWLock[T]) TryLock() (*WGuard[T], error) {
	if !l.sem.TryAcquire(maxReaders) {
		return nil, &TryLockError{Err: errLockHeld}
	}
	l.mon.tryAcquired()
	return &WGuard[T]{l: l}, nil
}

// Timeout returns the acquisition timeout configured at construction.
func (l *TimedRWLock[T]) Timeout() time.Duration { return l.mon.timeout }

// RGuard grants shared access to the value protected by a TimedRWLock until
// Unlock is called. An RGuard is not safe for concurrent use.
type RGuard[T any] struct {
	l        *TimedRWLock[T]
	released bool
}

// Value borrows the protected value. Mutating through a read guard is a
// data race; the pointer must not be used after Unlock.
func (g *RGuard[T]) Value() *T { return &g.l.value }

// Unlock releases the shared guard. Unlocking an already released guard
// panics.
func (g *RGuard[T]) Unlock() {
	if g.released {
		panic("timedlock: unlock of released guard")
	}
	g.released = true
	g.l.mon.released()
	g.l.sem.Release(1)
}

// WGuard grants exclusive access to the value protected by a TimedRWLock
// until Unlock is called. A WGuard is not safe for concurrent use.
type WGuard[T any] struct {
	l        *TimedRWLock[T]
	released bool
}

// Value borrows the protected value. The pointer must not be used after
// Unlock.
func (g *WGuard[T]) Value() *T { return &g.l.value }

// Unlock releases the exclusive guard. Unlocking an already released guard
// panics.
func (g *WGuard[T]) Unlock() {
	if g.released {
		panic("timedlock: unlock of released guard")
	}
	g.released = true
	g.l.mon.released()
	g.l.sem.Release(maxReaders)
}
