package timedlock_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mirkobrombin/go-timedlock/v1/timedlock"
)

func ExampleNewMutex() {
	counter := timedlock.NewMutex(0)

	g := counter.Lock()
	*g.Value()++
	g.Unlock()

	g, err := counter.LockErr(context.Background())
	if err != nil {
		fmt.Println("lock failed:", err)
		return
	}
	fmt.Println("counter:", *g.Value())
	g.Unlock()
	// Output: counter: 1
}

func ExampleTimedRWLock_RLockErr() {
	lock := timedlock.NewRWLockWithTimeout(map[string]string{}, 50*time.Millisecond)

	// A held write guard makes any read acquisition time out.
	w := lock.Lock()
	defer w.Unlock()

	_, err := lock.RLockErr(context.Background())
	fmt.Println(err)
	fmt.Println("recoverable:", errors.Is(err, timedlock.ErrTimeout))
	// Output:
	// Timed out while waiting for `read` lock after 0 seconds.
	// recoverable: true
}

func ExampleTimedMutex_TryLock() {
	m := timedlock.NewMutex("config")

	g, err := m.TryLock()
	if err != nil {
		fmt.Println("busy:", err)
		return
	}
	fmt.Println("holding:", *g.Value())
	g.Unlock()
	// Output: holding: config
}
