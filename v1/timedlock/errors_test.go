package timedlock

import (
	"errors"
	"testing"
)

func TestTimeoutErrorMessages(t *testing.T) {
	cases := []struct {
		err  *TimeoutError
		want string
	}{
		{&TimeoutError{Op: OpLock, Seconds: 30}, "Timed out while waiting for `lock` after 30 seconds."},
		{&TimeoutError{Op: OpRead, Seconds: 30}, "Timed out while waiting for `read` lock after 30 seconds."},
		{&TimeoutError{Op: OpWrite, Seconds: 60}, "Timed out while waiting for `write` lock after 60 seconds."},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("message = %q, want %q", got, c.want)
		}
	}
}

func TestTimeoutErrorMatchesSentinel(t *testing.T) {
	err := error(&TimeoutError{Op: OpRead, Seconds: 30})
	if !errors.Is(err, ErrTimeout) {
		t.Fatal("expected errors.Is(err, ErrTimeout)")
	}
	var te *TimeoutError
	if !errors.As(err, &te) || te.Seconds != 30 {
		t.Fatalf("errors.As failed on %v", err)
	}
}

func TestTryLockErrorWraps(t *testing.T) {
	cause := errors.New("busy")
	err := error(&TryLockError{Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match")
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatal("try failure must not match ErrTimeout")
	}
	want := "timedlock: try lock failed: busy"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}
