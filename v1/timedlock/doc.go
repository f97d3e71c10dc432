// Package timedlock provides replacements for mutual-exclusion and
// reader/writer locks that bound how long a caller may wait to acquire them.
// Under normal contention a timed lock behaves like its plain counterpart;
// once the configured timeout elapses the caller either panics (default) or
// receives a typed error (the *Err variants). The default timeout is 30
// seconds.
//
// The panic behavior is deliberate: when a timeout is caused by a logic bug
// that makes two tasks wait on each other forever, returning an error cannot
// break the cycle. Tearing the stuck goroutine down gives a supervising
// restart mechanism a chance to recover the process. Call sites that can
// treat a timeout as an ordinary condition should use LockErr, RLockErr and
// friends instead.
package timedlock
