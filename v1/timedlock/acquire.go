package timedlock

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/mirkobrombin/go-timedlock/v1/registry"
)

var tracer = otel.Tracer("github.com/mirkobrombin/go-timedlock/v1/timedlock")

// monitor carries the per-instance timeout and the optional observability
// hooks shared by TimedMutex and TimedRWLock.
type monitor struct {
	timeout time.Duration
	tracing bool
	entry   *registry.Entry

	acquireCounter prometheus.Counter
	timeoutCounter prometheus.Counter
	waitHist       prometheus.Histogram
}

func newMonitor(kind string, cfg config) *monitor {
	m := &monitor{timeout: cfg.timeout, tracing: cfg.tracing}
	if cfg.reg != nil {
		m.acquireCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timedlock_acquisitions_total",
			Help: "Total number of successful lock acquisitions",
		})
		m.timeoutCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timedlock_timeouts_total",
			Help: "Total number of lock acquisitions that timed out",
		})
		m.waitHist = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timedlock_wait_seconds",
			Help:    "Time spent waiting for lock acquisition",
			Buckets: prometheus.DefBuckets,
		})
		cfg.reg.MustRegister(m.acquireCounter, m.timeoutCounter, m.waitHist)
	}
	if cfg.name != "" {
		m.entry = registry.Register(cfg.name, kind)
	}
	return m
}

// seconds is the configured timeout in whole seconds, as reported in
// timeout panics and errors.
func (m *monitor) seconds() uint64 { return uint64(m.timeout / time.Second) }

// acquire races the semaphore acquisition against the configured timeout.
// It returns nil once the weight is obtained, ctx.Err() when the caller's
// own context is cancelled first, and a *TimeoutError otherwise.
//
// When the deadline and the grant become ready together the acquisition
// wins: a final TryAcquire is made before a timeout is reported. Both the
// panicking and the error-returning operations go through here, so the
// tie-break is identical for the two.
func (m *monitor) acquire(ctx context.Context, sem *semaphore.Weighted, weight int64, op Op) error {
	var span trace.Span
	if m.tracing {
		ctx, span = tracer.Start(ctx, spanName(op))
		span.SetAttributes(
			attribute.String("timedlock.op", string(op)),
			attribute.Int64("timedlock.timeout_s", int64(m.seconds())),
		)
		defer span.End()
	}
	if m.entry != nil {
		m.entry.NoteWait()
		defer m.entry.NoteWaitDone()
	}
	start := time.Now()

	wctx, cancel := context.WithTimeout(ctx, m.timeout)
	err := sem.Acquire(wctx, weight)
	cancel()
	if err == nil {
		m.acquired(span, time.Since(start))
		return nil
	}
	if ctx.Err() != nil {
		if m.tracing {
			span.SetAttributes(attribute.String("timedlock.result", "cancelled"))
		}
		return ctx.Err()
	}
	if sem.TryAcquire(weight) {
		m.acquired(span, time.Since(start))
		return nil
	}

	if m.timeoutCounter != nil {
		m.timeoutCounter.Inc()
	}
	if m.entry != nil {
		m.entry.NoteTimeout()
	}
	if m.tracing {
		span.SetAttributes(attribute.String("timedlock.result", "timeout"))
	}
	return &TimeoutError{Op: op, Seconds: m.seconds()}
}

// acquired records a successful timed acquisition and the time spent
// waiting for it.
func (m *monitor) acquired(span trace.Span, wait time.Duration) {
	if m.acquireCounter != nil {
		m.acquireCounter.Inc()
	}
	if m.waitHist != nil {
		m.waitHist.Observe(wait.Seconds())
	}
	if m.entry != nil {
		m.entry.NoteAcquired()
	}
	if m.tracing {
		span.SetAttributes(
			attribute.String("timedlock.result", "acquired"),
			attribute.Int64("timedlock.wait_ms", wait.Milliseconds()),
		)
	}
}

// tryAcquired records a successful non-timed try acquisition.
func (m *monitor) tryAcquired() {
	if m.acquireCounter != nil {
		m.acquireCounter.Inc()
	}
	if m.entry != nil {
		m.entry.NoteAcquired()
	}
}

func (m *monitor) released() {
	if m.entry != nil {
		m.entry.NoteReleased()
	}
}

func spanName(op Op) string {
	switch op {
	case OpRead:
		return "RWLock.RLock"
	case OpWrite:
		return "RWLock.Lock"
	default:
		return "Mutex.Lock"
	}
}
