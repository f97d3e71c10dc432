package timedlock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTimeout is the acquisition timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

type config struct {
	timeout time.Duration
	name    string
	tracing bool
	reg     prometheus.Registerer
}

func newConfig(opts []Option) config {
	cfg := config{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a timed lock at construction time.
type Option func(*config)

// WithTimeout sets the acquisition timeout. The timeout is fixed for the
// lifetime of the lock. A non-positive duration is a programming error and
// panics.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("timedlock: timeout must be positive")
	}
	return func(c *config) {
		c.timeout = d
	}
}

// WithMetrics enables Prometheus metrics collection using the provided
// registerer. Each lock instance registers its own collectors; use one
// registry per instance or distinct instance setups to avoid duplicate
// registration.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.reg = reg
	}
}

// WithTracing enables OpenTelemetry tracing for acquisition operations.
func WithTracing() Option {
	return func(c *config) {
		c.tracing = true
	}
}

// WithName registers the lock in the process-wide registry under name, so it
// shows up in registry.Snapshot and registry.Dump.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
