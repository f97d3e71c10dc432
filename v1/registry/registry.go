package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Entry is the registry handle for a single lock instance. The lock updates
// its counters as acquisitions happen; all methods are safe for concurrent
// use.
type Entry struct {
	id      string
	name    string
	kind    string
	created time.Time

	waiting  atomic.Int64
	held     atomic.Int64
	acquired atomic.Uint64
	timeouts atomic.Uint64
}

// ID returns the unique identifier assigned at registration.
func (e *Entry) ID() string { return e.id }

// Name returns the name the lock was registered under.
func (e *Entry) Name() string { return e.name }

// NoteWait records that a caller started waiting for the lock.
func (e *Entry) NoteWait() { e.waiting.Add(1) }

// NoteWaitDone records that a caller stopped waiting, whatever the outcome.
func (e *Entry) NoteWaitDone() { e.waiting.Add(-1) }

// NoteAcquired records a successful acquisition.
func (e *Entry) NoteAcquired() {
	e.acquired.Add(1)
	e.held.Add(1)
}

// NoteReleased records that a guard was released.
func (e *Entry) NoteReleased() { e.held.Add(-1) }

// NoteTimeout records an acquisition that exceeded its timeout.
func (e *Entry) NoteTimeout() { e.timeouts.Add(1) }

// Info is a point-in-time view of a registered lock.
type Info struct {
	ID        string
	Name      string
	Kind      string
	CreatedAt time.Time
	Waiting   int64
	Held      int64
	Acquired  uint64
	Timeouts  uint64
}

type registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

var global = &registry{entries: make(map[string]*Entry)}

// Register adds a lock to the global registry and returns its handle. Kind
// describes the lock flavor, e.g. "mutex" or "rwlock". Multiple locks may
// share a name; the assigned ID is always unique.
func Register(name, kind string) *Entry {
	e := &Entry{
		id:      uuid.NewString(),
		name:    name,
		kind:    kind,
		created: time.Now(),
	}
	global.mu.Lock()
	global.entries[e.id] = e
	global.mu.Unlock()
	return e
}

// Unregister removes a lock from the global registry. Unknown IDs are
// ignored.
func Unregister(id string) {
	global.mu.Lock()
	delete(global.entries, id)
	global.mu.Unlock()
}

// Snapshot returns the current state of every registered lock, sorted by
// name and then by ID for stable output.
func Snapshot() []Info {
	global.mu.RLock()
	infos := make([]Info, 0, len(global.entries))
	for _, e := range global.entries {
		infos = append(infos, Info{
			ID:        e.id,
			Name:      e.name,
			Kind:      e.kind,
			CreatedAt: e.created,
			Waiting:   e.waiting.Load(),
			Held:      e.held.Load(),
			Acquired:  e.acquired.Load(),
			Timeouts:  e.timeouts.Load(),
		})
	}
	global.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Dump renders a human-readable report of every registered lock. It is meant
// for debugging stuck services, typically from a signal handler or an
// inspection endpoint.
func Dump() string {
	infos := Snapshot()

	var b strings.Builder
	b.WriteString("=== timedlock registry ===\n")
	b.WriteString(fmt.Sprintf("registered locks: %d\n", len(infos)))
	for _, in := range infos {
		b.WriteString(fmt.Sprintf("- %s (%s, id %s)\n", in.Name, in.Kind, in.ID))
		b.WriteString(fmt.Sprintf("  created: %s\n", in.CreatedAt.Format(time.RFC3339)))
		b.WriteString(fmt.Sprintf("  acquired: %d, timeouts: %d, held: %d, waiting: %d\n",
			in.Acquired, in.Timeouts, in.Held, in.Waiting))
	}
	return b.String()
}
