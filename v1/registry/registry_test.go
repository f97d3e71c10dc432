package registry

import (
	"strings"
	"testing"
)

func TestRegisterAndSnapshot(t *testing.T) {
	a := Register("b-lock", "mutex")
	b := Register("a-lock", "rwlock")
	t.Cleanup(func() {
		Unregister(a.ID())
		Unregister(b.ID())
	})

	if a.ID() == b.ID() {
		t.Fatalf("expected unique ids, got %s twice", a.ID())
	}

	a.NoteWait()
	a.NoteAcquired()
	a.NoteWaitDone()
	a.NoteTimeout()

	var gotA, gotB Info
	for _, in := range Snapshot() {
		switch in.ID {
		case a.ID():
			gotA = in
		case b.ID():
			gotB = in
		}
	}
	if gotA.ID == "" || gotB.ID == "" {
		t.Fatal("registered locks missing from snapshot")
	}
	if gotA.Acquired != 1 || gotA.Timeouts != 1 || gotA.Held != 1 || gotA.Waiting != 0 {
		t.Fatalf("unexpected counters: %+v", gotA)
	}
	if gotB.Kind != "rwlock" || gotB.Name != "a-lock" {
		t.Fatalf("unexpected entry: %+v", gotB)
	}
}

func TestSnapshotSortedByName(t *testing.T) {
	a := Register("zz-lock", "mutex")
	b := Register("aa-lock", "mutex")
	t.Cleanup(func() {
		Unregister(a.ID())
		Unregister(b.ID())
	})

	infos := Snapshot()
	posA, posB := -1, -1
	for i, in := range infos {
		switch in.ID {
		case a.ID():
			posA = i
		case b.ID():
			posB = i
		}
	}
	if posA < 0 || posB < 0 {
		t.Fatal("registered locks missing from snapshot")
	}
	if posB > posA {
		t.Fatalf("expected aa-lock before zz-lock, got positions %d and %d", posB, posA)
	}
}

func TestUnregister(t *testing.T) {
	e := Register("gone-lock", "mutex")
	Unregister(e.ID())
	for _, in := range Snapshot() {
		if in.ID == e.ID() {
			t.Fatal("entry still present after unregister")
		}
	}
	// Unknown IDs are a no-op.
	Unregister("missing")
}

func TestDump(t *testing.T) {
	e := Register("dump-lock", "rwlock")
	t.Cleanup(func() { Unregister(e.ID()) })
	e.NoteAcquired()
	e.NoteReleased()

	out := Dump()
	if !strings.Contains(out, "dump-lock (rwlock, id "+e.ID()+")") {
		t.Fatalf("dump missing entry header:\n%s", out)
	}
	if !strings.Contains(out, "acquired: 1, timeouts: 0, held: 0, waiting: 0") {
		t.Fatalf("dump missing counters:\n%s", out)
	}
}
