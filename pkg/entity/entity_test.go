package entity

import "testing"

func TestRegistryInsertWithRemove(t *testing.T) {
	r := NewRegistry()
	h := r.Insert(Entity{})

	if !r.With(h, func(e *Entity) { e.Physics.Position[0] = 1 }) {
		t.Fatal("expected With to succeed on a live handle")
	}

	var seen float32
	if !r.View(h, func(e Entity) { seen = e.Physics.Position[0] }) {
		t.Fatal("expected View to succeed on a live handle")
	}
	if seen != 1 {
		t.Fatalf("expected mutation to stick, got %v", seen)
	}

	if !r.Remove(h) {
		t.Fatal("expected Remove to succeed once")
	}
	if r.Remove(h) {
		t.Fatal("expected second Remove to fail")
	}
	if r.With(h, func(e *Entity) {}) {
		t.Fatal("expected stale handle to fail With after removal")
	}
}

func TestRegistryReusesSlotsWithNewGeneration(t *testing.T) {
	r := NewRegistry()
	h1 := r.Insert(Entity{})
	r.Remove(h1)
	h2 := r.Insert(Entity{})

	if r.With(h1, func(e *Entity) {}) {
		t.Fatal("old handle must not resolve to the reused slot")
	}
	if !r.With(h2, func(e *Entity) {}) {
		t.Fatal("new handle must resolve")
	}
}

func TestRegistryForEachVisitsOccupiedOnly(t *testing.T) {
	r := NewRegistry()
	r.Insert(Entity{})
	h2 := r.Insert(Entity{})
	r.Insert(Entity{})
	r.Remove(h2)

	count := 0
	r.ForEach(func(h Handle, e *Entity) { count++ })
	if count != 2 {
		t.Fatalf("expected 2 occupied entities, got %d", count)
	}
}
