// Package entity implements the Uid-keyed entity registry described in
// spec.md Design Note 1: a slot-map/arena with a per-slot lock, standing
// in for the reference's Arc<RwLock<Entity>> map (region/src/entity.rs)
// without requiring a lock over the whole registry for every field
// access.
package entity

import (
	"sync"

	"github.com/leterax/voxelcore/pkg/physics"
)

// Uid identifies an entity; a Registry never hands out the same Uid
// twice, even after removal and slot reuse. Use Handle for a reference
// that remains valid to check even after the slot is recycled.
type Uid uint64

// Entity is the per-entity state the core tracks. Rendering, AI and
// networked replication state are the host's concern and are not
// modeled here (spec.md §1 Non-goals).
type Entity struct {
	Uid     Uid
	Physics physics.EntityState
}

// Handle references a slot in a Registry. Gen guards against
// use-after-free: a Handle whose Gen no longer matches the slot's
// current generation refers to a removed (and possibly reused) entity.
type Handle struct {
	idx int
	gen uint32
}

type slot struct {
	mu       sync.RWMutex
	gen      uint32
	occupied bool
	entity   Entity
}

// Registry is the concurrent entity arena. Structural changes (Insert,
// Remove) take the registry-wide lock only long enough to update the
// slot table and free list; reading or mutating a single entity's fields
// takes the registry-wide read lock only to find the slot, then locks
// that entity's own slot.
type Registry struct {
	mu      sync.RWMutex
	slots   []*slot
	free    []int
	nextUid uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert adds e to the registry and returns a handle to it.
func (r *Registry) Insert(e Entity) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextUid++
	e.Uid = Uid(r.nextUid)

	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s := r.slots[idx]
		s.mu.Lock()
		s.entity = e
		s.occupied = true
		gen := s.gen
		s.mu.Unlock()
		return Handle{idx: idx, gen: gen}
	}

	s := &slot{occupied: true, entity: e}
	r.slots = append(r.slots, s)
	return Handle{idx: len(r.slots) - 1, gen: 0}
}

// Remove deletes the entity referenced by h, reporting whether it was
// still present. The slot's generation is advanced so stale handles
// reliably fail future lookups even after the slot is reused.
func (r *Registry) Remove(h Handle) bool {
	s, ok := r.slotFor(h)
	if !ok {
		return false
	}

	s.mu.Lock()
	removed := s.occupied && s.gen == h.gen
	if removed {
		s.occupied = false
		s.gen++
		s.entity = Entity{}
	}
	s.mu.Unlock()

	if removed {
		r.mu.Lock()
		r.free = append(r.free, h.idx)
		r.mu.Unlock()
	}
	return removed
}

func (r *Registry) slotFor(h Handle) (*slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h.idx < 0 || h.idx >= len(r.slots) {
		return nil, false
	}
	return r.slots[h.idx], true
}

// With calls fn with exclusive access to the entity referenced by h,
// reporting whether the handle was still valid.
func (r *Registry) With(h Handle, fn func(*Entity)) bool {
	s, ok := r.slotFor(h)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.occupied || s.gen != h.gen {
		return false
	}
	fn(&s.entity)
	return true
}

// View calls fn with read-only access to the entity referenced by h,
// reporting whether the handle was still valid.
func (r *Registry) View(h Handle, fn func(Entity)) bool {
	s, ok := r.slotFor(h)
	if !ok {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.occupied || s.gen != h.gen {
		return false
	}
	fn(s.entity)
	return true
}

// ForEach calls fn for every currently occupied entity, each under its
// own slot's write lock. The set of slots iterated is snapshotted at the
// start of the call; entities inserted concurrently may or may not be
// seen, but a removed entity is never visited after its Remove call
// returns.
func (r *Registry) ForEach(fn func(Handle, *Entity)) {
	r.mu.RLock()
	slots := make([]*slot, len(r.slots))
	copy(slots, r.slots)
	r.mu.RUnlock()

	for idx, s := range slots {
		s.mu.Lock()
		if s.occupied {
			fn(Handle{idx: idx, gen: s.gen}, &s.entity)
		}
		s.mu.Unlock()
	}
}

// Len reports the number of currently occupied slots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots) - len(r.free)
}
