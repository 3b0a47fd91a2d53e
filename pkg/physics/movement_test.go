package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMovementTickStopsAtWall(t *testing.T) {
	mover := NewMoveable(1, NewCuboid(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}), 80)
	mover.OldVelocity = mgl32.Vec3{1, 0, 0}

	wall := NewCuboid(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5})
	lookup := func(uint64, Cuboid) []Cuboid { return []Cuboid{wall} }

	movers := []*Moveable{&mover}
	MovementTick(movers, nil, lookup, 1.0)

	if mover.Primitive.Center[0] > 1.0+1e-3 {
		t.Fatalf("expected mover to stop at the wall, got center %v", mover.Primitive.Center)
	}
	if mover.Velocity[0] != 0 {
		t.Fatalf("expected x velocity zeroed on contact, got %v", mover.Velocity[0])
	}
}

func TestMovementTickFreeFlight(t *testing.T) {
	mover := NewMoveable(1, NewCuboid(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}), 80)
	mover.OldVelocity = mgl32.Vec3{1, 0, 0}

	lookup := func(uint64, Cuboid) []Cuboid { return nil }
	movers := []*Moveable{&mover}
	MovementTick(movers, nil, lookup, 1.0)

	if d := mover.Primitive.Center[0] - 1.0; d < -1e-3 || d > 1e-3 {
		t.Fatalf("expected unobstructed mover to travel its full velocity, got center %v", mover.Primitive.Center)
	}
	if mover.Velocity[0] != 1 {
		t.Fatalf("expected velocity unchanged without contact, got %v", mover.Velocity[0])
	}
}

// TestMovementTickBatchIsOrderIndependent verifies that others is read as
// a frozen snapshot: swapping which mover appears first in movers must
// not change the outcome, since each sees the other's pre-tick velocity
// rather than a partially-updated one.
func TestMovementTickBatchIsOrderIndependent(t *testing.T) {
	run := func(first, second uint64) (mgl32.Vec3, mgl32.Vec3) {
		a := NewMoveable(1, NewCuboid(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}), 80)
		a.OldVelocity = mgl32.Vec3{1, 0, 0}
		a.Velocity = a.OldVelocity
		b := NewMoveable(2, NewCuboid(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}), 80)
		b.OldVelocity = mgl32.Vec3{-1, 0, 0}
		b.Velocity = b.OldVelocity

		byID := map[uint64]*Moveable{1: &a, 2: &b}
		movers := []*Moveable{byID[first], byID[second]}
		snapshot := []Moveable{a, b}
		others := []*Moveable{&snapshot[0], &snapshot[1]}
		lookup := func(uint64, Cuboid) []Cuboid { return nil }
		MovementTick(movers, others, lookup, 1.0)
		return a.Primitive.Center, b.Primitive.Center
	}

	c1a, c1b := run(1, 2)
	c2a, c2b := run(2, 1)

	const eps = 1e-3
	if d := c1a[0] - c2a[0]; d < -eps || d > eps {
		t.Fatalf("mover order changed entity 1's resolution: %v vs %v", c1a, c2a)
	}
	if d := c1b[0] - c2b[0]; d < -eps || d > eps {
		t.Fatalf("mover order changed entity 2's resolution: %v vs %v", c1b, c2b)
	}
}
