package physics

import "github.com/go-gl/mathgl/mgl32"

// Moveable couples an entity's collision primitive to the velocity state
// carried across a movement tick. Grounded on Moveable in the reference
// movement.rs.
type Moveable struct {
	ID          uint64
	Primitive   Cuboid
	Mass        float32
	OldVelocity mgl32.Vec3
	Velocity    mgl32.Vec3
}

// NewMoveable builds a Moveable at rest.
func NewMoveable(id uint64, primitive Cuboid, mass float32) Moveable {
	return Moveable{ID: id, Primitive: primitive, Mass: mass}
}

// StaticLookup returns every static (terrain) cuboid that might be
// relevant to the entity identified by id, currently occupying probe's
// volume. Callers typically back this with a terrain sample padded by
// the entity's current displacement (see getNearby in physics.rs). id is
// threaded through so a single StaticLookup can serve an entire batched
// MovementTick call, where each mover's nearby solids were gathered
// individually before the batch started.
type StaticLookup func(id uint64, probe Cuboid) []Cuboid

// handleRes folds a single time-to-impact result into the running
// (tti, normal) accumulator, preferring the smallest tti and, on an exact
// tie, the result with the smaller (more axis-aligned) normal —
// ported verbatim from handle_res in movement.rs.
func handleRes(r ResolutionTti, tti *float32, normal *mgl32.Vec3) {
	if r.Kind != TtiWillCollide {
		return
	}
	if r.Tti <= *tti {
		lnormal := mgl32.Vec3{r.Normal[0], r.Normal[1], r.Normal[2]}
		if lnormal.Len() < normal.Len() || normal.Len() < 0.1 || r.Tti < *tti {
			*normal = lnormal
		}
		*tti = r.Tti
	}
}

// MovementTick advances each entry of movers by its old velocity over dt,
// resolving continuous collisions against both the static world (via
// lookup) and every other moving entity (others — a frozen snapshot of
// every moveable's previous-tick state, NOT movers itself, so that
// resolving mover A never observes mover B's already-updated velocity or
// position from earlier in this same call: all movers see the same
// pre-tick picture of each other, making resolution order-independent).
// Movement is applied in up to three substeps per entity so a single
// tick can slide along more than one surface. Grounded on movement_tick
// in the reference movement.rs.
func MovementTick(movers []*Moveable, others []*Moveable, lookup StaticLookup, dt float32) {
	for _, c := range movers {
		c.Velocity = c.OldVelocity
		length := c.Velocity.Mul(dt)

		for step := 0; step < 3; step++ {
			if length.Len() < PlanckLength {
				break
			}

			tti := float32(1)
			normal := mgl32.Vec3{}

			probe := c.Primitive
			probe.MoveBy(length)
			for _, static := range lookup(c.ID, probe) {
				if r := TimeToImpact(static, c.Primitive, [3]float32{length[0], length[1], length[2]}); r.Kind != TtiNone {
					handleRes(r, &tti, &normal)
				}
			}

			for _, op := range others {
				if op.ID == c.ID {
					continue
				}
				rel := length.Sub(op.Velocity.Mul(dt))
				if r := TimeToImpact(op.Primitive, c.Primitive, [3]float32{rel[0], rel[1], rel[2]}); r.Kind != TtiNone {
					handleRes(r, &tti, &normal)
				}
			}

			if tti > 0 {
				movement := length.Mul(tti)
				c.Primitive.MoveBy(movement)
				length = length.Sub(movement)
			}

			for axis := 0; axis < 3; axis++ {
				if normal[axis] != 0 {
					length[axis] = 0
					c.Velocity[axis] = 0
				}
			}
		}
	}
}
