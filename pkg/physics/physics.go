package physics

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tunables ported from the reference physics.rs. Distances are in
// blocks; LengthOfBlock converts the gravity constant (given in
// meters/second^2 in the original) into blocks/second^2.
const (
	LengthOfBlock       float32 = 0.3
	GroundGravity        float32 = -9.81
	BlockSizePlusSmall   float32 = 1 + PlanckLength
	BlockHopSpeed        float32 = 13.0
	EntityMass           float32 = 80.0
)

var (
	EntityMiddleOffset = mgl32.Vec3{0, 0, 0.9}
	EntityRadius       = mgl32.Vec3{0.45, 0.45, 0.9}
	EntityAcc          = mgl32.Vec3{24 / LengthOfBlock, 24 / LengthOfBlock, 28 / LengthOfBlock}

	smallerThanBlockGoingDown = mgl32.Vec3{0, 0, -0.1}

	controlInAir   = mgl32.Vec3{0.17, 0.17, 0}
	controlInWater = mgl32.Vec3{0.05, 0.05, 0.09}

	frictionOnGround = mgl32.Vec3{0.0015, 0.0015, 0.0015}
	frictionInAir    = mgl32.Vec3{0.2, 0.2, 0.95}
	frictionInWater  = mgl32.Vec3{0.6, 0.6, 0.3}
)

// EntityState is the per-tick physics state for one entity. Control is
// the entity's desired planar (x, y) movement direction for this tick;
// vertical intent is carried separately by the Jump flag.
type EntityState struct {
	ID       uint64
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Control  mgl32.Vec2
	Jump     bool

	// OnGround and InWater are written by Tick for the host to consume
	// (e.g. the ambient audio maintainer, component K of spec.md).
	OnGround bool
	InWater  bool
}

// WorldSample is a released-on-demand view of the terrain around a
// probe point, handed back by World.Sample. Grounded on the cross-chunk
// Sample construction described in spec.md §4.5, kept abstract here so
// pkg/physics has no dependency on pkg/voxel or pkg/terrain.
type WorldSample interface {
	// SolidsNear returns every solid block's collision cuboid that
	// might intersect probe.
	SolidsNear(probe Cuboid) []Cuboid
	// FluidOverlap reports whether probe overlaps any fluid block.
	FluidOverlap(probe Cuboid) bool
	Release()
}

// World supplies a WorldSample padded to cover the given extents around
// center. ok is false if the sample could not be built (a required
// chunk is missing or contended) — per spec.md §4.8, the entity is then
// skipped for this tick rather than causing an error.
type World interface {
	Sample(center mgl32.Vec3, pad mgl32.Vec3) (sample WorldSample, ok bool)
}

// Tick advances every entity's position and velocity by dt, per
// spec.md §4.8. Entities whose terrain sample cannot be built this tick
// are left untouched and logged at debug level.
func Tick(log *slog.Logger, world World, entities []*EntityState, dt float32) {
	type prepared struct {
		state   *EntityState
		sample  WorldSample
		solids  []Cuboid
		jumpVel float32
	}

	var ready []prepared
	movers := make([]*Moveable, 0, len(entities))

	for _, e := range entities {
		planar := mgl32.Vec3{e.Control[0], e.Control[1], 0}
		if l := planar.Len(); l > 1 {
			planar = planar.Mul(1 / l)
		}
		wantedVel := mgl32.Vec3{planar[0] * EntityAcc[0], planar[1] * EntityAcc[1], 0}.Mul(dt)

		gz := GroundGravity / (1 + float32(math.Exp(float64(e.Position[2]/120-3.5)))) / LengthOfBlock
		gravityVel := mgl32.Vec3{0, 0, gz * dt}

		pad := paddingFor(wantedVel, gravityVel)
		sample, ok := world.Sample(e.Position.Add(EntityMiddleOffset), pad)
		if !ok {
			log.Debug("physics: entity skipped, terrain sample unavailable", "entity", e.ID)
			continue
		}

		prim := Cuboid{Center: e.Position.Add(EntityMiddleOffset), Radius: EntityRadius}
		solids := sample.SolidsNear(prim)

		onGround := false
		for _, s := range solids {
			if r := TimeToImpact(s, prim, [3]float32{smallerThanBlockGoingDown[0], smallerThanBlockGoingDown[1], smallerThanBlockGoingDown[2]}); r.Kind == TtiWillCollide && r.Tti < 2*PlanckLength {
				onGround = true
				break
			}
		}

		raised := prim
		raised.MoveBy(mgl32.Vec3{0, 0, 1})
		inWater := sample.FluidOverlap(raised)

		e.OnGround = onGround
		e.InWater = inWater

		v := e.Velocity
		if inWater {
			v = v.Add(gravityVel.Mul(0.1))
		} else {
			v = v.Add(gravityVel)
		}

		var control mgl32.Vec3
		switch {
		case inWater:
			control = mgl32.Vec3{planar[0] * controlInWater[0], planar[1] * controlInWater[1], 0}
			if e.Jump {
				control[2] = controlInWater[2]
			}
		case onGround:
			control = mgl32.Vec3{planar[0] * EntityAcc[0] * dt, planar[1] * EntityAcc[1] * dt, 0}
			if e.Jump {
				control[2] = EntityAcc[2] * dt * 0.2
			}
		default:
			control = mgl32.Vec3{planar[0] * controlInAir[0], planar[1] * controlInAir[1], 0}
		}
		v = v.Add(control)

		friction := frictionInAir
		if inWater {
			friction = frictionInWater
		} else if onGround {
			friction = frictionOnGround
		}
		v[0] *= float32(math.Pow(float64(friction[0]), float64(dt)))
		v[1] *= float32(math.Pow(float64(friction[1]), float64(dt)))
		v[2] *= float32(math.Pow(float64(friction[2]), float64(dt)))

		m := NewMoveable(e.ID, prim, EntityMass)
		m.OldVelocity = v
		// Velocity starts equal to OldVelocity: MovementTick overwrites it
		// with OldVelocity anyway for whichever moveable it is currently
		// resolving, but the pre-tick value is what other movers need to
		// see of this one when it appears in their frozen "others" slice.
		m.Velocity = v

		ready = append(ready, prepared{state: e, sample: sample, solids: solids})
		movers = append(movers, &m)
	}
	defer func() {
		for _, p := range ready {
			p.sample.Release()
		}
	}()

	// others is a frozen snapshot of every mover's previous-tick state,
	// taken once before the batched resolution call so that resolving one
	// mover never observes another mover's already-updated velocity or
	// position from earlier in the same call — see movement.go's
	// MovementTick doc comment and spec.md §4.7.
	snapshot := make([]Moveable, len(movers))
	for i, m := range movers {
		snapshot[i] = *m
	}
	others := make([]*Moveable, len(snapshot))
	for i := range snapshot {
		others[i] = &snapshot[i]
	}

	solidsByID := make(map[uint64][]Cuboid, len(ready))
	for i, p := range ready {
		solidsByID[movers[i].ID] = p.solids
	}
	lookup := func(id uint64, _ Cuboid) []Cuboid { return solidsByID[id] }

	MovementTick(movers, others, lookup, dt)

	for i, m := range movers {
		e := ready[i].state

		stuck := m.Primitive
		stuck.ScaleBy(0.9)
		for _, s := range ready[i].solids {
			if res, ok := ResolveCol(s, stuck); ok && !res.IsTouch() {
				log.Debug("physics: entity is stuck, lifting", "entity", e.ID)
				m.Primitive.MoveBy(mgl32.Vec3{0, 0, BlockSizePlusSmall})
				break
			}
		}

		wantedPlanar := mgl32.Vec2{m.OldVelocity[0], m.OldVelocity[1]}
		gotPlanar := mgl32.Vec2{m.Velocity[0], m.Velocity[1]}
		if wantedPlanar != gotPlanar {
			hopPrim := m.Primitive
			hopPrim.MoveBy(mgl32.Vec3{0, 0, BlockSizePlusSmall})
			hop := NewMoveable(m.ID, hopPrim, EntityMass)
			hop.OldVelocity = m.OldVelocity
			hop.Velocity = m.OldVelocity
			MovementTick([]*Moveable{&hop}, others, lookup, dt)

			hopPlanar := mgl32.Vec2{hop.Velocity[0], hop.Velocity[1]}
			if hopPlanar == wantedPlanar {
				bump := BlockHopSpeed * dt
				if bump > BlockSizePlusSmall {
					bump = BlockSizePlusSmall
				}
				m.Primitive = hop.Primitive
				m.Velocity = mgl32.Vec3{hop.Velocity[0], hop.Velocity[1], 0}
				m.Primitive.MoveBy(mgl32.Vec3{0, 0, bump})
			}
		}

		e.Position = m.Primitive.Center.Sub(EntityMiddleOffset)
		e.Velocity = m.Velocity
	}
}

func paddingFor(vectors ...mgl32.Vec3) mgl32.Vec3 {
	var pad mgl32.Vec3
	for _, v := range vectors {
		for i := 0; i < 3; i++ {
			need := float32(math.Ceil(float64(abs32(v[i])))) + 2
			if need > pad[i] {
				pad[i] = need
			}
		}
	}
	return pad
}
