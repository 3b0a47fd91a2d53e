// Package physics implements continuous collision detection and the
// per-tick movement and gravity/control integration built on top of it.
// Grounded on common/src/physics/{collision.rs (API surface reverse
// engineered from tests.rs), movement.rs, physics.rs} in the original
// source.
package physics

import "github.com/go-gl/mathgl/mgl32"

// PlanckLength is the smallest movement distance treated as non-zero
// during a movement substep, and the threshold used to classify "on
// ground" contact. Named after the reference's PLANCK_LENGTH constant.
const PlanckLength = 1e-4

// Cuboid is an axis-aligned box collision primitive, defined by its
// center and half-extent along each axis. Grounded on Primitive's cuboid
// variant (Primitive::new_cuboid) referenced throughout
// common/src/physics/tests.rs.
type Cuboid struct {
	Center mgl32.Vec3
	Radius mgl32.Vec3
}

// NewCuboid builds a Cuboid from its center and per-axis radius.
func NewCuboid(center, radius mgl32.Vec3) Cuboid {
	return Cuboid{Center: center, Radius: radius}
}

// Lower returns the box's minimum corner.
func (c Cuboid) Lower() mgl32.Vec3 { return c.Center.Sub(c.Radius) }

// Upper returns the box's maximum corner.
func (c Cuboid) Upper() mgl32.Vec3 { return c.Center.Add(c.Radius) }

// MoveBy translates the cuboid's center by delta.
func (c *Cuboid) MoveBy(delta mgl32.Vec3) { c.Center = c.Center.Add(delta) }

// ScaleBy shrinks (or grows) the cuboid's radius by factor, used by the
// physics tick's "stuck" probe (shrinking the entity box by 0.9 before
// testing for unresolved overlap).
func (c *Cuboid) ScaleBy(factor float32) { c.Radius = c.Radius.Mul(factor) }

// ResolutionCol is the result of a static (non-continuous) overlap test
// between two cuboids: the midpoint of their centers, and the
// least-penetration correction vector. Adding Correction to b's center
// (equivalently, subtracting it from a's) separates the pair to an
// exact touch along the selected axis. Grounded on ResolutionCol in the
// reference (semantics reverse engineered from the resolve_col numeric
// cases in tests.rs).
type ResolutionCol struct {
	Center     mgl32.Vec3
	Correction mgl32.Vec3
}

// IsTouch reports whether the resolution represents a zero-penetration
// boundary touch rather than a genuine overlap.
func (r ResolutionCol) IsTouch() bool {
	return r.Correction == mgl32.Vec3{}
}

// ResolveCol tests whether a and b overlap or touch, returning the
// midpoint of their centers and a correction vector that is non-zero only
// on the least-penetration axis. Returns false if the boxes do not
// intersect on at least one axis.
//
// The tie-break among equally-penetrating axes prefers x, then y, then
// z — see spec.md's collision invariants. This deliberately differs from
// one degenerate case observed in the original Rust test suite (two
// cuboids with identical centers, where the reference implementation
// happens to resolve along z); this implementation instead honors the
// documented x>y>z tie-break uniformly.
func ResolveCol(a, b Cuboid) (ResolutionCol, bool) {
	center := a.Center.Add(b.Center).Mul(0.5)

	moved := b.Center.Sub(a.Center)
	absMoved := mgl32.Vec3{abs32(moved[0]), abs32(moved[1]), abs32(moved[2])}
	sumRadius := a.Radius.Add(b.Radius)
	overlap := sumRadius.Sub(absMoved)

	if overlap[0] < 0 || overlap[1] < 0 || overlap[2] < 0 {
		return ResolutionCol{}, false
	}

	sel := 0
	switch {
	case overlap[0] <= overlap[1] && overlap[0] <= overlap[2]:
		sel = 0
	case overlap[1] <= overlap[0] && overlap[1] <= overlap[2]:
		sel = 1
	default:
		sel = 2
	}

	var correction mgl32.Vec3
	if absMoved[sel] < PlanckLength {
		// Degenerate: centers coincide along the selected axis, so
		// there is no meaningful "moved" direction to follow along it.
		// Push out fully along the selected axis in the positive
		// direction.
		correction[sel] = overlap[sel]
	} else if moved[sel] < 0 {
		correction[sel] = -overlap[sel]
	} else {
		correction[sel] = overlap[sel]
	}

	return ResolutionCol{Center: center, Correction: correction}, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
