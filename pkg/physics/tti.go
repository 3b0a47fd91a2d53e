package physics

import "math"

// TtiKind discriminates the variants of ResolutionTti.
type TtiKind int

const (
	// TtiNone means the moving box does not touch or overlap the static
	// one within this tick's displacement (contact, if any, lies before
	// the tick or beyond its end).
	TtiNone TtiKind = iota
	// TtiWillCollide means first contact happens at a positive time
	// within this tick, 0 < Tti <= 1.
	TtiWillCollide
	// TtiTouching means the boxes maintain a persistent zero-width
	// contact along at least one axis (a grazing, non-penetrating touch)
	// for the duration of the valid time window.
	TtiTouching
	// TtiOverlapping means the boxes already interpenetrate at t=0 and
	// have for Since time units.
	TtiOverlapping
)

// ResolutionTti is the result of a continuous (swept) collision test
// between a static cuboid and one displaced by a velocity vector over
// one tick. Grounded on ResolutionTti, reverse engineered from the
// numeric cases in common/src/physics/tests.rs (see DESIGN.md — the
// actual collision.rs defining this type is absent from the corpus).
type ResolutionTti struct {
	Kind   TtiKind
	Tti    float32 // valid when Kind == TtiWillCollide
	Since  float32 // valid when Kind == TtiOverlapping
	Normal [3]float32
}

const inf = float32(math.MaxFloat32)

// TimeToImpact computes when (if ever) a, held fixed, is first touched or
// overlapped by b as b is displaced by vel over the course of one tick.
// vel is measured in "ticks": Tti == 1.0 means contact exactly at the end
// of the full displacement. Contact further out than 1.0 is reported as
// TtiNone, and contact that already began at or before the start of the
// tick is reported via the Overlapping variant.
func TimeToImpact(a, b Cuboid, vel [3]float32) ResolutionTti {
	aLo, aHi := a.Lower(), a.Upper()
	bLo, bHi := b.Lower(), b.Upper()

	enter := float32(-inf)
	exit := float32(inf)
	var normal [3]float32
	touchAxis := -1
	var touchNormal float32

	for i := 0; i < 3; i++ {
		v := vel[i]
		if v == 0 {
			width := min32(aHi[i], bHi[i]) - max32(aLo[i], bLo[i])
			if width < 0 {
				return ResolutionTti{Kind: TtiNone}
			}
			if width == 0 {
				touchAxis = i
				if bLo[i] >= aHi[i] {
					touchNormal = 1
				} else {
					touchNormal = -1
				}
			}
			continue
		}

		c1 := (aHi[i] - bLo[i]) / v // b's leading (low) face meets a's high face
		c2 := (aLo[i] - bHi[i]) / v // b's trailing (high) face meets a's low face

		var enterI, exitI, normalI float32
		if c1 <= c2 {
			enterI, normalI = c1, 1
			exitI = c2
		} else {
			enterI, normalI = c2, -1
			exitI = c1
		}

		if enterI > enter {
			enter = enterI
			normal = [3]float32{}
			normal[i] = normalI
		} else if enterI == enter {
			normal[i] += normalI
		}
		if exitI < exit {
			exit = exitI
		}
	}

	if enter > exit || exit <= 0 {
		return ResolutionTti{Kind: TtiNone}
	}

	if touchAxis >= 0 {
		n := [3]float32{}
		n[touchAxis] = touchNormal
		return ResolutionTti{Kind: TtiTouching, Normal: n}
	}

	if enter <= 0 {
		return ResolutionTti{Kind: TtiOverlapping, Since: -enter}
	}

	// spec.md §4.6/§8 testable property 5: Tti is only ever reported in
	// (0,1] — one tick's worth of the supplied displacement. Contact
	// further out than that isn't "will collide" yet; the caller re-queries
	// next tick with a fresh displacement instead.
	if enter > 1 {
		return ResolutionTti{Kind: TtiNone}
	}

	return ResolutionTti{Kind: TtiWillCollide, Tti: enter, Normal: normal}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
