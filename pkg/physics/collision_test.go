package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func closeVec(t *testing.T, got, want mgl32.Vec3, msg string) {
	t.Helper()
	const eps = 1e-3
	for i := 0; i < 3; i++ {
		d := got[i] - want[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			t.Fatalf("%s: got %v want %v", msg, got, want)
		}
	}
}

func TestResolveColSimpleOverlap(t *testing.T) {
	a := NewCuboid(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})
	b := NewCuboid(mgl32.Vec3{1.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})

	res, ok := ResolveCol(a, b)
	if !ok {
		t.Fatal("expected a collision")
	}
	closeVec(t, res.Center, mgl32.Vec3{1, 0.5, 0.5}, "center")
	closeVec(t, res.Correction, mgl32.Vec3{1, 0, 0}, "correction")
}

func TestResolveColTouchIsZeroCorrection(t *testing.T) {
	a := NewCuboid(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5})
	b := NewCuboid(mgl32.Vec3{1.5, 0.5, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5})

	res, ok := ResolveCol(a, b)
	if !ok {
		t.Fatal("expected a touch to be reported as a resolution")
	}
	if !res.IsTouch() {
		t.Fatalf("expected touch, got correction %v", res.Correction)
	}
	closeVec(t, res.Center, mgl32.Vec3{1, 0.5, 0.5}, "center")
}

func TestResolveColNoIntersection(t *testing.T) {
	a := NewCuboid(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})
	b := NewCuboid(mgl32.Vec3{3.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})

	if _, ok := ResolveCol(a, b); ok {
		t.Fatal("expected no collision")
	}
}

func TestResolveColPicksLeastPenetrationAxis(t *testing.T) {
	a := NewCuboid(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10})
	b := NewCuboid(mgl32.Vec3{1, 0.5, 0}, mgl32.Vec3{1, 1, 1})

	res, ok := ResolveCol(a, b)
	if !ok {
		t.Fatal("expected a collision")
	}
	closeVec(t, res.Center, mgl32.Vec3{0.5, 0.25, 0}, "center")
	closeVec(t, res.Correction, mgl32.Vec3{10, 0, 0}, "correction")
}

func TestResolveColZAxisSelected(t *testing.T) {
	a := NewCuboid(mgl32.Vec3{10, 10, 10}, mgl32.Vec3{10, 10, 10})
	b := NewCuboid(mgl32.Vec3{8, 6, 0}, mgl32.Vec3{2, 2, 2})

	res, ok := ResolveCol(a, b)
	if !ok {
		t.Fatal("expected a collision")
	}
	closeVec(t, res.Correction, mgl32.Vec3{0, 0, -2.0}, "correction")
}

func TestResolveColRandomizedCorrectionSettlesToTouch(t *testing.T) {
	cases := []struct {
		a, b Cuboid
	}{
		{NewCuboid(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}), NewCuboid(mgl32.Vec3{0.3, 0.9, -0.2}, mgl32.Vec3{1, 1, 1})},
		{NewCuboid(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{2, 3, 1}), NewCuboid(mgl32.Vec3{6, 4, 5.5}, mgl32.Vec3{1, 1, 1})},
	}
	for _, c := range cases {
		res, ok := ResolveCol(c.a, c.b)
		if !ok {
			t.Fatalf("expected overlap for %+v", c)
		}
		moved := c.b
		moved.MoveBy(res.Correction)
		after, ok := ResolveCol(c.a, moved)
		if !ok {
			t.Fatalf("expected touch after correction for %+v", c)
		}
		if !after.IsTouch() {
			t.Fatalf("expected is_touch after applying correction, correction left: %v", after.Correction)
		}
	}
}
