package mural

import (
	"math"
	"testing"
)

func testCamera() *Camera {
	c := NewCamera()
	c.SetPosition(Vec3{0, 0, 10})
	c.LookAt(Vec3{0, 0, 0})
	return c
}

func TestProjectLookAtTargetCentersViewport(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	screen, ok := Project(cam.Target, cam, vp)
	if !ok {
		t.Fatal("projecting the lookAt target was rejected")
	}
	if math.Abs(screen.X-400) > 1 || math.Abs(screen.Y-300) > 1 {
		t.Errorf("target projected to (%v, %v), want viewport center (400, 300) within 1px", screen.X, screen.Y)
	}
}

func TestProjectYFlipped(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	// World +Y is up; screen Y grows downward, so a point above the target
	// must land above (smaller Y than) the center.
	up, ok := Project(Vec3{0, 1, 0}, cam, vp)
	if !ok {
		t.Fatal("projection rejected")
	}
	if up.Y >= 300 {
		t.Errorf("point above the target projected to screen Y %v, want < 300", up.Y)
	}
}

func TestProjectRejectsNonFinite(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	for _, world := range []Vec3{
		{math.NaN(), 0, 0},
		{0, math.Inf(1), 0},
		{0, 0, math.Inf(-1)},
	} {
		if _, ok := Project(world, cam, vp); ok {
			t.Errorf("non-finite position %+v was not rejected", world)
		}
	}
}

func TestProjectRejectsBehindCamera(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	if _, ok := Project(Vec3{0, 0, 20}, cam, vp); ok {
		t.Error("point behind the camera was not rejected")
	}
}

func TestProjectRejectsFarOutOfBounds(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	// Just in front of the camera but far to the side: projects to an
	// absurd pixel coordinate well past 2*max(w, h).
	if _, ok := Project(Vec3{500, 0, 9.5}, cam, vp); ok {
		t.Error("far out-of-bounds point was not rejected")
	}
}

func TestProjectAllowsGenerousOverscan(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	// A point modestly off-screen must still project so trails can taper
	// off-canvas.
	screen, ok := Project(Vec3{15, 0, 0}, cam, vp)
	if !ok {
		t.Fatal("modestly off-screen point rejected")
	}
	if screen.X <= vp.Width {
		t.Errorf("point projected to %v, expected past the right edge", screen.X)
	}
}

func TestProjectZeroViewportRejected(t *testing.T) {
	cam := testCamera()
	if _, ok := Project(Vec3{0, 0, 0}, cam, Viewport{}); ok {
		t.Error("zero viewport must reject all projections")
	}
}

func TestScreenVelocity(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}

	v, ok := ScreenVelocity(Vec3{1, 0, 0}, Vec3{0, 0, 0}, 0.5, cam, vp)
	if !ok {
		t.Fatal("screen velocity rejected")
	}
	if v.X <= 0 {
		t.Errorf("moving +X should yield positive screen X velocity, got %+v", v)
	}

	a, _ := Project(Vec3{1, 0, 0}, cam, vp)
	b, _ := Project(Vec3{0, 0, 0}, cam, vp)
	want := a.Sub(b).Scale(2) // elapsed 0.5s
	if math.Abs(v.X-want.X) > 1e-9 || math.Abs(v.Y-want.Y) > 1e-9 {
		t.Errorf("screen velocity = %+v, want %+v", v, want)
	}
}

func TestScreenVelocityInvalidElapsed(t *testing.T) {
	cam := testCamera()
	vp := Viewport{Width: 800, Height: 600}
	if _, ok := ScreenVelocity(Vec3{1, 0, 0}, Vec3{}, 0, cam, vp); ok {
		t.Error("zero elapsed must be rejected")
	}
}

func TestCameraMatrixCaching(t *testing.T) {
	cam := testCamera()
	m1 := cam.viewProjection(800.0 / 600.0)

	// Direct field mutation without MarkDirty keeps the cached matrix.
	cam.Position = Vec3{5, 5, 5}
	m2 := cam.viewProjection(800.0 / 600.0)
	if m1 != m2 {
		t.Error("matrix recomputed without a dirty mark")
	}

	cam.MarkDirty()
	m3 := cam.viewProjection(800.0 / 600.0)
	if m1 == m3 {
		t.Error("matrix not recomputed after MarkDirty")
	}

	// Aspect change forces recomputation even when clean.
	m4 := cam.viewProjection(2.0)
	if m3 == m4 {
		t.Error("matrix not recomputed after aspect change")
	}
}
