package mural

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// outOfBoundsFactor is how far past the viewport a projected point may land
// before it is rejected. Generous enough to let trails taper off-canvas
// while discarding numerically broken or absurdly distant points.
const outOfBoundsFactor = 2.0

// minClipW guards the perspective division. Points at or behind the camera
// plane (clip w near or below zero) would mirror onto the viewport after
// division, so they are rejected like non-finite results.
const minClipW = 1e-9

// Project transforms a world-space position through the camera's
// view-projection matrix to pixel coordinates. Screen Y grows downward.
// It reports false when the result is non-finite, behind the camera, or
// further than outOfBoundsFactor x max(viewport dimensions) off-screen.
func Project(world Vec3, cam *Camera, vp Viewport) (Vec2, bool) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Vec2{}, false
	}
	if !isFinite(world.X) || !isFinite(world.Y) || !isFinite(world.Z) {
		return Vec2{}, false
	}

	m := cam.viewProjection(vp.Width / vp.Height)
	clip := m.Mul4x1(mgl64.Vec4{world.X, world.Y, world.Z, 1})
	w := clip.W()
	if !isFinite(w) || w < minClipW {
		return Vec2{}, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	if !isFinite(ndcX) || !isFinite(ndcY) {
		return Vec2{}, false
	}

	screen := Vec2{
		X: (ndcX*0.5 + 0.5) * vp.Width,
		Y: (ndcY*-0.5 + 0.5) * vp.Height,
	}

	limit := outOfBoundsFactor * vp.maxDim()
	if math.Abs(screen.X) > limit || math.Abs(screen.Y) > limit {
		return Vec2{}, false
	}
	return screen, true
}

// ScreenVelocity projects both the current and previous world positions and
// divides their screen-space difference by the elapsed time in seconds.
// It reports false when either projection is rejected or elapsed is not a
// positive finite duration.
func ScreenVelocity(cur, prev Vec3, elapsed float64, cam *Camera, vp Viewport) (Vec2, bool) {
	if !isFinite(elapsed) || elapsed <= 0 {
		return Vec2{}, false
	}
	a, ok := Project(cur, cam, vp)
	if !ok {
		return Vec2{}, false
	}
	b, ok := Project(prev, cam, vp)
	if !ok {
		return Vec2{}, false
	}
	return a.Sub(b).Scale(1 / elapsed), true
}
