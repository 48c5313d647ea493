package mural

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera in world space. The frame controller holds
// a camera reference and passes it explicitly into projection each frame;
// there is no implicit global camera.
type Camera struct {
	// Position is the camera location in world space.
	Position Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Up is the camera's up direction. Zero means +Y.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	viewProj     mgl64.Mat4
	cachedAspect float64
	dirty        bool
}

// NewCamera creates a camera with common defaults: 75 degree FOV, near 0.1,
// far 1000, positioned on +Z looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position: Vec3{0, 0, 10},
		Target:   Vec3{0, 0, 0},
		Up:       Vec3{0, 1, 0},
		FOV:      75,
		Near:     0.1,
		Far:      1000,
		dirty:    true,
	}
}

// SetPosition moves the camera and marks the cached matrix dirty.
func (c *Camera) SetPosition(p Vec3) {
	c.Position = p
	c.dirty = true
}

// LookAt points the camera at a world-space target and marks it dirty.
func (c *Camera) LookAt(t Vec3) {
	c.Target = t
	c.dirty = true
}

// MarkDirty forces recomputation of the view-projection matrix.
// Call after bulk-setting fields directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// viewProjection returns the cached view-projection matrix for the given
// aspect ratio, recomputing it when the camera moved or the aspect changed.
func (c *Camera) viewProjection(aspect float64) mgl64.Mat4 {
	if !c.dirty && aspect == c.cachedAspect {
		return c.viewProj
	}
	c.dirty = false
	c.cachedAspect = aspect

	up := c.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	view := mgl64.LookAtV(
		mgl64.Vec3{c.Position.X, c.Position.Y, c.Position.Z},
		mgl64.Vec3{c.Target.X, c.Target.Y, c.Target.Z},
		mgl64.Vec3{up.X, up.Y, up.Z},
	)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = proj.Mul4(view)
	return c.viewProj
}
