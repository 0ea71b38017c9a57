package raycast

import (
	"fmt"
	"math"
)

// Camera holds the player position, unit view direction and the projection
// plane derived from the field of view. It is owned by one session and
// mutated only between render passes.
type Camera struct {
	Pos       Vec2
	Dir       Vec2
	Plane     Vec2
	MoveSpeed float64
	RotSpeed  float64

	fov     float64
	halfTan float64
	grid    *Grid
}

// NewCamera places a camera on grid. dir is normalized; fovDeg is the
// horizontal field of view in degrees.
func NewCamera(grid *Grid, pos, dir Vec2, fovDeg, moveSpeed, rotSpeed float64) (*Camera, error) {
	if dir.IsZero() {
		return nil, ErrZeroDirection
	}
	if fovDeg <= 0 || fovDeg >= 180 {
		return nil, fmt.Errorf("fov %.2f: %w", fovDeg, ErrBadFOV)
	}
	if grid.IsWall(pos.X, pos.Y) {
		return nil, fmt.Errorf("spawn (%.2f,%.2f): %w", pos.X, pos.Y, ErrSpawnInWall)
	}
	c := &Camera{
		Pos:       pos,
		Dir:       dir.Normalized(),
		MoveSpeed: moveSpeed,
		RotSpeed:  rotSpeed,
		grid:      grid,
	}
	c.SetFOV(fovDeg)
	return c, nil
}

// FOV returns the horizontal field of view in degrees.
func (c *Camera) FOV() float64 { return c.fov }

// Grid returns the map the camera collides against.
func (c *Camera) Grid() *Grid { return c.grid }

// SetFOV changes the field of view and recomputes the projection plane.
func (c *Camera) SetFOV(deg float64) {
	c.fov = deg
	c.halfTan = math.Tan(deg * math.Pi / 180 / 2)
	c.updatePlane()
}

// updatePlane keeps the plane perpendicular to Dir with length tan(fov/2).
func (c *Camera) updatePlane() {
	c.Plane = c.Dir.Perp().Mul(c.halfTan)
}

// Rotate turns the view direction by angularDelta radians.
func (c *Camera) Rotate(angularDelta float64) {
	if angularDelta == 0 {
		return
	}
	c.Dir = c.Dir.Rotate(angularDelta).Normalized()
	c.updatePlane()
}

// Move steps the camera along a local input axis (X = right, Y = forward).
// The whole step is rejected when the destination cell is solid; there is no
// sliding along walls. Move reports whether the position changed.
func (c *Camera) Move(axis Vec2, speed, dt float64) bool {
	if axis.IsZero() || speed == 0 || dt == 0 {
		return false
	}
	world := c.Dir.Mul(axis.Y).Add(c.Dir.Perp().Mul(axis.X))
	next := c.Pos.Add(world.Mul(speed * dt))
	if c.grid.IsWall(next.X, next.Y) {
		return false
	}
	c.Pos = next
	return true
}
