package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRoom(t *testing.T) *Grid {
	t.Helper()
	return mustGrid(t, [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
}

func TestNewCameraRejects(t *testing.T) {
	g := openRoom(t)

	_, err := NewCamera(g, Vec2{X: 2.5, Y: 2.5}, Vec2{}, 70, 1, 1)
	assert.ErrorIs(t, err, ErrZeroDirection)

	_, err = NewCamera(g, Vec2{X: 2.5, Y: 2.5}, Vec2{X: 1}, 180, 1, 1)
	assert.ErrorIs(t, err, ErrBadFOV)

	_, err = NewCamera(g, Vec2{X: 0.5, Y: 2.5}, Vec2{X: 1}, 70, 1, 1)
	assert.ErrorIs(t, err, ErrSpawnInWall)
}

func TestPlanePerpendicularToDirection(t *testing.T) {
	g := openRoom(t)
	for _, fov := range []float64{30, 66, 70, 90, 120} {
		cam, err := NewCamera(g, Vec2{X: 2.5, Y: 2.5}, Vec2{X: -1}, fov, 1, 1)
		require.NoError(t, err)
		want := math.Tan(fov * math.Pi / 360)
		for i := 0; i < 64; i++ {
			cam.Rotate(0.173)
			assert.InDelta(t, 1, cam.Dir.Len(), 1e-12, "dir stays unit length")
			assert.InDelta(t, 0, cam.Dir.Dot(cam.Plane), 1e-12)
			assert.InDelta(t, want, cam.Plane.Len(), 1e-12)
		}
	}
}

func TestPlaneOrientation(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 2.5, Y: 2.5}, Vec2{X: -1}, 90, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, cam.Plane.X, 1e-12)
	assert.InDelta(t, 1, cam.Plane.Y, 1e-12)
}

func TestMoveRejectsWall(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 1.5, Y: 2.5}, Vec2{X: -1}, 70, 1, 1)
	require.NoError(t, err)

	moved := cam.Move(Vec2{Y: 1}, 1, 1)
	assert.False(t, moved)
	assert.Equal(t, Vec2{X: 1.5, Y: 2.5}, cam.Pos)

	moved = cam.Move(Vec2{Y: -1}, 1, 1)
	assert.True(t, moved)
	assert.InDelta(t, 2.5, cam.Pos.X, 1e-12)
	assert.InDelta(t, 2.5, cam.Pos.Y, 1e-12)
}

func TestMoveExactStep(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 1.5, Y: 1.5}, Vec2{X: 1}, 70, 2.5, 1)
	require.NoError(t, err)

	require.True(t, cam.Move(Vec2{Y: 1}, 2.5, 0.2))
	assert.InDelta(t, 2.0, cam.Pos.X, 1e-12)
	assert.InDelta(t, 1.5, cam.Pos.Y, 1e-12)

	// Right of +X is (0,-1) with the (y,-x) plane convention.
	require.True(t, cam.Move(Vec2{X: -1}, 1, 0.5))
	assert.InDelta(t, 2.0, cam.Pos.X, 1e-12)
	assert.InDelta(t, 2.0, cam.Pos.Y, 1e-12)
}

func TestMoveDiagonalIntoCornerBlocked(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 1.2, Y: 1.2}, Vec2{X: -1}, 70, 1, 1)
	require.NoError(t, err)
	axis := Vec2{X: -1, Y: 1}.Normalized()
	assert.False(t, cam.Move(axis, 1, 1))
	assert.Equal(t, Vec2{X: 1.2, Y: 1.2}, cam.Pos)
}

func TestCameraIdempotentNoops(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 2.5, Y: 2.5}, Vec2{X: 0.6, Y: 0.8}, 70, 1, 1)
	require.NoError(t, err)
	before := *cam

	cam.Rotate(0)
	assert.False(t, cam.Move(Vec2{}, 1, 0.016))
	assert.False(t, cam.Move(Vec2{Y: 1}, 1, 0))

	assert.Equal(t, before.Pos, cam.Pos)
	assert.Equal(t, before.Dir, cam.Dir)
	assert.Equal(t, before.Plane, cam.Plane)
}

func TestSetFOV(t *testing.T) {
	cam, err := NewCamera(openRoom(t), Vec2{X: 2.5, Y: 2.5}, Vec2{X: 1}, 70, 1, 1)
	require.NoError(t, err)
	cam.SetFOV(90)
	assert.Equal(t, 90.0, cam.FOV())
	assert.InDelta(t, 1, cam.Plane.Len(), 1e-12)
}
