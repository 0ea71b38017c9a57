package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastAlongPositiveX(t *testing.T) {
	// Corridor along row 1 closed by a wall at x = 9.
	g, err := ParseGrid(`
		1111111111
		1000000002
		1111111111`, 10, 3, 2)
	require.NoError(t, err)

	for _, px := range []float64{1.0, 1.25, 3.5, 8.75} {
		pos := Vec2{X: px, Y: 1.5}
		// Column 1 of 2 has cameraX = 0, so the ray is exactly the view direction.
		hit := CastColumn(g, pos, Vec2{X: 1}, Vec2{Y: -0.7}, 1, 2)
		assert.InDelta(t, 9-px, hit.Distance, 1e-12)
		assert.Equal(t, SideX, hit.Side)
		assert.Equal(t, 9, hit.CellX)
		assert.Equal(t, 1, hit.CellY)
		assert.Equal(t, 1, hit.Material)
		assert.InDelta(t, 0.5, hit.WallX, 1e-12)
	}
}

func TestCastZeroComponentUsesInfinity(t *testing.T) {
	g := openRoom(t)
	// Straight down +Y: ray.X == 0 must never win the step comparison.
	hit := CastColumn(g, Vec2{X: 2.5, Y: 1.25}, Vec2{Y: 1}, Vec2{X: -0.5}, 1, 2)
	assert.Equal(t, SideY, hit.Side)
	assert.Equal(t, 2, hit.CellX)
	assert.Equal(t, 4, hit.CellY)
	assert.InDelta(t, 2.75, hit.Distance, 1e-12)
	assert.False(t, math.IsNaN(hit.WallX))
}

func TestCastSingleOpenCell(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 0, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
	})
	cam, err := NewCamera(g, Vec2{X: 2.5, Y: 2.5}, Vec2{X: 1}, 70, 1, 1)
	require.NoError(t, err)

	const width = 8
	hits := make([]Hit, width)
	require.NoError(t, DDACaster{Grid: g}.CastColumns(cam, hits))

	for x, hit := range hits {
		ray := RayDir(cam.Dir, cam.Plane, x, width)
		tx, ty := math.Inf(1), math.Inf(1)
		if ray.X != 0 {
			tx = 0.5 / math.Abs(ray.X)
		}
		if ray.Y != 0 {
			ty = 0.5 / math.Abs(ray.Y)
		}
		want := math.Min(tx, ty)
		assert.InDelta(t, want, hit.Distance, 1e-4, "column %d", x)

		// The hit point lies on the open cell's boundary at Euclidean
		// distance want*|ray| from the center.
		p := cam.Pos.Add(ray.Mul(hit.Distance))
		assert.InDelta(t, want*ray.Len(), p.Sub(cam.Pos).Len(), 1e-4, "column %d", x)
		assert.GreaterOrEqual(t, hit.WallX, 0.0)
		assert.Less(t, hit.WallX, 1.0)
	}
}

func TestCastPerpendicularDistanceHasNoFisheye(t *testing.T) {
	// Facing a flat wall, every column reports the same perpendicular distance.
	g, err := ParseGrid(`
		111111111
		100000001
		100000001
		100000001
		100000001
		100000001
		111111111`, 9, 7, 1)
	require.NoError(t, err)
	cam, err := NewCamera(g, Vec2{X: 4.5, Y: 5.5}, Vec2{Y: -1}, 60, 1, 1)
	require.NoError(t, err)

	hits := make([]Hit, 16)
	require.NoError(t, DDACaster{Grid: g}.CastColumns(cam, hits))
	for x, hit := range hits {
		assert.Equal(t, SideY, hit.Side, "column %d", x)
		assert.InDelta(t, 4.5, hit.Distance, 1e-9, "column %d", x)
	}
}

func TestMaterialFromCode(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 1, 1},
		{4, 0, 0, 3},
		{1, 1, 1, 1},
	})
	hit := CastColumn(g, Vec2{X: 1.5, Y: 1.5}, Vec2{X: 1}, Vec2{Y: -1}, 1, 2)
	assert.Equal(t, 2, hit.Material)
	hit = CastColumn(g, Vec2{X: 2.5, Y: 1.5}, Vec2{X: -1}, Vec2{Y: 1}, 1, 2)
	assert.Equal(t, 3, hit.Material)
}
