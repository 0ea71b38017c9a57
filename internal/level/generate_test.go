package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/internal/raycast"
)

func TestGenerateIsEnclosedAndPlayable(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		lvl, err := Generate(DefaultGenerateOptions(seed))
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, 32, lvl.Grid.Width())
		assert.Equal(t, 32, lvl.Grid.Height())

		s, err := lvl.NewSession(0)
		require.NoError(t, err, "seed %d", seed)
		for _, d := range []raycast.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			p := s.Camera.Pos.Add(d)
			assert.False(t, lvl.Grid.IsWall(p.X, p.Y), "seed %d: neighbour %v of spawn is solid", seed, d)
		}

		set, err := lvl.Textures(16)
		require.NoError(t, err)
		assert.Equal(t, lvl.Grid.Materials(), set.Len())
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(DefaultGenerateOptions(42))
	require.NoError(t, err)
	b, err := Generate(DefaultGenerateOptions(42))
	require.NoError(t, err)
	assert.Equal(t, a.Grid.Cells(), b.Grid.Cells())
}

func TestGenerateWallSegments(t *testing.T) {
	opts := DefaultGenerateOptions(7)
	opts.Segments = 0
	empty, err := Generate(opts)
	require.NoError(t, err)
	interior := func(l *Level) int {
		n := 0
		for y := 1; y < l.Grid.Height()-1; y++ {
			for x := 1; x < l.Grid.Width()-1; x++ {
				if l.Grid.IsWallCell(x, y) {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, interior(empty))

	opts.Segments = 30
	busy, err := Generate(opts)
	require.NoError(t, err)
	assert.Positive(t, interior(busy))
}

func TestLoadRandom(t *testing.T) {
	lvl, err := Load(Random)
	require.NoError(t, err)
	assert.Equal(t, Random, lvl.Name)
}
