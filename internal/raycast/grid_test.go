package raycast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(`
		1111
		1002
		1301
		1111`, 4, 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 3, g.Materials())
	assert.False(t, g.IsWallCell(1, 1))
	assert.True(t, g.IsWallCell(3, 1))
	assert.Equal(t, 1, g.MaterialAt(3, 1))
	assert.Equal(t, 2, g.MaterialAt(1, 2))
	assert.Equal(t, 0, g.MaterialAt(0, 0))
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		w, h   int
		mats   int
		target error
	}{
		{"short data", "111101111", 3, 4, 1, ErrDimensions},
		{"letter", "1111a1111", 3, 3, 1, ErrBadCell},
		{"open border", "111001111", 3, 3, 1, ErrNotEnclosed},
		{"code too high", "111101191", 3, 3, 1, ErrCodeOutOfRange},
		{"no size", "", 0, 0, 1, ErrEmptyGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.data, tt.w, tt.h, tt.mats)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNewGridErrors(t *testing.T) {
	_, err := NewGrid([][]int{{1, 1, 1}, {1, 0}, {1, 1, 1}}, 1)
	assert.ErrorIs(t, err, ErrRaggedRows)

	_, err = NewGrid(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGrid([][]int{{1, 1, 1}, {1, -1, 1}, {1, 1, 1}}, 1)
	assert.ErrorIs(t, err, ErrCodeOutOfRange)
}

func TestGridIsWall(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})

	assert.False(t, g.IsWall(1.99, 1.01))
	assert.True(t, g.IsWall(2.0, 1.5))
	assert.True(t, g.IsWallCell(-1, 1), "outside the grid counts as solid")
	assert.True(t, g.IsWallCell(1, 3))
}

func TestGridCellsIsCopy(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	cells := g.Cells()
	cells[4] = 1
	assert.False(t, g.IsWallCell(1, 1))
}

func mustGrid(t *testing.T, rows [][]int) *Grid {
	t.Helper()
	max := 0
	for _, row := range rows {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}
	g, err := NewGrid(rows, max)
	require.NoError(t, err)
	return g
}
