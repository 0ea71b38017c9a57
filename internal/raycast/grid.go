package raycast

import (
	"fmt"
	"unicode"
)

// Cell is an integer coordinate on the map grid.
type Cell struct {
	X int
	Y int
}

// Grid is an immutable row-major occupancy/material map. Code 0 is open
// floor; a code c >= 1 is a wall using material c-1.
type Grid struct {
	width     int
	height    int
	materials int
	cells     []int
}

// NewGrid builds a grid from a 2D literal indexed rows[y][x].
func NewGrid(rows [][]int, materials int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	cells := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedRows)
		}
		cells = append(cells, row...)
	}
	return newGrid(width, len(rows), materials, cells)
}

// ParseGrid builds a grid from a flat string of digits laid out row-major.
// Whitespace is ignored so multi-line literals can be used directly.
func ParseGrid(data string, width, height, materials int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	cells := make([]int, 0, width*height)
	for _, r := range data {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' {
			i := len(cells)
			return nil, fmt.Errorf("cell (%d,%d) is %q: %w", i%width, i/width, r, ErrBadCell)
		}
		cells = append(cells, int(r-'0'))
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%d cells for %dx%d: %w", len(cells), width, height, ErrDimensions)
	}
	return newGrid(width, height, materials, cells)
}

// newGrid validates the cell codes and the solid border before taking
// ownership of cells.
func newGrid(width, height, materials int, cells []int) (*Grid, error) {
	g := &Grid{width: width, height: height, materials: materials, cells: cells}
	for i, code := range cells {
		if code < 0 || code > materials {
			return nil, fmt.Errorf("cell (%d,%d) code %d not in [0,%d]: %w",
				i%width, i/width, code, materials, ErrCodeOutOfRange)
		}
	}
	for _, c := range g.borderCells() {
		if g.cells[c.Y*width+c.X] == 0 {
			return nil, fmt.Errorf("cell (%d,%d) is open: %w", c.X, c.Y, ErrNotEnclosed)
		}
	}
	return g, nil
}

// borderCells lists the perimeter cells that must be solid for every ray to
// terminate.
func (g *Grid) borderCells() []Cell {
	points := make([]Cell, 0, 2*(g.width+g.height))
	for x := 0; x < g.width; x++ {
		points = append(points, Cell{X: x, Y: 0})
		points = append(points, Cell{X: x, Y: g.height - 1})
	}
	for y := 1; y < g.height-1; y++ {
		points = append(points, Cell{X: 0, Y: y})
		points = append(points, Cell{X: g.width - 1, Y: y})
	}
	return points
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Materials returns the highest material count a cell code may reference.
func (g *Grid) Materials() int { return g.materials }

// IsWall reports whether the cell containing the truncated point is solid.
func (g *Grid) IsWall(x, y float64) bool {
	return g.IsWallCell(int(x), int(y))
}

// IsWallCell reports whether the cell is solid. Cells outside the grid
// count as walls.
func (g *Grid) IsWallCell(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return true
	}
	return g.cells[y*g.width+x] > 0
}

// MaterialAt returns the material index of a wall cell. Only meaningful
// where IsWallCell is true.
func (g *Grid) MaterialAt(x, y int) int {
	return g.cells[y*g.width+x] - 1
}

// Cells returns a copy of the row-major cell codes.
func (g *Grid) Cells() []int {
	out := make([]int, len(g.cells))
	copy(out, g.cells)
	return out
}
