package raycast

import "math"

// Side identifies which grid axis the final DDA step crossed.
type Side uint8

const (
	// SideX means the ray crossed a vertical grid line (stepped along X).
	SideX Side = iota
	// SideY means the ray crossed a horizontal grid line (stepped along Y).
	SideY
)

func (s Side) String() string {
	if s == SideY {
		return "y"
	}
	return "x"
}

// Hit is the result of casting one screen column.
type Hit struct {
	Distance float64 // perpendicular to the camera plane
	Side     Side
	Material int
	WallX    float64 // position across the struck face, [0,1)
	CellX    int
	CellY    int
	RayDir   Vec2
}

// ColumnCaster fills hits with one Hit per screen column for the camera.
type ColumnCaster interface {
	CastColumns(cam *Camera, hits []Hit) error
}

// DDACaster casts columns on the CPU against a grid.
type DDACaster struct {
	Grid *Grid
}

// CastColumns implements ColumnCaster.
func (d DDACaster) CastColumns(cam *Camera, hits []Hit) error {
	CastRange(d.Grid, cam.Pos, cam.Dir, cam.Plane, hits, 0, len(hits))
	return nil
}

// CastRange casts columns [from, to) of a len(hits)-wide screen.
func CastRange(grid *Grid, pos, dir, plane Vec2, hits []Hit, from, to int) {
	width := len(hits)
	for x := from; x < to; x++ {
		hits[x] = CastColumn(grid, pos, dir, plane, x, width)
	}
}

// RayDir returns the ray direction for column x of a width-column screen.
func RayDir(dir, plane Vec2, x, width int) Vec2 {
	cameraX := 2*float64(x)/float64(width) - 1
	return dir.Add(plane.Mul(cameraX))
}

// CastColumn walks the grid from pos along the ray of column x until it
// enters a solid cell. Grids are enclosed by construction, so every ray
// stops on the border at the latest.
func CastColumn(grid *Grid, pos, dir, plane Vec2, x, width int) Hit {
	ray := RayDir(dir, plane, x, width)

	mapX, mapY := int(pos.X), int(pos.Y)

	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if ray.X != 0 {
		deltaX = math.Abs(1 / ray.X)
	}
	if ray.Y != 0 {
		deltaY = math.Abs(1 / ray.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if ray.X < 0 {
		stepX = -1
		sideX = (pos.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) - pos.X + 1) * deltaX
	}
	if ray.Y < 0 {
		stepY = -1
		sideY = (pos.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) - pos.Y + 1) * deltaY
	}

	side := SideX
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideY
		}
		if grid.IsWallCell(mapX, mapY) {
			break
		}
	}

	var dist, wallX float64
	if side == SideY {
		dist = sideY - deltaY
		wallX = pos.X + dist*ray.X
	} else {
		dist = sideX - deltaX
		wallX = pos.Y + dist*ray.Y
	}
	wallX -= math.Floor(wallX)

	material := -1
	if mapX >= 0 && mapX < grid.width && mapY >= 0 && mapY < grid.height {
		material = grid.MaterialAt(mapX, mapY)
	}
	return Hit{
		Distance: dist,
		Side:     side,
		Material: material,
		WallX:    wallX,
		CellX:    mapX,
		CellY:    mapY,
		RayDir:   ray,
	}
}
