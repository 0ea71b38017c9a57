package level

import "math/rand"

// Random is the name Load accepts for a freshly generated level.
const Random = "random"

// GenerateOptions shapes a procedurally generated level.
type GenerateOptions struct {
	Width     int
	Height    int
	Segments  int
	MinLen    int
	MaxLen    int
	Thickness int // extra cells on each side of a segment, chosen per segment
	Materials int
	Seed      int64
}

// DefaultGenerateOptions returns a 32x32 map with a dozen wall segments.
func DefaultGenerateOptions(seed int64) GenerateOptions {
	return GenerateOptions{
		Width:     32,
		Height:    32,
		Segments:  12,
		MinLen:    3,
		MaxLen:    12,
		Thickness: 1,
		Materials: len(proceduralNames),
		Seed:      seed,
	}
}

// Generate scatters straight wall segments inside a solid border. The spawn
// cell at the map center and its neighbours are always left open.
func Generate(opts GenerateOptions) (*Level, error) {
	w, h := opts.Width, opts.Height
	materials := max(opts.Materials, 1)
	rng := rand.New(rand.NewSource(opts.Seed))

	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x] = 1 + rng.Intn(materials)
			}
		}
	}

	sx, sy := w/2, h/2
	setWall := func(x, y, code int) {
		if x <= 0 || x >= w-1 || y <= 0 || y >= h-1 {
			return
		}
		if abs(x-sx) <= 1 && abs(y-sy) <= 1 {
			return
		}
		rows[y][x] = code
	}

	lengthRange := max(opts.MaxLen-opts.MinLen+1, 1)
	for s := 0; s < opts.Segments && w > 4 && h > 4; s++ {
		length := opts.MinLen + rng.Intn(lengthRange)
		thickness := 0
		if opts.Thickness > 0 {
			thickness = rng.Intn(opts.Thickness + 1)
		}
		code := 1 + rng.Intn(materials)
		dx, dy := 0, 1
		if rng.Intn(2) == 0 {
			dx, dy = 1, 0
		}
		perpX, perpY := dy, dx
		cx, cy := rng.Intn(w-4)+2, rng.Intn(h-4)+2
		for l := 0; l < length; l++ {
			if cx <= 0 || cx >= w-1 || cy <= 0 || cy >= h-1 {
				break
			}
			for t := -thickness; t <= thickness; t++ {
				setWall(cx+perpX*t, cy+perpY*t, code)
			}
			cx += dx
			cy += dy
		}
	}

	f := File{
		Name:      Random,
		Rows:      rows,
		Materials: materials,
		Spawn:     Point{X: float64(sx) + 0.5, Y: float64(sy) + 0.5},
		Direction: Point{X: -1},
	}
	return f.build(nil)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
