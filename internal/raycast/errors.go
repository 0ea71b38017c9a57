package raycast

import "errors"

// Map validation failures. Constructors wrap these with the offending
// coordinates; test with errors.Is.
var (
	ErrEmptyGrid      = errors.New("grid has no cells")
	ErrRaggedRows     = errors.New("grid rows differ in length")
	ErrDimensions     = errors.New("grid data does not match width*height")
	ErrBadCell        = errors.New("grid cell is not a digit")
	ErrCodeOutOfRange = errors.New("grid cell code out of range")
	ErrNotEnclosed    = errors.New("grid border is not solid")
)

// Camera construction failures.
var (
	ErrZeroDirection = errors.New("camera direction is zero")
	ErrBadFOV        = errors.New("camera fov must be within (0, 180) degrees")
	ErrSpawnInWall   = errors.New("camera spawns inside a wall")
)

// Texture set failures.
var (
	ErrTextureSize  = errors.New("texture must be square with a power-of-two size")
	ErrTextureCount = errors.New("texture count does not cover grid materials")
)
