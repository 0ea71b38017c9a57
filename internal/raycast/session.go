package raycast

// Input is one tick of player intent.
type Input struct {
	Axis Vec2    // X = strafe right, Y = forward; components in [-1, 1]
	Turn float64 // radians, already scaled by sensitivity and elapsed time
}

// Session owns the map and the camera between render passes.
type Session struct {
	Grid   *Grid
	Camera *Camera
}

// NewSession pairs a grid with a camera placed on it.
func NewSession(grid *Grid, cam *Camera) *Session {
	return &Session{Grid: grid, Camera: cam}
}

// Step applies one tick of input: rotate first, then move at the camera's
// movement speed.
func (s *Session) Step(in Input, dt float64) {
	s.Camera.Rotate(in.Turn)
	axis := in.Axis
	if !axis.IsZero() {
		axis = axis.Normalized()
	}
	s.Camera.Move(axis, s.Camera.MoveSpeed, dt)
}
