package main

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raycaster/internal/raycast"
)

// enableAutoWalk schedules scripted movement for a limited duration.
func (g *Game) enableAutoWalk(duration time.Duration) {
	g.autoWalk = true
	g.autoWalkDeadline = time.Now().Add(duration)
	g.autoWalkFrames = 0
}

// input selects either scripted or manual movement for this tick.
func (g *Game) input(dt float64) raycast.Input {
	if g.autoWalk {
		if time.Now().After(g.autoWalkDeadline) {
			g.autoWalk = false
			return raycast.Input{}
		}
		return g.autoWalkInput(dt)
	}
	return g.manualInput(dt)
}

// manualInput combines the WASD axis with mouse and arrow-key rotation.
func (g *Game) manualInput(dt float64) raycast.Input {
	var in raycast.Input
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Axis.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Axis.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Axis.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Axis.X++
	}

	rot := g.session.Camera.RotSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.Turn += rot
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.Turn -= rot
	}

	x, _ := ebiten.CursorPosition()
	if g.captured {
		// Moving the mouse right turns right, which is a negative rotation.
		in.Turn -= float64(x-g.lastCursorX) * *mouseSensitivityFlag
	}
	g.lastCursorX = x
	return in
}

// autoWalkInput walks forward, turning whenever the path ahead is blocked
// and occasionally at random.
func (g *Game) autoWalkInput(dt float64) raycast.Input {
	cam := g.session.Camera
	ahead := cam.Pos.Add(cam.Dir.Mul(cam.MoveSpeed * dt * 4))
	if g.autoWalkFrames <= 0 || cam.Grid().IsWall(ahead.X, ahead.Y) {
		g.autoWalkTurn = (g.autoWalkRand.Float64()*2 - 1) * math.Pi
		g.autoWalkFrames = 20 + g.autoWalkRand.Intn(50)
	}
	g.autoWalkFrames--
	turn := math.Copysign(math.Min(math.Abs(g.autoWalkTurn), cam.RotSpeed*dt), g.autoWalkTurn)
	g.autoWalkTurn -= turn
	return raycast.Input{Axis: raycast.Vec2{Y: 1}, Turn: turn}
}

// handleWindowControls captures the cursor on click and releases it on
// Escape. Escape with a free cursor quits.
func (g *Game) handleWindowControls() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		g.captured = true
		g.lastCursorX, _ = ebiten.CursorPosition()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !g.captured {
			return true
		}
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		g.captured = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return false
}

// handleDebugControls processes overlay and rendering hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.compositor.ToggleTextured()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustFOV(-fovStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustFOV(fovStep)
	}
}

// adjustFOV clamps the field of view change within bounds.
func (g *Game) adjustFOV(delta float64) {
	cam := g.session.Camera
	cam.SetFOV(math.Max(minFOV, math.Min(maxFOV, cam.FOV()+delta)))
}
