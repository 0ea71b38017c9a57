package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/raycast"
)

// Game owns one session and presents it through ebiten, either by uploading
// the CPU framebuffer or by running the column shader.
type Game struct {
	session    *raycast.Session
	compositor *raycast.Compositor
	fb         *raycast.Framebuffer
	shader     *shaderView

	width  int
	height int

	lastUpdate    time.Time
	lastFrameTime time.Duration
	captured      bool
	lastCursorX   int
	showDebug     bool
	err           error

	autoWalk         bool
	autoWalkDeadline time.Time
	autoWalkRand     *rand.Rand
	autoWalkTurn     float64
	autoWalkFrames   int
}

// newGame wires a session to its renderer. shader is nil for the raster
// back end.
func newGame(session *raycast.Session, compositor *raycast.Compositor, shader *shaderView, width, height int) *Game {
	g := &Game{
		session:      session,
		compositor:   compositor,
		shader:       shader,
		width:        width,
		height:       height,
		showDebug:    *debugFlag,
		autoWalkRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if shader == nil {
		g.fb = raycast.NewFramebuffer(width, height)
	}
	return g
}

// Update applies one tick of input to the session. It never renders; frames
// are produced in Draw so camera state only changes between passes.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	now := time.Now()
	dt := now.Sub(g.lastUpdate)
	if g.lastUpdate.IsZero() {
		dt = 0
	}
	dt = min(dt, maxFrameDelta)
	g.lastUpdate = now

	if quit := g.handleWindowControls(); quit {
		return ebiten.Termination
	}
	g.handleDebugControls()

	g.session.Step(g.input(dt.Seconds()), dt.Seconds())
	return nil
}

// renderFrame runs one compositor pass into the framebuffer.
func (g *Game) renderFrame() {
	start := time.Now()
	if err := g.compositor.Render(context.Background(), g.fb, g.session.Camera); err != nil {
		g.err = err
		return
	}
	g.lastFrameTime = time.Since(start)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }
