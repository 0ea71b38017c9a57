package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the current view and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.shader != nil {
		g.shader.Draw(screen, g.session.Camera)
	} else {
		g.renderFrame()
		if g.err != nil {
			return
		}
		screen.WritePixels(g.fb.Pix())
	}

	if g.showDebug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
}

// debugText formats the FPS, frame time and camera overlay.
func (g *Game) debugText() string {
	fps := ebiten.ActualFPS()
	tps := ebiten.ActualTPS()
	if tps < 0 {
		tps = 0
	}
	cam := g.session.Camera
	msg := fmt.Sprintf("FPS: %.1f (%.1f TPS)\nPos: %.2f, %.2f  Dir: %.2f, %.2f\nFOV: %.0f (-/+)",
		fps, tps, cam.Pos.X, cam.Pos.Y, cam.Dir.X, cam.Dir.Y, cam.FOV())
	if g.shader != nil {
		return msg + "\nGPU shader"
	}
	msg += fmt.Sprintf("\nFrame: %.2f ms", g.lastFrameTime.Seconds()*1000)
	if hits := g.compositor.LastHits(); len(hits) > 0 {
		h := hits[len(hits)/2]
		msg += fmt.Sprintf("\nCenter: %.2f %s cell %d,%d mat %d", h.Distance, h.Side, h.CellX, h.CellY, h.Material)
	}
	return msg
}
