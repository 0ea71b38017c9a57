package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/kage"
	"raycaster/internal/raycast"
)

// shaderView draws the scene on the GPU with one fragment shader pass.
type shaderView struct {
	shader  *ebiten.Shader
	program *kage.Program
}

func newShaderView(grid *raycast.Grid) (*shaderView, error) {
	program, err := kage.New(grid)
	if err != nil {
		return nil, err
	}
	shader, err := ebiten.NewShader(program.Source())
	if err != nil {
		return nil, fmt.Errorf("compiling column shader: %w", err)
	}
	return &shaderView{shader: shader, program: program}, nil
}

// Draw fills screen with the view from cam.
func (v *shaderView) Draw(screen *ebiten.Image, cam *raycast.Camera) {
	b := screen.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = v.program.Uniforms(cam, b.Dx(), b.Dy(), clearColor)
	screen.DrawRectShader(b.Dx(), b.Dy(), v.shader, op)
}
