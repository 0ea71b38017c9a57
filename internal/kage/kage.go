// Package kage generates the fragment shader that casts one ray per screen
// column on the GPU, and the uniform values it reads each frame.
package kage

import (
	"bytes"
	"fmt"
	"text/template"

	"raycaster/internal/raycast"
)

// Uniform names read by the generated shader.
const (
	UniformPosition      = "Position"
	UniformViewDirection = "ViewDirection"
	UniformPlane         = "Plane"
	UniformScreenSize    = "ScreenSize"
	UniformClear         = "Clear"
	UniformCells         = "Cells"
	UniformPalette       = "Palette"
)

var source = template.Must(template.New("raycast.kage").Parse(`//kage:unit pixels

package main

const GridWidth = {{.Width}}
const GridHeight = {{.Height}}
const MaxSteps = {{.MaxSteps}}
const PaletteLen = {{.PaletteLen}}

var Position vec2
var ViewDirection vec2
var Plane vec2
var ScreenSize vec2
var Clear vec3
var Cells [{{.CellCount}}]float
var Palette [{{.PaletteFloats}}]float

func cellAt(x, y int) float {
	if x < 0 || y < 0 || x >= GridWidth || y >= GridHeight {
		return 1
	}
	return Cells[y*GridWidth+x]
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	column := floor(dstPos.x)
	row := floor(dstPos.y)
	cameraX := 2*column/ScreenSize.x - 1
	ray := ViewDirection + Plane*cameraX

	mapX := int(floor(Position.x))
	mapY := int(floor(Position.y))
	deltaX := 1e30
	if ray.x != 0 {
		deltaX = abs(1 / ray.x)
	}
	deltaY := 1e30
	if ray.y != 0 {
		deltaY = abs(1 / ray.y)
	}

	stepX := 1
	sideX := (float(mapX) + 1 - Position.x) * deltaX
	if ray.x < 0 {
		stepX = -1
		sideX = (Position.x - float(mapX)) * deltaX
	}
	stepY := 1
	sideY := (float(mapY) + 1 - Position.y) * deltaY
	if ray.y < 0 {
		stepY = -1
		sideY = (Position.y - float(mapY)) * deltaY
	}

	side := 0
	code := 0.0
	for i := 0; i < MaxSteps; i++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			sideY += deltaY
			mapY += stepY
			side = 1
		}
		code = cellAt(mapX, mapY)
		if code > 0 {
			break
		}
	}

	dist := sideY - deltaY
	if side == 0 {
		dist = sideX - deltaX
	}
	dist = max(dist, 1e-6)
	lineHeight := clamp(floor(ScreenSize.y/dist), 1, ScreenSize.y*64)
	halfScreen := floor(ScreenSize.y / 2)
	halfLine := floor(lineHeight / 2)
	start := max(0, halfScreen-halfLine)
	end := min(ScreenSize.y-1, halfScreen+halfLine)
	if row < start || row >= end {
		return vec4(Clear/255, 1)
	}

	pi := int(mod(code-1, PaletteLen)) * 3
	rgb := vec3(Palette[pi], Palette[pi+1], Palette[pi+2])
	if side == 0 {
		rgb = floor(rgb / 2)
	}
	return vec4(rgb/255, 1)
}
`))

type sourceParams struct {
	Width         int
	Height        int
	MaxSteps      int
	PaletteLen    int
	CellCount     int
	PaletteFloats int
}

// Program is a shader specialised to one grid.
type Program struct {
	source  []byte
	cells   []float32
	palette []float32
}

// New generates the shader source and the static uniforms for grid.
func New(grid *raycast.Grid) (*Program, error) {
	materials := max(grid.Materials(), 1)
	params := sourceParams{
		Width:         grid.Width(),
		Height:        grid.Height(),
		MaxSteps:      grid.Width() + grid.Height(),
		PaletteLen:    materials,
		CellCount:     grid.Width() * grid.Height(),
		PaletteFloats: materials * 3,
	}
	var buf bytes.Buffer
	if err := source.Execute(&buf, params); err != nil {
		return nil, fmt.Errorf("generating shader: %w", err)
	}

	p := &Program{
		source:  buf.Bytes(),
		cells:   make([]float32, 0, params.CellCount),
		palette: make([]float32, 0, params.PaletteFloats),
	}
	for _, code := range grid.Cells() {
		p.cells = append(p.cells, float32(code))
	}
	for m := 0; m < materials; m++ {
		p.palette = append(p.palette, channels(raycast.FlatColor(m))...)
	}
	return p, nil
}

// Source returns the Kage program text.
func (p *Program) Source() []byte { return p.source }

// Uniforms returns the values for one frame of cam drawn at width x height.
func (p *Program) Uniforms(cam *raycast.Camera, width, height int, clear uint32) map[string]any {
	return map[string]any{
		UniformPosition:      vec2(cam.Pos),
		UniformViewDirection: vec2(cam.Dir),
		UniformPlane:         vec2(cam.Plane),
		UniformScreenSize:    []float32{float32(width), float32(height)},
		UniformClear:         channels(clear),
		UniformCells:         p.cells,
		UniformPalette:       p.palette,
	}
}

func vec2(v raycast.Vec2) []float32 {
	return []float32{float32(v.X), float32(v.Y)}
}

// channels splits 0xRRGGBB into 0-255 floats.
func channels(rgb uint32) []float32 {
	return []float32{float32(rgb>>16&0xFF), float32(rgb>>8&0xFF), float32(rgb&0xFF)}
}
