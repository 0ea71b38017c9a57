package kage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/internal/level"
	"raycaster/internal/raycast"
)

func testGrid(t *testing.T) *raycast.Grid {
	t.Helper()
	g, err := raycast.ParseGrid(`
		1111
		1002
		1111`, 4, 3, 2)
	require.NoError(t, err)
	return g
}

func TestSourceIsSpecialisedToGrid(t *testing.T) {
	p, err := New(testGrid(t))
	require.NoError(t, err)
	src := string(p.Source())

	assert.Contains(t, src, "//kage:unit pixels")
	assert.Contains(t, src, "const GridWidth = 4\n")
	assert.Contains(t, src, "const GridHeight = 3\n")
	assert.Contains(t, src, "const MaxSteps = 7\n")
	assert.Contains(t, src, "var Cells [12]float\n")
	assert.Contains(t, src, "var Palette [6]float\n")
	assert.Contains(t, src, "func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4")
	assert.NotContains(t, src, "{{")
}

func TestUniforms(t *testing.T) {
	g := testGrid(t)
	p, err := New(g)
	require.NoError(t, err)
	cam, err := raycast.NewCamera(g, raycast.Vec2{X: 1.5, Y: 1.5}, raycast.Vec2{X: 1}, 90, 1, 1)
	require.NoError(t, err)

	u := p.Uniforms(cam, 320, 200, 0x204060)
	assert.Equal(t, []float32{1.5, 1.5}, u[UniformPosition])
	assert.Equal(t, []float32{1, 0}, u[UniformViewDirection])
	plane := u[UniformPlane].([]float32)
	assert.InDelta(t, 0, plane[0], 1e-6)
	assert.InDelta(t, -1, plane[1], 1e-6)
	assert.Equal(t, []float32{320, 200}, u[UniformScreenSize])
	assert.Equal(t, []float32{0x20, 0x40, 0x60}, u[UniformClear])
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 0, 0, 2, 1, 1, 1, 1}, u[UniformCells])
	assert.Equal(t, []float32{0xFF, 0, 0, 0, 0xFF, 0}, u[UniformPalette])
}

func TestUniformsTrackCamera(t *testing.T) {
	g := testGrid(t)
	p, err := New(g)
	require.NoError(t, err)
	cam, err := raycast.NewCamera(g, raycast.Vec2{X: 1.5, Y: 1.5}, raycast.Vec2{X: 1}, 70, 1, 1)
	require.NoError(t, err)

	before := p.Uniforms(cam, 8, 8, 0)
	require.True(t, cam.Move(raycast.Vec2{Y: 1}, 1, 0.5))
	after := p.Uniforms(cam, 8, 8, 0)
	assert.Equal(t, []float32{1.5, 1.5}, before[UniformPosition])
	assert.Equal(t, []float32{2, 1.5}, after[UniformPosition])
}

var localDecl = regexp.MustCompile(`(?m)^\s*(?:for\s+)?([A-Za-z_]\w*)\s*:=`)

// duplicateLocals lists "func.name" for every local declared more than once
// in a function. Kage rejects a local that reuses a name already declared
// in the same function, even in a nested scope.
func duplicateLocals(src string) []string {
	var dups []string
	for _, fn := range strings.Split(src, "\nfunc ")[1:] {
		name := fn[:strings.Index(fn, "(")]
		seen := map[string]bool{}
		for _, m := range localDecl.FindAllStringSubmatch(fn, -1) {
			if seen[m[1]] {
				dups = append(dups, name+"."+m[1])
			}
			seen[m[1]] = true
		}
	}
	return dups
}

func TestSourceDeclaresEachLocalOnce(t *testing.T) {
	levels := map[string]*raycast.Grid{"grid": testGrid(t)}
	for _, name := range level.Builtin() {
		lvl, err := level.Load(name)
		require.NoError(t, err)
		levels[name] = lvl.Grid
	}
	generated, err := level.Generate(level.DefaultGenerateOptions(7))
	require.NoError(t, err)
	levels[level.Random] = generated.Grid

	for name, g := range levels {
		t.Run(name, func(t *testing.T) {
			p, err := New(g)
			require.NoError(t, err)
			src := string(p.Source())
			assert.Contains(t, src, "pi := int(mod(code-1, PaletteLen)) * 3")
			assert.Empty(t, duplicateLocals(src))
		})
	}
}

func TestDuplicateLocals(t *testing.T) {
	src := "package main\n\nfunc cellAt(x int) float {\n\ti := 0\n\treturn 1\n}\n\nfunc Fragment() vec4 {\n\tfor i := 0; i < 2; i++ {\n\t}\n\ti := 1\n}\n"
	assert.Equal(t, []string{"Fragment.i"}, duplicateLocals(src))
}
