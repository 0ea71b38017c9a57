//go:build shadercompile

package kage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"raycaster/internal/level"
)

// Compiling links ebiten and its graphics driver, so this runs only with
// -tags shadercompile on a machine that can build the window back ends.
func TestSourceCompiles(t *testing.T) {
	names := append(level.Builtin(), level.Random)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := level.Load(name)
			require.NoError(t, err)
			p, err := New(lvl.Grid)
			require.NoError(t, err)
			s, err := ebiten.NewShader(p.Source())
			require.NoError(t, err)
			s.Deallocate()
		})
	}
}
