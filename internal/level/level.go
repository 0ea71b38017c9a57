// Package level loads map assets: YAML level files describing the grid,
// spawn and tuning, plus the wall textures they reference.
package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"raycaster/internal/raycast"
)

//go:embed levels/*.yaml
var builtin embed.FS

// Default is the built-in level used when no level is named.
const Default = "default"

// Defaults applied to fields a level file leaves unset.
const (
	defaultFOV           = 70.0
	defaultMoveSpeed     = 2.5
	defaultRotationSpeed = 8.0
)

// Point is a YAML 2D coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// File mirrors the on-disk level format. Either Cells (flat digits with
// Width and Height) or Rows (a 2D literal) supplies the grid.
type File struct {
	Name          string   `yaml:"name"`
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	Cells         string   `yaml:"cells"`
	Rows          [][]int  `yaml:"rows"`
	Materials     int      `yaml:"materials"`
	Spawn         Point    `yaml:"spawn"`
	Direction     Point    `yaml:"direction"`
	FOV           float64  `yaml:"fov"`
	MoveSpeed     float64  `yaml:"move_speed"`
	RotationSpeed float64  `yaml:"rotation_speed"`
	Textures      []string `yaml:"textures"`
}

// Level is a validated, ready-to-play map.
type Level struct {
	Name          string
	Grid          *raycast.Grid
	Spawn         raycast.Vec2
	Direction     raycast.Vec2
	FOV           float64
	MoveSpeed     float64
	RotationSpeed float64

	textures []string
	assets   fs.FS
}

// Builtin lists the names of the embedded levels.
func Builtin() []string {
	entries, err := fs.ReadDir(builtin, "levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return names
}

// Load reads a level by built-in name or file path. An empty name loads
// Default and Random generates a new map. Texture paths in a file are resolved relative to the file.
func Load(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	if name == Random {
		return Generate(DefaultGenerateOptions(time.Now().UnixNano()))
	}
	if data, err := builtin.ReadFile("levels/" + name + ".yaml"); err == nil {
		return Parse(data, builtin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading level %q: %w", name, err)
	}
	lvl, err := Parse(data, os.DirFS(filepath.Dir(name)))
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	return lvl, nil
}

// Parse decodes and validates a level. assets resolves texture paths.
func Parse(data []byte, assets fs.FS) (*Level, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	return f.build(assets)
}

func (f *File) build(assets fs.FS) (*Level, error) {
	materials := f.Materials
	if materials <= 0 {
		materials = f.maxCode()
	}

	var grid *raycast.Grid
	var err error
	switch {
	case len(f.Rows) > 0:
		grid, err = raycast.NewGrid(f.Rows, materials)
	case f.Cells != "":
		grid, err = raycast.ParseGrid(f.Cells, f.Width, f.Height, materials)
	default:
		err = raycast.ErrEmptyGrid
	}
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	lvl := &Level{
		Name:          f.Name,
		Grid:          grid,
		Spawn:         raycast.Vec2{X: f.Spawn.X, Y: f.Spawn.Y},
		Direction:     raycast.Vec2{X: f.Direction.X, Y: f.Direction.Y},
		FOV:           orDefault(f.FOV, defaultFOV),
		MoveSpeed:     orDefault(f.MoveSpeed, defaultMoveSpeed),
		RotationSpeed: orDefault(f.RotationSpeed, defaultRotationSpeed),
		textures:      f.Textures,
		assets:        assets,
	}
	if lvl.Direction.IsZero() {
		lvl.Direction = raycast.Vec2{X: -1}
	}
	if lvl.Spawn.IsZero() {
		lvl.Spawn = raycast.Vec2{X: float64(grid.Width()) / 2, Y: float64(grid.Height()) / 2}
	}
	return lvl, nil
}

// maxCode returns the largest cell code, used when materials is omitted.
func (f *File) maxCode() int {
	top := 0
	for _, row := range f.Rows {
		for _, c := range row {
			top = max(top, c)
		}
	}
	for _, r := range f.Cells {
		if r >= '0' && r <= '9' {
			top = max(top, int(r-'0'))
		}
	}
	return top
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// NewSession places a camera at the spawn point. fov overrides the level
// field of view when positive.
func (l *Level) NewSession(fov float64) (*raycast.Session, error) {
	if fov <= 0 {
		fov = l.FOV
	}
	cam, err := raycast.NewCamera(l.Grid, l.Spawn, l.Direction, fov, l.MoveSpeed, l.RotationSpeed)
	if err != nil {
		return nil, fmt.Errorf("placing camera: %w", err)
	}
	return raycast.NewSession(l.Grid, cam), nil
}
