package main

import (
	"time"

	"raycaster/internal/raycast"
)

// Window, timing and input tuning. Per-map values (spawn, speeds, field of
// view) come from the level file instead.
const (
	defaultWidth, defaultHeight = 640, 480
	windowScale                 = 1
	windowTitle                 = "Ray Caster"
	textureSize                 = raycast.DefaultTextureSize
	clearColor                  = 0x000000
	maxFrameDelta               = 100 * time.Millisecond
	defaultMouseSensitivity     = 0.0025 // radians per pixel of horizontal mouse motion
	fovStep                     = 5.0
	minFOV, maxFOV              = 30.0, 150.0
	pgoRecordDuration           = 15 * time.Second
	pgoPath                     = "default.pgo"
)

// Back ends selectable with -backend.
const (
	backendRaster   = "raster"
	backendShader   = "shader"
	backendTerminal = "terminal"
)

// Column casters selectable with -caster.
const (
	casterCPU    = "cpu"
	casterOpenCL = "opencl"
)
