package main

import "flag"

// Command-line flags that select the map, presentation back end and caster,
// and override per-level tuning.
var (
	// levelFlag names a built-in level or a path to a level YAML file.
	levelFlag = flag.String("level", "default", "built-in level name or path to a level YAML file")

	// backendFlag selects how frames reach the user.
	backendFlag = flag.String("backend", backendRaster, "presentation back end: raster, shader or terminal")

	// casterFlag selects the column caster used by the raster and terminal back ends.
	casterFlag = flag.String("caster", casterCPU, "column caster: cpu or opencl (requires -tags opencl)")

	// texturedFlag toggles textured walls; flat material colors otherwise.
	texturedFlag = flag.Bool("textured", true, "draw textured walls instead of flat colors")

	// workersFlag splits each frame's columns over this many goroutines.
	workersFlag = flag.Int("workers", 1, "goroutines per frame for the column sweep (<=1 renders serially)")

	widthFlag  = flag.Int("width", defaultWidth, "render width in pixels")
	heightFlag = flag.Int("height", defaultHeight, "render height in pixels")

	// fullscreenFlag opens the window fullscreen.
	fullscreenFlag = flag.Bool("fullscreen", false, "start fullscreen")

	// debugFlag enables the FPS and frame time overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, frame time and center ray overlay")

	// fovFlag overrides the level field of view when positive.
	fovFlag = flag.Float64("fov", 0, "horizontal field of view in degrees (0 uses the level value)")

	// mouseSensitivityFlag scales captured mouse motion into rotation.
	mouseSensitivityFlag = flag.Float64("mouse-sensitivity", defaultMouseSensitivity, "radians of rotation per pixel of mouse motion")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")
)
