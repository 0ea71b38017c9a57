package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/level"
	"raycaster/internal/raycast"
	"raycaster/internal/term"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	lvl, err := level.Load(*levelFlag)
	if err != nil {
		log.Fatalf("Loading level failed: %v (built-in: %s, %s)", err, strings.Join(level.Builtin(), ", "), level.Random)
	}
	session, err := lvl.NewSession(*fovFlag)
	if err != nil {
		log.Fatalf("Level %s: %v", *levelFlag, err)
	}
	log.Printf("Level %q loaded (%dx%d, %d materials)", lvl.Name, lvl.Grid.Width(), lvl.Grid.Height(), lvl.Grid.Materials())

	compositor, closeCaster, err := newCompositor(lvl)
	if err != nil {
		log.Fatalf("Renderer initialization failed: %v", err)
	}
	defer closeCaster()

	var recorder *profileRecorder
	if *recordDefaultPGO {
		if recorder, err = startProfile(pgoPath, pgoRecordDuration); err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		defer recorder.Stop()
	}

	switch *backendFlag {
	case backendRaster, backendShader:
		err = runWindow(session, compositor)
	case backendTerminal:
		err = runTerminal(session, compositor)
	default:
		err = fmt.Errorf("unknown back end %q", *backendFlag)
	}
	if err != nil {
		if recorder != nil {
			recorder.Stop()
		}
		closeCaster()
		log.Fatalf("%v", err)
	}
}

// newCompositor builds the frame compositor with the selected caster. The
// CPU-drawn back ends always get the level's textures so T can switch modes;
// -textured only picks the starting mode.
func newCompositor(lvl *level.Level) (*raycast.Compositor, func(), error) {
	c := &raycast.Compositor{
		Caster:   raycast.DDACaster{Grid: lvl.Grid},
		Textured: *texturedFlag,
		Workers:  *workersFlag,
		Clear:    clearColor,
	}
	closer := func() {}

	switch *casterFlag {
	case casterCPU:
	case casterOpenCL:
		cl, err := newOpenCLCaster(lvl.Grid)
		if err != nil {
			return nil, nil, fmt.Errorf("OpenCL initialization failed: %w", err)
		}
		log.Printf("OpenCL caster enabled (device: %s)", cl.DeviceName())
		c.Caster = cl
		closer = cl.Close
	default:
		return nil, nil, fmt.Errorf("unknown caster %q", *casterFlag)
	}

	if *backendFlag != backendShader {
		set, err := lvl.Textures(textureSize)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("loading textures: %w", err)
		}
		c.Textures = set
	}
	return c, closer, nil
}

// runWindow opens the ebiten window for the raster or shader back end.
func runWindow(session *raycast.Session, compositor *raycast.Compositor) error {
	var shader *shaderView
	if *backendFlag == backendShader {
		var err error
		if shader, err = newShaderView(session.Grid); err != nil {
			return err
		}
		log.Printf("GPU shader back end enabled")
	}

	g := newGame(session, compositor, shader, *widthFlag, *heightFlag)
	if *recordDefaultPGO {
		g.enableAutoWalk(pgoRecordDuration)
	}

	ebiten.SetWindowSize(*widthFlag*windowScale, *heightFlag*windowScale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetFullscreen(*fullscreenFlag)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// runTerminal draws the session into the controlling terminal until the
// player quits or the process is interrupted.
func runTerminal(session *raycast.Session, compositor *raycast.Compositor) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := &term.Loop{Screen: screen, Session: session, Compositor: compositor}
	err = loop.Run(ctx)
	screen.Fini()
	if errors.Is(err, term.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
