// Package term presents rendered frames in a terminal through tcell. Each
// character cell shows two vertically stacked pixels using the upper
// half-block glyph: foreground is the top pixel, background the bottom.
package term

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/raycast"
)

const halfBlock = '▀'

// DefaultTick is the frame interval of the terminal loop.
const DefaultTick = 33 * time.Millisecond

// DefaultKeyStep is how long a single key press drives the player. Terminals
// report presses (and auto-repeat) but never releases.
const DefaultKeyStep = 90 * time.Millisecond

// ErrQuit is returned by Run when the player asks to leave.
var ErrQuit = errors.New("quit requested")

// Present copies fb onto screen and shows it. The framebuffer must be the
// screen width and twice the screen height.
func Present(screen tcell.Screen, fb *raycast.Framebuffer) {
	cols, rows := screen.Size()
	cols = min(cols, fb.Width())
	rows = min(rows, fb.Height()/2)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top, bottom := fb.RGBAt(x, 2*y), fb.RGBAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewHexColor(int32(top))).
				Background(tcell.NewHexColor(int32(bottom)))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	screen.Show()
}

// Loop drives one session in a terminal: it polls keys, steps the session
// and renders a frame on every tick.
type Loop struct {
	Screen     tcell.Screen
	Session    *raycast.Session
	Compositor *raycast.Compositor
	Tick       time.Duration
	KeyStep    time.Duration

	fb *raycast.Framebuffer
}

// Run blocks until ctx is done, the player quits or rendering fails. A quit
// key returns ErrQuit.
func (l *Loop) Run(ctx context.Context) error {
	tick := l.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	// PollEvent returns nil once the screen is finalized, which ends the
	// reader after Run has returned.
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := l.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := l.Frame(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := l.Handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := l.Frame(ctx); err != nil {
				return err
			}
		}
	}
}

// Handle applies one terminal event to the session.
func (l *Loop) Handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return ErrQuit
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 't' || ev.Rune() == 'T') {
			if l.Compositor != nil {
				l.Compositor.ToggleTextured()
			}
			return nil
		}
		step := l.KeyStep
		if step <= 0 {
			step = DefaultKeyStep
		}
		dt := step.Seconds()
		in, ok := keyInput(ev, l.Session.Camera.RotSpeed*dt)
		if ok {
			l.Session.Step(in, dt)
		}
	case *tcell.EventResize:
		l.Screen.Sync()
	}
	return nil
}

// keyInput maps a key press to player intent. turn is the rotation applied
// by one arrow key press.
func keyInput(ev *tcell.EventKey, turn float64) (raycast.Input, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return raycast.Input{Axis: raycast.Vec2{Y: 1}}, true
	case tcell.KeyDown:
		return raycast.Input{Axis: raycast.Vec2{Y: -1}}, true
	case tcell.KeyLeft:
		return raycast.Input{Turn: turn}, true
	case tcell.KeyRight:
		return raycast.Input{Turn: -turn}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return raycast.Input{Axis: raycast.Vec2{Y: 1}}, true
		case 's', 'S':
			return raycast.Input{Axis: raycast.Vec2{Y: -1}}, true
		case 'a', 'A':
			return raycast.Input{Axis: raycast.Vec2{X: -1}}, true
		case 'd', 'D':
			return raycast.Input{Axis: raycast.Vec2{X: 1}}, true
		case 'j', 'J':
			return raycast.Input{Turn: turn}, true
		case 'l', 'L':
			return raycast.Input{Turn: -turn}, true
		}
	}
	return raycast.Input{}, false
}

// Frame renders the session at the current screen size and presents it.
func (l *Loop) Frame(ctx context.Context) error {
	cols, rows := l.Screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if l.fb == nil || l.fb.Width() != cols || l.fb.Height() != 2*rows {
		l.fb = raycast.NewFramebuffer(cols, 2*rows)
	}
	if err := l.Compositor.Render(ctx, l.fb, l.Session.Camera); err != nil {
		return err
	}
	Present(l.Screen, l.fb)
	return nil
}
