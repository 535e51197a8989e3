package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/internal/render"
)

const (
	clickSlop     = 5.0   // Pixels a click may move before it becomes a drag
	orbitPerPixel = 0.01  // Radians
	panPerPixel   = 0.001 // Fraction of camera distance
	zoomPerWheel  = 0.08  // Fraction of camera distance per wheel step
	dragThreshold = 1.0
)

// handleInput turns this frame's mouse and keyboard events into camera
// movement and measurement picks. Held-key camera motion is applied by the
// scheduler through viewer.Controls.
func (app *App) handleInput() {
	app.handleViewKeys()
	app.handleMouse()

	if rl.IsKeyPressed(rl.KeyEscape) && app.handler.Clear() {
		app.log.Debug("measurement cleared")
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
		app.sched.Invalidate(render.ModelChanged)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showWireframe = !app.View.showWireframe
		app.sched.Invalidate(render.ModelChanged)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
}

func (app *App) handleMouse() {
	in := &app.Interaction

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		in.mouseDownPos = rl.GetMousePosition()
		in.mouseMoved = false
		in.dragging = true
		// Shift+drag pans unless shift is part of the measurement trigger
		in.isPanning = heldModifiers()&measurement.ModShift != 0 && app.handler.Trigger()&measurement.ModShift == 0
	}

	// Left drag orbits, shift+left or middle drag pans
	leftDown := rl.IsMouseButtonDown(rl.MouseLeftButton) && in.dragging
	if leftDown || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if math32.Abs(delta.X) > dragThreshold || math32.Abs(delta.Y) > dragThreshold {
			in.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			if in.isPanning || !leftDown {
				app.controls.Pan(float64(-delta.X)*panPerPixel, float64(delta.Y)*panPerPixel)
			} else {
				app.controls.Orbit(float64(-delta.Y)*orbitPerPixel, float64(delta.X)*orbitPerPixel)
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && in.dragging {
		pos := rl.GetMousePosition()
		if !in.mouseMoved && !in.isPanning && rl.Vector2Distance(in.mouseDownPos, pos) < clickSlop {
			app.click(pos)
		}
		in.dragging = false
		in.isPanning = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.controls.Zoom(float64(-wheel) * zoomPerWheel)
	}
}

// click forwards a pointer click to the measurement handler
func (app *App) click(pos rl.Vector2) {
	c := measurement.Click{
		X:         float64(pos.X),
		Y:         float64(pos.Y),
		Modifiers: heldModifiers(),
	}
	if app.handler.HandleClick(c) {
		app.log.Debug("pick", zap.Stringer("state", app.handler.Pair().State()))
	}
}
