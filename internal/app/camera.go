package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

// raylibCamera mirrors the orbit camera for BeginMode3D
func raylibCamera(c *viewer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRL(c.Position),
		Target:     toRL(c.Target),
		Up:         toRL(c.Up),
		Fovy:       float32(c.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

// resetCameraView frames the model from the default viewpoint
func (app *App) resetCameraView() {
	app.controls.SetLookAt(viewer.SuggestCameraConfig(app.Model.model.BoundingBox()))
}

// setCameraView frames the model from one of the preset orbit angles
func (app *App) setCameraView(angles [2]float64) {
	app.controls.SetLookAt(viewer.ViewConfig(app.Model.model.BoundingBox(), angles[0], angles[1]))
}

// handleViewKeys maps Home, T, B and 1-4 to the preset views
func (app *App) handleViewKeys() {
	presets := []struct {
		key    int32
		angles [2]float64
	}{
		{rl.KeyT, viewer.TopView},
		{rl.KeyB, viewer.BottomView},
		{rl.KeyOne, viewer.FrontView},
		{rl.KeyTwo, viewer.BackView},
		{rl.KeyThree, viewer.LeftView},
		{rl.KeyFour, viewer.RightView},
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
		return
	}
	for _, p := range presets {
		if _, bound := app.bindings[keyName(p.key)]; bound {
			continue
		}
		if rl.IsKeyPressed(p.key) {
			app.setCameraView(p.angles)
			return
		}
	}
}

// keyName is the binding name of a letter or digit key code
func keyName(code int32) string {
	switch {
	case code >= rl.KeyA && code <= rl.KeyZ:
		return string(rune('a' + code - rl.KeyA))
	case code >= rl.KeyZero && code <= rl.KeyNine:
		return string(rune('0' + code - rl.KeyZero))
	}
	return ""
}
