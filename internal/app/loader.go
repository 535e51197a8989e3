package app

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/internal/render"
	"github.com/philipparndt/stlmeasure/internal/session"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/picking"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// setupFileWatcher reloads the model when the session source changes.
// Results are queued for the main thread, which owns every GPU resource.
func (app *App) setupFileWatcher() error {
	app.FileWatch.reloads = make(chan session.LoadResult, 1)
	return app.session.Watch(func(res session.LoadResult) {
		// Keep only the newest result if the main thread has not caught up
		select {
		case <-app.FileWatch.reloads:
		default:
		}
		app.FileWatch.reloads <- res
	})
}

// applyReloads applies a finished reload; main thread only
func (app *App) applyReloads() {
	if app.FileWatch.reloads == nil {
		return
	}
	select {
	case res := <-app.FileWatch.reloads:
		if res.Err != nil {
			app.FileWatch.setStatus(fmt.Sprintf("Reload failed: %v", res.Err), true, 8*time.Second)
			return
		}
		app.setModel(res.Model)
		app.FileWatch.setStatus(fmt.Sprintf("Reloaded in %.2fs", res.Elapsed.Seconds()), false, 3*time.Second)
	default:
	}
}

// setModel swaps in a model, keeping the camera where the user left it
func (app *App) setModel(model *stl.Model) {
	old := app.Model
	picker := picking.NewPicker(model)

	app.Model = ModelData{
		model:            model,
		report:           analysis.AnalyzeModel(model),
		picker:           picker,
		mesh:             stlToRaylibMesh(model),
		material:         old.material,
		hasMesh:          true,
		avgVertexSpacing: float32(model.AvgEdgeLength()),
	}
	app.handler.SetPicker(app.pickerFor(picker))
	app.wire.setModel(model)

	if old.hasMesh {
		rl.UnloadMesh(&old.mesh)
	}
	app.sched.Invalidate(render.ModelChanged)
}

// pickerFor casts the camera ray through a screen position into the model,
// snapping onto nearby corners when configured
func (app *App) pickerFor(p *picking.Picker) measurement.Picker {
	return measurement.PickerFunc(func(x, y float64) (geometry.Vector3, bool) {
		ray := app.camera.Ray(x, y, float64(app.Frame.width), float64(app.Frame.height))
		return p.Pick(ray, app.cfg.Measurement.Snap)
	})
}

// markerRadius scales point markers with the model's vertex spacing and the
// camera distance so they stay visible without hiding detail
func (app *App) markerRadius() float32 {
	byModel := app.Model.avgVertexSpacing * 0.15
	byCamera := float32(app.camera.Distance) * 0.006
	return math32.Max(math32.Min(byModel, byCamera), byCamera*0.25)
}
