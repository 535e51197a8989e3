// Package app is the raylib viewer: a window showing one model with
// two-point distance measurement and keyboard/mouse camera controls.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/internal/render"
	"github.com/philipparndt/stlmeasure/internal/session"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

// ErrNoWindow is returned when no window could be created, e.g. without a display
var ErrNoWindow = errors.New("could not create window")

// Options configures Run
type Options struct {
	Config *config.Config
	// Session reloads the model on source changes; nil disables watching
	Session *session.Session
	Log     *zap.Logger
}

type App struct {
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	Frame       FrameState
	FileWatch   FileWatchState

	cfg      *config.Config
	log      *zap.Logger
	session  *session.Session
	font     rl.Font
	bindings viewer.Bindings

	camera   *viewer.Camera
	controls *viewer.Controls
	wire     *wireframe
	visuals  *measurement.Visuals
	handler  *measurement.Handler
	sched    *render.Scheduler
}

// Run opens the viewer window and blocks until it is closed or ctx is done
func Run(ctx context.Context, model *stl.Model, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		return fmt.Errorf("camera bindings: %w", err)
	}
	trigger, err := cfg.Modifier()
	if err != nil {
		return fmt.Errorf("measurement modifier: %w", err)
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Window.FPS))
	// Escape clears the measurement instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	app := newApp(model, cfg, bindings, trigger, log)
	app.session = opts.Session
	app.font = rl.GetFontDefault()
	app.Model.material = rl.LoadMaterialDefault()
	app.resizeFrame()
	app.setModel(model)
	defer app.unload()

	if app.session != nil && cfg.Watch.Enabled {
		if err := app.setupFileWatcher(); err != nil {
			log.Warn("auto-reload not available", zap.Error(err))
		}
	}

	log.Info("viewer started",
		zap.Stringer("modifier", trigger),
		zap.Int("bindings", len(bindings)),
	)
	app.loop(ctx)
	return nil
}

// newApp wires the camera, controls, scene, measurement and scheduler.
// No raylib calls happen here.
func newApp(model *stl.Model, cfg *config.Config, bindings viewer.Bindings, trigger measurement.Modifier, log *zap.Logger) *App {
	app := &App{
		cfg:      cfg,
		log:      log,
		bindings: bindings,
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
			showHelp:      true,
		},
	}

	col := cfg.ClearColor()
	app.Frame.clearColor = rl.NewColor(col.R, col.G, col.B, col.A)

	app.camera = viewer.NewCamera(model.BoundingBox())
	app.camera.FOV = cfg.FOVRadians()

	keys, unknown := newKeyboard(bindings)
	if len(unknown) > 0 {
		log.Warn("ignoring bindings for unknown keys", zap.Strings("keys", unknown))
	}
	app.controls = viewer.NewControls(app.camera, keys, bindings, cfg.Speeds())
	app.wire = newWireframe(model, app.camera)
	app.visuals = measurement.NewVisuals()

	app.sched = render.New(
		render.RendererFunc(app.renderFrame),
		app.controls,
		render.WithVisibility(app.wire),
		render.WithLogger(log.Named("render")),
	)
	app.handler = measurement.NewHandler(
		measurement.NewPair(app.visuals, cfg.Format()),
		measurement.PickerFunc(func(float64, float64) (geometry.Vector3, bool) { return geometry.Vector3{}, false }),
		trigger,
		app.sched,
		log.Named("measure"),
	)
	return app
}

func (app *App) loop(ctx context.Context) {
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrl && (rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyC)) {
			return
		}

		app.applyReloads()
		app.resizeFrame()
		app.handleInput()

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		app.sched.Tick(dt)

		rl.BeginDrawing()
		rl.ClearBackground(app.Frame.clearColor)
		// Render textures are stored upside down
		src := rl.Rectangle{Width: float32(app.Frame.width), Height: -float32(app.Frame.height)}
		rl.DrawTextureRec(app.Frame.target.Texture, src, rl.Vector2{}, rl.White)
		app.drawLabels()
		app.drawUI()
		rl.EndDrawing()
	}
}

// renderFrame draws the scene into the cached frame and re-projects the
// overlay; it runs only on ticks with a dirty flag set
func (app *App) renderFrame(reasons render.Reason) {
	app.log.Debug("render", zap.Stringer("reasons", reasons))

	rl.BeginTextureMode(app.Frame.target)
	rl.ClearBackground(app.Frame.clearColor)
	rl.BeginMode3D(raylibCamera(app.camera))

	if app.View.showFilled && app.Model.hasMesh {
		rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
	}
	if app.View.showWireframe {
		app.wire.draw()
	}
	app.drawMeasurement3D()

	rl.EndMode3D()
	rl.EndTextureMode()

	app.visuals.Overlay().Update(app.camera.Projector(float64(app.Frame.width), float64(app.Frame.height)))
}

// drawMeasurement3D draws markers and the distance line
func (app *App) drawMeasurement3D() {
	r := app.markerRadius()
	for _, l := range app.visuals.Lines() {
		rl.DrawCylinderEx(toRL(l.Start), toRL(l.End), r*0.3, r*0.3, 8, rl.Yellow)
	}
	for _, m := range app.visuals.Markers() {
		rl.DrawSphere(toRL(m.Position), r, getPointColor(m.Index))
	}
}

// resizeFrame (re)creates the cached frame when the window size changes
func (app *App) resizeFrame() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == app.Frame.width && h == app.Frame.height {
		return
	}
	if app.Frame.width > 0 {
		rl.UnloadRenderTexture(app.Frame.target)
	}
	app.Frame.target = rl.LoadRenderTexture(w, h)
	app.Frame.width, app.Frame.height = w, h
	app.sched.Invalidate(render.CameraMoved)
}

// unload stops the scheduler and releases GPU resources
func (app *App) unload() {
	app.sched.Stop()
	if app.Model.hasMesh {
		rl.UnloadMesh(&app.Model.mesh)
	}
	rl.UnloadMaterial(app.Model.material)
	if app.Frame.width > 0 {
		rl.UnloadRenderTexture(app.Frame.target)
	}
}
