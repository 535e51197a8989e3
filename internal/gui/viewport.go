package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/internal/render"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/picking"
	"github.com/philipparndt/stlmeasure/pkg/stl"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

const (
	orbitPerPixel = 0.01
	panPerPixel   = 0.002
	zoomPerScroll = 0.002
)

var (
	labelText       = color.RGBA{255, 255, 0, 255}
	labelBackground = color.RGBA{0, 0, 0, 200}
)

// Viewport is a widget showing a software-rendered model. Alt+click (or the
// configured modifier) picks measurement points; drag orbits, shift or
// middle drag pans and scrolling zooms.
type Viewport struct {
	widget.BaseWidget

	camera   *viewer.Camera
	controls *viewer.Controls
	keys     *keyState
	visuals  *measurement.Visuals
	handler  *measurement.Handler
	sched    *render.Scheduler
	painter  painter
	snap     float64
	log      *zap.Logger

	model *stl.Model
	frame *frame
	size  fyne.Size

	image  *canvas.Image
	labels []fyne.CanvasObject

	dragged bool
	panning bool

	onRender func(reasons render.Reason)
}

// ViewportOptions configures a Viewport
type ViewportOptions struct {
	Bindings   viewer.Bindings
	Speeds     viewer.Speeds
	FOV        float64 // Radians; zero keeps the camera default
	Trigger    measurement.Modifier
	Format     measurement.Format
	Snap       float64 // Corner snap radius in model units; zero disables
	Background color.RGBA
	Log        *zap.Logger
}

// NewViewport creates a viewport for model
func NewViewport(model *stl.Model, opts ViewportOptions) *Viewport {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	v := &Viewport{
		camera:  viewer.NewCamera(model.BoundingBox()),
		keys:    newKeyState(),
		visuals: measurement.NewVisuals(),
		snap:    opts.Snap,
		log:     log,
	}
	if opts.FOV > 0 {
		v.camera.FOV = opts.FOV
	}
	v.controls = viewer.NewControls(v.camera, v.keys, opts.Bindings, opts.Speeds)
	v.painter = painter{
		camera:     v.camera,
		background: opts.Background,
		filled:     true,
		wireframe:  true,
	}

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScalePixels

	v.sched = render.New(
		render.RendererFunc(v.renderFrame),
		v.controls,
		render.WithLogger(log.Named("render")),
		render.WithDispatcher(fyne.Do),
	)
	v.handler = measurement.NewHandler(
		measurement.NewPair(v.visuals, opts.Format),
		nil,
		opts.Trigger,
		v.sched,
		log.Named("measure"),
	)
	v.SetModel(model)

	v.ExtendBaseWidget(v)
	return v
}

// Scheduler returns the render scheduler; the caller drives it with Run
func (v *Viewport) Scheduler() *render.Scheduler {
	return v.sched
}

// Handler returns the measurement handler
func (v *Viewport) Handler() *measurement.Handler {
	return v.handler
}

// Model returns the displayed model
func (v *Viewport) Model() *stl.Model {
	return v.model
}

// OnRender sets a callback run after every rendered frame
func (v *Viewport) OnRender(f func(reasons render.Reason)) {
	v.onRender = f
}

// SetModel replaces the model, keeping the camera and the measurement
func (v *Viewport) SetModel(model *stl.Model) {
	v.model = model
	v.handler.SetPicker(v.pickerFor(picking.NewPicker(model)))
	v.sched.Invalidate(render.ModelChanged)
}

// SetFilled toggles face rendering
func (v *Viewport) SetFilled(on bool) {
	v.painter.filled = on
	v.sched.Invalidate(render.ModelChanged)
}

// SetWireframe toggles edge rendering
func (v *Viewport) SetWireframe(on bool) {
	v.painter.wireframe = on
	v.sched.Invalidate(render.ModelChanged)
}

// ResetView returns to the default camera angle
func (v *Viewport) ResetView() {
	v.controls.SetLookAt(viewer.SuggestCameraConfig(v.model.BoundingBox()))
}

// KeyDown records a held key and handles one-shot keys
func (v *Viewport) KeyDown(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		v.handler.Clear()
	case fyne.KeyHome:
		v.ResetView()
	default:
		v.keys.press(ev.Name)
	}
}

// KeyUp releases a held key
func (v *Viewport) KeyUp(ev *fyne.KeyEvent) {
	v.keys.release(ev.Name)
}

// ReleaseKeys forgets held keys so the camera does not keep moving
func (v *Viewport) ReleaseKeys() {
	v.keys.reset()
}

// pickerFor casts the camera ray through a widget position into the model
func (v *Viewport) pickerFor(p *picking.Picker) measurement.Picker {
	return measurement.PickerFunc(func(x, y float64) (geometry.Vector3, bool) {
		if v.size.Width <= 0 || v.size.Height <= 0 {
			return geometry.Vector3{}, false
		}
		ray := v.camera.Ray(x, y, float64(v.size.Width), float64(v.size.Height))
		return p.Pick(ray, v.snap)
	})
}

// MouseDown implements desktop.Mouseable
func (v *Viewport) MouseDown(ev *desktop.MouseEvent) {
	v.dragged = false
	shiftPans := ev.Modifier&fyne.KeyModifierShift != 0 && v.handler.Trigger()&measurement.ModShift == 0
	v.panning = ev.Button == desktop.MouseButtonTertiary || shiftPans
}

// MouseUp implements desktop.Mouseable. A press without drag is a click.
func (v *Viewport) MouseUp(ev *desktop.MouseEvent) {
	if v.dragged || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.handler.HandleClick(measurement.Click{
		X:         float64(ev.Position.X),
		Y:         float64(ev.Position.Y),
		Modifiers: modifiers(ev.Modifier),
	})
}

// Dragged implements fyne.Draggable
func (v *Viewport) Dragged(ev *fyne.DragEvent) {
	v.dragged = true
	dx, dy := float64(ev.Dragged.DX), float64(ev.Dragged.DY)
	if v.panning {
		v.controls.Pan(-dx*panPerPixel, dy*panPerPixel)
		return
	}
	v.controls.Orbit(-dy*orbitPerPixel, dx*orbitPerPixel)
}

// DragEnd implements fyne.Draggable
func (v *Viewport) DragEnd() {
	v.panning = false
}

// Scrolled implements fyne.Scrollable
func (v *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	v.controls.Zoom(-float64(ev.Scrolled.DY) * zoomPerScroll)
}

// resize tracks the widget size; a new size needs a new frame
func (v *Viewport) resize(size fyne.Size) {
	if size == v.size {
		return
	}
	v.size = size
	v.sched.Invalidate(render.CameraMoved)
}

// renderFrame paints into the cached frame and re-projects the labels.
// It runs on the fyne goroutine, only on ticks with a dirty flag set.
func (v *Viewport) renderFrame(reasons render.Reason) {
	w, h := int(v.size.Width), int(v.size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	v.log.Debug("render", zap.Stringer("reasons", reasons), zap.Int("width", w), zap.Int("height", h))

	if v.frame == nil || v.frame.width() != w || v.frame.height() != h {
		v.frame = newFrame(w, h)
	}
	v.painter.paint(v.frame, v.model, v.visuals)
	v.image.Image = v.frame.img

	v.visuals.Overlay().Update(v.camera.Projector(float64(w), float64(h)))
	v.labels = v.buildLabels()

	v.Refresh()
	if v.onRender != nil {
		v.onRender(reasons)
	}
}

// buildLabels creates canvas objects for the visible overlay anchors
func (v *Viewport) buildLabels() []fyne.CanvasObject {
	const padding = float32(4)

	var objects []fyne.CanvasObject
	for _, a := range v.visuals.Overlay().Anchors() {
		if !a.Visible {
			continue
		}
		text := canvas.NewText(a.Text, labelText)
		text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
		size := text.MinSize()
		pos := fyne.NewPos(float32(a.X)-size.Width/2, float32(a.Y)-size.Height/2)

		bg := canvas.NewRectangle(labelBackground)
		bg.StrokeColor = labelText
		bg.StrokeWidth = 1
		bg.CornerRadius = 3
		bg.Move(pos.Subtract(fyne.NewPos(padding, padding)))
		bg.Resize(size.Add(fyne.NewSize(2*padding, 2*padding)))

		text.Move(pos)
		text.Resize(size)
		objects = append(objects, bg, text)
	}
	return objects
}

// CreateRenderer implements fyne.Widget
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return &viewportRenderer{viewport: v}
}

type viewportRenderer struct {
	viewport *Viewport
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.viewport.image.Resize(size)
	r.viewport.image.Move(fyne.NewPos(0, 0))
	r.viewport.resize(size)
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *viewportRenderer) Refresh() {
	canvas.Refresh(r.viewport.image)
	for _, o := range r.viewport.labels {
		canvas.Refresh(o)
	}
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, 1+len(r.viewport.labels))
	objects = append(objects, r.viewport.image)
	return append(objects, r.viewport.labels...)
}

func (r *viewportRenderer) Destroy() {
	r.viewport.sched.Stop()
}
