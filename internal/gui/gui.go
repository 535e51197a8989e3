// Package gui is the fyne front end: a window with a software-rendered
// model view, an info panel and two-point distance measurement.
package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/internal/render"
	"github.com/philipparndt/stlmeasure/internal/session"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

const appID = "io.github.philipparndt.stlmeasure"

// Options configures Run
type Options struct {
	Config *config.Config
	Log    *zap.Logger
}

// window is the state of the main window
type window struct {
	ctx  context.Context
	win  fyne.Window
	cfg  *config.Config
	log  *zap.Logger
	opts ViewportOptions

	session  *session.Session
	viewport *Viewport
	panel    *infoPanel
	stopTick context.CancelFunc
}

// Run opens the window and blocks until it is closed or ctx is done.
// An empty path shows a welcome screen with a file picker.
func Run(ctx context.Context, path string, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	vopts, err := viewportOptions(cfg, log)
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID(appID)
	w := &window{
		ctx:  ctx,
		win:  a.NewWindow(cfg.Window.Title),
		cfg:  cfg,
		log:  log,
		opts: vopts,
	}
	defer w.closeSession()

	if dc, ok := w.win.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if w.viewport != nil {
				w.viewport.KeyDown(ev)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if w.viewport != nil {
				w.viewport.KeyUp(ev)
			}
		})
	}
	a.Lifecycle().SetOnExitedForeground(func() {
		if w.viewport != nil {
			w.viewport.ReleaseKeys()
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	if path != "" {
		w.open(path)
	} else {
		w.showWelcomeScreen()
	}

	w.win.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.win.ShowAndRun()
	return nil
}

// viewportOptions resolves the configured bindings and modifier
func viewportOptions(cfg *config.Config, log *zap.Logger) (ViewportOptions, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return ViewportOptions{}, fmt.Errorf("camera bindings: %w", err)
	}
	trigger, err := cfg.Modifier()
	if err != nil {
		return ViewportOptions{}, fmt.Errorf("measurement modifier: %w", err)
	}
	return ViewportOptions{
		Bindings:   bindings,
		Speeds:     cfg.Speeds(),
		FOV:        cfg.FOVRadians(),
		Trigger:    trigger,
		Format:     cfg.Format(),
		Snap:       cfg.Measurement.Snap,
		Background: cfg.ClearColor(),
		Log:        log,
	}, nil
}

func (w *window) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to stlmeasure")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL or OpenSCAD file to measure it")

	openButton := widget.NewButton("Open File", w.showFileDialog)

	w.win.SetContent(container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	))
}

func (w *window) showFileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		w.open(reader.URI().Path())
	}, w.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".scad"}))
	d.Show()
}

// open starts loading path in the background
func (w *window) open(path string) {
	sess, err := session.New(path, session.Options{Debounce: w.cfg.Debounce(), Log: w.log})
	if err != nil {
		dialog.ShowError(err, w.win)
		return
	}

	go func() {
		res := <-sess.LoadAsync(w.ctx)
		fyne.Do(func() {
			if res.Err != nil {
				_ = sess.Close()
				dialog.ShowError(res.Err, w.win)
				return
			}
			w.show(sess, res.Model)
		})
	}()
}

// show replaces the window content with a viewport for model
func (w *window) show(sess *session.Session, model *stl.Model) {
	w.closeSession()
	w.session = sess

	w.viewport = NewViewport(model, w.opts)
	w.panel = newInfoPanel()
	w.panel.showModel(model)
	w.panel.showPair(w.viewport.Handler().Pair(), w.opts.Trigger)

	vp, panel := w.viewport, w.panel
	vp.OnRender(func(reasons render.Reason) {
		if reasons.Has(render.MeasurementChanged) {
			panel.showPair(vp.Handler().Pair(), w.opts.Trigger)
		}
	})

	w.win.SetTitle(fmt.Sprintf("%s - %s", w.cfg.Window.Title, model.Name))
	w.win.SetContent(container.NewBorder(nil, nil, nil, w.sidebar(), vp))

	ctx, cancel := context.WithCancel(w.ctx)
	w.stopTick = cancel
	fps := max(w.cfg.Window.FPS, 1)
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		_ = vp.Scheduler().Run(ctx, ticker.C)
	}()

	if w.cfg.Watch.Enabled {
		w.watch(sess, vp, panel)
	}
}

// watch reloads the viewport when the source changes
func (w *window) watch(sess *session.Session, vp *Viewport, panel *infoPanel) {
	err := sess.Watch(func(res session.LoadResult) {
		fyne.Do(func() {
			if res.Err != nil {
				panel.setStatus(fmt.Sprintf("Reload failed: %v", res.Err))
				return
			}
			vp.SetModel(res.Model)
			panel.showModel(res.Model)
			panel.setStatus(fmt.Sprintf("Reloaded in %.2fs", res.Elapsed.Seconds()))
		})
	})
	if err != nil {
		w.log.Warn("auto-reload not available", zap.Error(err))
	}
}

func (w *window) sidebar() fyne.CanvasObject {
	vp := w.viewport

	filledCheck := widget.NewCheck("Show Filled", vp.SetFilled)
	filledCheck.SetChecked(true)
	wireCheck := widget.NewCheck("Show Wireframe", vp.SetWireframe)
	wireCheck.SetChecked(true)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• " + clickHint(w.opts.Trigger) + " to pick a point\n" +
			"• Drag to rotate, shift+drag to pan\n" +
			"• Scroll or Q/E to zoom\n" +
			"• WASD/arrows orbit, IJKL pan\n" +
			"• Esc clears, Home resets the view",
	)
	instructions.Wrapping = fyne.TextWrapWord

	box := container.NewVBox(
		w.panel.content(),
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		filledCheck,
		wireCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		widget.NewButton("Open File", w.showFileDialog),
		widget.NewButton("Clear measurement", func() { vp.Handler().Clear() }),
		widget.NewButton("Reset view", vp.ResetView),
	)

	scroll := container.NewVScroll(box)
	scroll.SetMinSize(fyne.NewSize(300, 0))
	return scroll
}

// closeSession stops the current viewport and its source watcher
func (w *window) closeSession() {
	if w.stopTick != nil {
		w.stopTick()
		w.stopTick = nil
	}
	if w.viewport != nil {
		w.viewport.Scheduler().Stop()
	}
	if w.session != nil {
		if err := w.session.Close(); err != nil {
			w.log.Warn("failed to close session", zap.Error(err))
		}
		w.session = nil
	}
}

// clickHint describes the measurement click, e.g. "alt+click"
func clickHint(trigger measurement.Modifier) string {
	if trigger == measurement.ModNone {
		return "click"
	}
	return fmt.Sprintf("%s+click", trigger)
}
