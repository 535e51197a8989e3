// Package render decides when a frame has to be drawn.
//
// A Scheduler is ticked once per animation frame. It advances the camera
// controls and renders only when a dirty flag is set: the camera moved, the
// model content changed or the measurement changed. Idle frames cost one
// controls update and nothing else.
package render

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Controls advances camera input and reports whether the camera moved
type Controls interface {
	Update(dt time.Duration) bool
}

// Visibility refreshes model visibility or level of detail for a new camera
type Visibility interface {
	UpdateCamera()
}

// Renderer draws one frame. reasons tells which state changed.
type Renderer interface {
	Render(reasons Reason)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(reasons Reason)

// Render implements Renderer
func (f RendererFunc) Render(reasons Reason) {
	f(reasons)
}

// Stats counts scheduler activity
type Stats struct {
	Ticks    uint64
	Rendered uint64
	Skipped  uint64
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithVisibility sets the visibility refresher called after camera movement
func WithVisibility(v Visibility) Option {
	return func(s *Scheduler) { s.visibility = v }
}

// WithLogger sets the scheduler logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithDispatcher routes ticks started by Run through dispatch, for toolkits
// that require drawing on their own UI goroutine.
func WithDispatcher(dispatch func(func())) Option {
	return func(s *Scheduler) { s.dispatch = dispatch }
}

// Scheduler is a dirty-flag render loop
type Scheduler struct {
	flags      DirtyFlags
	renderer   Renderer
	controls   Controls
	visibility Visibility
	dispatch   func(func())
	log        *zap.Logger
	stopped    atomic.Bool

	ticks    atomic.Uint64
	rendered atomic.Uint64
	skipped  atomic.Uint64
}

// New creates a scheduler. controls may be nil for a static camera.
// The first tick always renders.
func New(renderer Renderer, controls Controls, opts ...Option) *Scheduler {
	s := &Scheduler{
		renderer: renderer,
		controls: controls,
		dispatch: func(f func()) { f() },
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.flags.Set(ModelChanged)
	return s
}

// Invalidate marks reasons dirty; the next tick renders.
// Safe to call from any goroutine.
func (s *Scheduler) Invalidate(reasons Reason) {
	s.flags.Set(reasons)
}

// Pending returns the reasons that will cause the next tick to render
func (s *Scheduler) Pending() Reason {
	return s.flags.Pending()
}

// Tick advances the controls by dt and renders if anything is dirty.
// It reports whether a frame was rendered.
func (s *Scheduler) Tick(dt time.Duration) bool {
	if s.stopped.Load() {
		return false
	}
	s.ticks.Add(1)

	if s.controls != nil && s.controls.Update(dt) {
		s.flags.Set(CameraMoved)
		if s.visibility != nil {
			s.visibility.UpdateCamera()
		}
	}

	// Flags raised while Render runs stay set for the next tick
	reasons := s.flags.take()
	if reasons == 0 {
		s.skipped.Add(1)
		return false
	}

	s.renderer.Render(reasons)
	s.rendered.Add(1)
	return true
}

// Run ticks the scheduler on every value received from frames until ctx is
// done, frames is closed or Stop is called.
func (s *Scheduler) Run(ctx context.Context, frames <-chan time.Time) error {
	clock := NewClock()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok || s.stopped.Load() {
				return nil
			}
			dt := clock.Delta()
			s.dispatch(func() { s.Tick(dt) })
		}
	}
}

// Stop disposes of the scheduler; later ticks never render
func (s *Scheduler) Stop() {
	if s.stopped.Swap(true) {
		return
	}
	st := s.Stats()
	s.log.Debug("render scheduler stopped",
		zap.Uint64("ticks", st.Ticks),
		zap.Uint64("rendered", st.Rendered),
		zap.Uint64("skipped", st.Skipped),
	)
}

// Stopped reports whether Stop was called
func (s *Scheduler) Stopped() bool {
	return s.stopped.Load()
}

// Stats returns a snapshot of the counters
func (s *Scheduler) Stats() Stats {
	return Stats{
		Ticks:    s.ticks.Load(),
		Rendered: s.rendered.Load(),
		Skipped:  s.skipped.Load(),
	}
}
