package render

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControls struct {
	moves []bool
	dts   []time.Duration
}

func (c *fakeControls) Update(dt time.Duration) bool {
	c.dts = append(c.dts, dt)
	if len(c.moves) == 0 {
		return false
	}
	m := c.moves[0]
	c.moves = c.moves[1:]
	return m
}

type recordingRenderer struct {
	frames []Reason
	during func()
}

func (r *recordingRenderer) Render(reasons Reason) {
	r.frames = append(r.frames, reasons)
	if r.during != nil {
		r.during()
	}
}

type countingVisibility struct{ calls int }

func (v *countingVisibility) UpdateCamera() { v.calls++ }

// settled returns a scheduler whose initial frame has already been drawn
func settled(t *testing.T, r *recordingRenderer, c Controls, opts ...Option) *Scheduler {
	t.Helper()
	s := New(r, c, opts...)
	require.True(t, s.Tick(0), "first tick should render")
	r.frames = nil
	return s
}

func TestFirstTickRenders(t *testing.T) {
	r := &recordingRenderer{}
	s := New(r, nil)

	assert.True(t, s.Tick(16*time.Millisecond))
	assert.Equal(t, []Reason{ModelChanged}, r.frames)
}

func TestTickSkipsWhenClean(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, &fakeControls{})

	for i := 0; i < 5; i++ {
		assert.False(t, s.Tick(16*time.Millisecond))
	}
	assert.Empty(t, r.frames)
	assert.Equal(t, Stats{Ticks: 6, Rendered: 1, Skipped: 5}, s.Stats())
}

func TestRenderOnlyAfterInvalidate(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, nil)

	s.Invalidate(MeasurementChanged)
	assert.Equal(t, MeasurementChanged, s.Pending())

	assert.True(t, s.Tick(0))
	assert.False(t, s.Tick(0))
	assert.Equal(t, []Reason{MeasurementChanged}, r.frames)
	assert.Equal(t, Reason(0), s.Pending())
}

func TestReasonsAreIndependentAndClearedTogether(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, nil)

	s.Invalidate(ModelChanged)
	s.Invalidate(MeasurementChanged)
	s.Invalidate(MeasurementChanged)

	require.True(t, s.Tick(0))
	require.Len(t, r.frames, 1)
	assert.True(t, r.frames[0].Has(ModelChanged))
	assert.True(t, r.frames[0].Has(MeasurementChanged))
	assert.False(t, r.frames[0].Has(CameraMoved))
	assert.Equal(t, Reason(0), s.Pending())
}

func TestControlsMovementRendersAndRefreshesVisibility(t *testing.T) {
	r := &recordingRenderer{}
	c := &fakeControls{moves: []bool{true, false, true}}
	v := &countingVisibility{}
	s := New(r, c, WithVisibility(v))

	assert.True(t, s.Tick(10*time.Millisecond))
	assert.False(t, s.Tick(20*time.Millisecond))
	assert.True(t, s.Tick(30*time.Millisecond))

	assert.Equal(t, []Reason{CameraMoved | ModelChanged, CameraMoved}, r.frames)
	assert.Equal(t, 2, v.calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}, c.dts)
}

func TestFlagSetDuringRenderIsNotLost(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, nil)

	s.Invalidate(ModelChanged)
	r.during = func() {
		r.during = nil
		s.Invalidate(MeasurementChanged)
	}

	require.True(t, s.Tick(0))
	require.True(t, s.Tick(0))
	assert.False(t, s.Tick(0))
	assert.Equal(t, []Reason{ModelChanged, MeasurementChanged}, r.frames)
}

func TestStopPreventsRendering(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, nil)

	s.Stop()
	s.Stop()
	s.Invalidate(ModelChanged)

	assert.True(t, s.Stopped())
	assert.False(t, s.Tick(0))
	assert.Empty(t, r.frames)
}

func TestInvalidateConcurrently(t *testing.T) {
	r := &recordingRenderer{}
	s := settled(t, r, nil)

	var wg sync.WaitGroup
	for _, reason := range []Reason{CameraMoved, ModelChanged, MeasurementChanged} {
		wg.Add(1)
		go func(reason Reason) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Invalidate(reason)
			}
		}(reason)
	}
	wg.Wait()

	require.True(t, s.Tick(0))
	assert.Equal(t, []Reason{CameraMoved | ModelChanged | MeasurementChanged}, r.frames)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	r := &recordingRenderer{}
	s := New(r, nil)
	frames := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, frames) }()

	frames <- time.Now()
	frames <- time.Now()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, uint64(2), s.Stats().Ticks)
	assert.Len(t, r.frames, 1)
}

func TestRunReturnsWhenFramesClose(t *testing.T) {
	var dispatched int
	s := New(RendererFunc(func(Reason) {}), nil, WithDispatcher(func(f func()) {
		dispatched++
		f()
	}))
	frames := make(chan time.Time, 3)
	frames <- time.Now()
	frames <- time.Now()
	close(frames)

	require.NoError(t, s.Run(context.Background(), frames))
	assert.Equal(t, 2, dispatched)
	assert.Equal(t, uint64(1), s.Stats().Rendered)
}

func TestRunReturnsAfterStop(t *testing.T) {
	s := New(RendererFunc(func(Reason) {}), nil)
	s.Stop()

	frames := make(chan time.Time, 1)
	frames <- time.Now()
	require.NoError(t, s.Run(context.Background(), frames))
	assert.Equal(t, uint64(0), s.Stats().Ticks)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "none", Reason(0).String())
	assert.Equal(t, "camera|measurement", (CameraMoved | MeasurementChanged).String())
}

func TestClockDelta(t *testing.T) {
	now := time.Unix(100, 0)
	c := newClockWith(func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, c.Delta())
	assert.Equal(t, time.Duration(0), c.Delta())

	now = now.Add(-time.Second)
	assert.Equal(t, time.Duration(0), c.Delta())
}
