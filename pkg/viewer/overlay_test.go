package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

func TestOverlayUpdateTracksProjection(t *testing.T) {
	o := NewOverlay()
	a := o.Add(geometry.NewVector3(1.5, 2, 0), "5.0000")
	b := o.Add(geometry.NewVector3(0, 0, -1), "hidden")

	o.Update(ProjectorFunc(func(p geometry.Vector3) (float64, float64, bool) {
		return p.X * 100, p.Y * 100, p.Z >= 0
	}))

	assert.Equal(t, 150.0, a.X)
	assert.Equal(t, 200.0, a.Y)
	assert.True(t, a.Visible)
	assert.False(t, b.Visible)
}

func TestOverlayRemove(t *testing.T) {
	o := NewOverlay()
	a := o.Add(geometry.Vector3{}, "a")
	b := o.Add(geometry.Vector3{}, "b")

	o.Remove(a)
	require.Equal(t, 1, o.Len())
	assert.Same(t, b, o.Anchors()[0])

	o.Remove(a)
	assert.Equal(t, 1, o.Len())
}
