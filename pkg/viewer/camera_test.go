package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

func cubeBox() geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	box.Extend(geometry.NewVector3(0, 0, 0))
	box.Extend(geometry.NewVector3(2, 2, 2))
	return box
}

func TestSuggestCameraConfig(t *testing.T) {
	cfg := SuggestCameraConfig(cubeBox())

	assert.Equal(t, geometry.NewVector3(1, 1, 1), cfg.Target)
	assert.InDelta(t, 4.0, cfg.Position.Distance(cfg.Target), 1e-9)
	assert.Greater(t, cfg.Near, 0.0)
	assert.Greater(t, cfg.Far, 4.0)
}

func TestSuggestCameraConfigEmptyModel(t *testing.T) {
	cfg := SuggestCameraConfig(geometry.NewBoundingBox())

	assert.Equal(t, geometry.Vector3{}, cfg.Target)
	assert.InDelta(t, 10.0, cfg.Position.Length(), 1e-9)
}

func TestNewCameraRecoversOrbitAngles(t *testing.T) {
	cam := NewCamera(cubeBox())

	assert.InDelta(t, 4.0, cam.Distance, 1e-9)
	assert.InDelta(t, defaultAngleX, cam.RotationX, 1e-9)
	assert.InDelta(t, defaultAngleY, cam.RotationY, 1e-9)
}

func TestProjectTargetIsScreenCenter(t *testing.T) {
	cam := NewCamera(cubeBox())

	x, y, depth := cam.Project(cam.Target, 800, 600)
	assert.InDelta(t, 400.0, x, 1e-6)
	assert.InDelta(t, 300.0, y, 1e-6)
	assert.InDelta(t, cam.Distance, depth, 1e-9)
}

func TestUnprojectInvertsProject(t *testing.T) {
	cam := NewCamera(cubeBox())
	point := geometry.NewVector3(1.5, 0.25, 1.75)

	x, y, _ := cam.Project(point, 800, 600)
	ray := cam.Ray(x, y, 800, 600)

	expected := point.Sub(cam.Position).Normalize()
	assert.True(t, ray.Direction.ApproxEqual(expected, 1e-9), "got %v, want %v", ray.Direction, expected)
}

func TestProjectorHidesPointsBehindCamera(t *testing.T) {
	cam := NewCamera(cubeBox())
	proj := cam.Projector(800, 600)

	_, _, visible := proj.Project(cam.Target)
	assert.True(t, visible)

	behind := cam.Position.Add(cam.Position.Sub(cam.Target))
	_, _, visible = proj.Project(behind)
	assert.False(t, visible)
}

func TestRotateClampsPitch(t *testing.T) {
	cam := NewCamera(cubeBox())

	cam.Rotate(10, 0)
	assert.InDelta(t, maxPitch, cam.RotationX, 1e-12)

	cam.Rotate(-20, 0)
	assert.InDelta(t, -maxPitch, cam.RotationX, 1e-12)
}

func TestZoomKeepsMinimumDistance(t *testing.T) {
	cam := NewCamera(cubeBox())

	cam.Zoom(-1)
	assert.Equal(t, minDistance, cam.Distance)
	assert.InDelta(t, minDistance, cam.Position.Distance(cam.Target), 1e-9)
}

func TestPanMovesTargetAndPosition(t *testing.T) {
	cam := NewCamera(cubeBox())
	offset := cam.Position.Sub(cam.Target)
	before := cam.Target

	cam.Pan(0.25, 0)

	_, right, _ := cam.Basis()
	require.False(t, cam.Target.ApproxEqual(before, 1e-9))
	assert.True(t, cam.Target.Sub(before).Normalize().ApproxEqual(right, 1e-9))
	assert.True(t, cam.Position.Sub(cam.Target).ApproxEqual(offset, 1e-9))
	assert.InDelta(t, 0.25*cam.Distance, cam.Target.Distance(before), 1e-9)
}

func TestSetLookAtStraightDown(t *testing.T) {
	cam := NewCamera(cubeBox())
	cam.SetLookAt(geometry.NewVector3(0, 10, 0), geometry.Vector3{})

	assert.InDelta(t, maxPitch, cam.RotationX, 1e-12)
	assert.False(t, math.IsNaN(cam.Position.X))
}

func TestViewConfigPresets(t *testing.T) {
	front := ViewConfig(cubeBox(), FrontView[0], FrontView[1])
	assert.InDelta(t, 1.0, front.Position.X, 1e-9)
	assert.InDelta(t, 1.0, front.Position.Y, 1e-9)
	assert.InDelta(t, 5.0, front.Position.Z, 1e-9)

	top := ViewConfig(cubeBox(), TopView[0], TopView[1])
	assert.Greater(t, top.Position.Y, 4.0)

	// Pitch beyond the pole is clamped
	over := ViewConfig(cubeBox(), math.Pi, 0)
	assert.Equal(t, top.Position, over.Position)
}
