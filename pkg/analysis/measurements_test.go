package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

func rightTriangleModel() *stl.Model {
	m := stl.NewModel("tri")
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, 0, 0),
		geometry.NewVector3(0, 4, 0),
	))
	return m
}

func TestAnalyzeModel(t *testing.T) {
	r := AnalyzeModel(rightTriangleModel())

	assert.Equal(t, 1, r.TriangleCount)
	assert.Equal(t, 3, r.EdgeCount)
	assert.Equal(t, 3.0, r.MinEdgeLength)
	assert.Equal(t, 5.0, r.MaxEdgeLength)
	assert.InDelta(t, 4.0, r.AvgEdgeLength, 1e-12)
	assert.InDelta(t, 6.0, r.SurfaceArea, 1e-12)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), r.Dimensions)
}

func TestAnalyzeEmptyModel(t *testing.T) {
	r := AnalyzeModel(stl.NewModel("empty"))

	assert.Zero(t, r.EdgeCount)
	assert.Zero(t, r.MinEdgeLength)
	assert.Zero(t, r.AvgEdgeLength)
}

func TestLongestAndShortestEdges(t *testing.T) {
	r := AnalyzeModel(rightTriangleModel())

	longest := r.LongestEdges(2)
	require.Len(t, longest, 2)
	assert.Equal(t, 5.0, longest[0].Length)
	assert.Equal(t, 4.0, longest[1].Length)

	shortest := r.ShortestEdges(10)
	require.Len(t, shortest, 3)
	assert.Equal(t, 3.0, shortest[0].Length)

	assert.Empty(t, r.LongestEdges(-1))
}

func TestMeasurePoints(t *testing.T) {
	m := MeasurePoints(rightTriangleModel(), geometry.NewVector3(0.1, 0, 0), geometry.NewVector3(3, 0, 0))

	assert.Equal(t, geometry.NewVector3(0, 0, 0), m.NearestFrom)
	assert.Equal(t, geometry.NewVector3(3, 0, 0), m.NearestTo)
	assert.InDelta(t, 0.1, m.SnapFrom, 1e-12)
	assert.Zero(t, m.SnapTo)
	assert.InDelta(t, 2.9, m.Direct, 1e-12)
	assert.Equal(t, 3.0, m.BetweenVertices)
	assert.True(t, m.Snapped())
}

func TestMeasurePointsEmptyModel(t *testing.T) {
	m := MeasurePoints(stl.NewModel("empty"), geometry.NewVector3(0, 0, 0), geometry.NewVector3(3, 4, 0))

	assert.False(t, m.Snapped())
	assert.Zero(t, m.SnapFrom)
	assert.Zero(t, m.SnapTo)
	assert.Equal(t, 5.0, m.Direct)
	assert.Equal(t, 5.0, m.BetweenVertices)
}

func TestFindNearestVertexEmptyModel(t *testing.T) {
	_, d := FindNearestVertex(stl.NewModel("empty"), geometry.Vector3{})
	assert.True(t, math.IsInf(d, 1))
}
