// Package analysis computes model statistics for the headless commands.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// Report contains the statistics printed by the info command
type Report struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64 // Bounding box volume
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Edges         []EdgeInfo
}

// AnalyzeModel collects statistics over every triangle edge.
// Shared edges are counted once per triangle.
func AnalyzeModel(model *stl.Model) *Report {
	r := &Report{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		Edges:         make([]EdgeInfo, 0, 3*model.TriangleCount()),
	}
	r.Dimensions = r.BoundingBox.Size()
	r.Volume = r.BoundingBox.Volume()

	minLength := math.MaxFloat64
	total := 0.0

	for i, t := range model.Triangles {
		for _, e := range [3][2]geometry.Vector3{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			length := e[0].Distance(e[1])
			r.Edges = append(r.Edges, EdgeInfo{Start: e[0], End: e[1], Length: length, TriangleID: i})

			total += length
			minLength = math.Min(minLength, length)
			r.MaxEdgeLength = math.Max(r.MaxEdgeLength, length)
		}
	}

	r.EdgeCount = len(r.Edges)
	if r.EdgeCount > 0 {
		r.MinEdgeLength = minLength
		r.AvgEdgeLength = total / float64(r.EdgeCount)
	}
	return r
}

// LongestEdges returns the count longest edges, longest first
func (r *Report) LongestEdges(count int) []EdgeInfo {
	return r.sortedEdges(count, func(a, b float64) bool { return a > b })
}

// ShortestEdges returns the count shortest edges, shortest first
func (r *Report) ShortestEdges(count int) []EdgeInfo {
	return r.sortedEdges(count, func(a, b float64) bool { return a < b })
}

func (r *Report) sortedEdges(count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(r.Edges))
	copy(edges, r.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestVertex finds the model vertex nearest to point.
// An empty model returns the zero vector at infinite distance.
func FindNearestVertex(model *stl.Model, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearest geometry.Vector3
	minDistance := math.Inf(1)

	for v := range model.Vertices() {
		if d := point.Distance(v); d < minDistance {
			minDistance = d
			nearest = v
		}
	}

	return nearest, minDistance
}

// PointMeasurement relates two free points to the model's vertices
type PointMeasurement struct {
	From, To               geometry.Vector3
	NearestFrom, NearestTo geometry.Vector3
	SnapFrom, SnapTo       float64 // Distance from each point to its nearest vertex
	Direct                 float64
	BetweenVertices        float64
}

// Snapped reports whether either point is off the model's vertices
func (m PointMeasurement) Snapped() bool {
	return m.SnapFrom > 0 || m.SnapTo > 0
}

// MeasurePoints measures from one point to another directly and between
// their nearest model vertices. Without vertices nothing is snapped.
func MeasurePoints(model *stl.Model, from, to geometry.Vector3) PointMeasurement {
	m := PointMeasurement{From: from, To: to, Direct: from.Distance(to)}
	if model.TriangleCount() == 0 {
		m.NearestFrom, m.NearestTo = from, to
		m.BetweenVertices = m.Direct
		return m
	}
	m.NearestFrom, m.SnapFrom = FindNearestVertex(model, from)
	m.NearestTo, m.SnapTo = FindNearestVertex(model, to)
	m.BetweenVertices = m.NearestFrom.Distance(m.NearestTo)
	return m
}
