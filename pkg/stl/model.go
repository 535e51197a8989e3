package stl

import (
	"iter"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// Model is a parsed STL mesh
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddTriangle appends a facet
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of facets
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Vertices yields every facet corner. Shared vertices are yielded once per facet.
func (m *Model) Vertices() iter.Seq[geometry.Vector3] {
	return func(yield func(geometry.Vector3) bool) {
		for _, t := range m.Triangles {
			if !yield(t.V1) || !yield(t.V2) || !yield(t.V3) {
				return
			}
		}
	}
}

// BoundingBox returns the axis-aligned bounds; empty for a model without facets
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for v := range m.Vertices() {
		bbox.Extend(v)
	}
	return bbox
}

// SurfaceArea sums the facet areas
func (m *Model) SurfaceArea() float64 {
	var area float64
	for _, t := range m.Triangles {
		area += t.Area()
	}
	return area
}

// avgEdgeSample bounds the work AvgEdgeLength does on large meshes
const avgEdgeSample = 1000

// AvgEdgeLength estimates vertex spacing from the first facets of the
// model; it scales marker sizes and snapping tolerances.
func (m *Model) AvgEdgeLength() float64 {
	n := min(len(m.Triangles), avgEdgeSample)
	if n == 0 {
		return 1.0
	}

	var total float64
	for _, t := range m.Triangles[:n] {
		total += t.Perimeter()
	}
	return total / float64(n*3)
}
