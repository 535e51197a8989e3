// Package picking finds where a ray meets the visible geometry of a model.
package picking

import (
	"math"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// Hit describes the nearest intersection of a ray with a model.
type Hit struct {
	Point         geometry.Vector3
	Distance      float64 // Distance along the ray
	TriangleIndex int
}

// Picker casts rays against a single model.
// The bounding box is cached, so a Picker must be rebuilt when the model changes.
type Picker struct {
	model *stl.Model
	bbox  geometry.BoundingBox
}

// NewPicker creates a picker for model.
func NewPicker(model *stl.Model) *Picker {
	return &Picker{
		model: model,
		bbox:  model.BoundingBox(),
	}
}

// Intersect returns the nearest triangle hit along ray.
func (p *Picker) Intersect(ray geometry.Ray) (Hit, bool) {
	if p.model == nil || len(p.model.Triangles) == 0 {
		return Hit{}, false
	}
	if _, ok := ray.IntersectBox(p.bbox); !ok {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1), TriangleIndex: -1}
	for i, tri := range p.model.Triangles {
		t, ok := ray.IntersectTriangle(tri)
		if ok && t < best.Distance {
			best.Distance = t
			best.TriangleIndex = i
		}
	}

	if best.TriangleIndex < 0 {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// NearestVertex returns the vertex of the hit triangle closest to the hit
// point and its distance, for snapping picks onto mesh corners.
func (p *Picker) NearestVertex(hit Hit) (geometry.Vector3, float64) {
	tri := p.model.Triangles[hit.TriangleIndex]
	nearest := tri.V1
	minDist := hit.Point.Distance(tri.V1)
	for _, v := range []geometry.Vector3{tri.V2, tri.V3} {
		if d := hit.Point.Distance(v); d < minDist {
			nearest, minDist = v, d
		}
	}
	return nearest, minDist
}

// Pick returns the point where ray meets the model. With a positive snap the
// point moves onto the nearest corner of the hit triangle when that corner is
// no further away than snap.
func (p *Picker) Pick(ray geometry.Ray, snap float64) (geometry.Vector3, bool) {
	hit, ok := p.Intersect(ray)
	if !ok {
		return geometry.Vector3{}, false
	}
	if snap > 0 {
		if v, d := p.NearestVertex(hit); d <= snap {
			return v, true
		}
	}
	return hit.Point, true
}
