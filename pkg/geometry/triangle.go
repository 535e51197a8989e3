package geometry

// Triangle represents a single facet of a mesh
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle with the given facet normal and vertices
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2
}

// EdgeLengths returns the lengths of the edges V1-V2, V2-V3 and V3-V1
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the sum of the edge lengths
func (t Triangle) Perimeter() float64 {
	l := t.EdgeLengths()
	return l[0] + l[1] + l[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	sum := t.V1.Add(t.V2).Add(t.V3)
	return Vector3{X: sum.X / 3, Y: sum.Y / 3, Z: sum.Z / 3}
}

// CalculateNormal computes the unit normal from the winding order.
// STL files frequently carry zero normals, so the stored one is not trusted.
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}
