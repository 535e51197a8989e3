package geometry

import "math"

// rayEpsilon guards against parallel rays and self-intersection
const rayEpsilon = 1e-9

// Ray is a half-line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3 // Normalized
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle returns the distance along the ray to the triangle, using
// the Möller-Trumbore algorithm. Both faces are hit.
func (r Ray) IntersectTriangle(tri Triangle) (float64, bool) {
	edge1 := tri.V2.Sub(tri.V1)
	edge2 := tri.V3.Sub(tri.V1)

	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < rayEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := r.Origin.Sub(tri.V1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectBox tests the ray against an axis-aligned box with the slab method.
// If the ray starts inside the box, the exit distance is returned.
func (r Ray) IntersectBox(box BoundingBox) (float64, bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
