package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/pkg/stl"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

const maxWireframeEdges = 200_000

type edgeKey [6]float32

// wireframe holds the deduplicated model edges. It is the scheduler's
// visibility hook: camera movement rescales the edge thickness so lines keep
// a constant screen width, and models too dense to outline are hidden.
type wireframe struct {
	edges     [][2]rl.Vector3
	camera    *viewer.Camera
	thickness float32
	tooDense  bool
}

func newWireframe(model *stl.Model, camera *viewer.Camera) *wireframe {
	w := &wireframe{camera: camera}
	w.setModel(model)
	return w
}

// setModel rebuilds the edge list for a new model
func (w *wireframe) setModel(model *stl.Model) {
	seen := make(map[edgeKey]struct{}, len(model.Triangles)*3/2)
	w.edges = w.edges[:0]

	for _, t := range model.Triangles {
		v := [3]rl.Vector3{toRL(t.V1), toRL(t.V2), toRL(t.V3)}
		for i := 0; i < 3; i++ {
			a, b := v[i], v[(i+1)%3]
			if lessVec(b, a) {
				a, b = b, a
			}
			key := edgeKey{a.X, a.Y, a.Z, b.X, b.Y, b.Z}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			w.edges = append(w.edges, [2]rl.Vector3{a, b})
		}
	}
	w.tooDense = len(w.edges) > maxWireframeEdges
	w.UpdateCamera()
}

func lessVec(a, b rl.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// UpdateCamera implements render.Visibility
func (w *wireframe) UpdateCamera() {
	w.thickness = math32.Max(float32(w.camera.Distance)*0.0008, 1e-4)
}

// draw renders the edges; call between BeginMode3D and EndMode3D
func (w *wireframe) draw() {
	if w.tooDense {
		return
	}
	color := rl.NewColor(100, 100, 100, 200)
	if len(w.edges) > 20_000 {
		for _, e := range w.edges {
			rl.DrawLine3D(e[0], e[1], color)
		}
		return
	}
	for _, e := range w.edges {
		rl.DrawCylinderEx(e[0], e[1], w.thickness, w.thickness, 6, color)
	}
}
