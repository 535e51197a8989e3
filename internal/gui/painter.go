package gui

import (
	"image/color"
	"math"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

var (
	measureLineColor = color.RGBA{255, 220, 0, 255}
	pointColors      = []color.RGBA{
		{255, 0, 0, 255}, // First point
		{0, 255, 0, 255}, // Second point
	}
)

const markerRadius = 5.0

// painter draws a model and its measurement visuals into a frame
type painter struct {
	camera     *viewer.Camera
	background color.RGBA
	filled     bool
	wireframe  bool
}

// paint renders one complete frame
func (p *painter) paint(f *frame, model *stl.Model, visuals *measurement.Visuals) {
	f.clear(p.background)
	w, h := float64(f.width()), float64(f.height())
	forward, _, _ := p.camera.Basis()

	// Edges sit slightly in front of their faces
	bias := p.camera.Distance * 1e-3

	if model != nil {
		for _, t := range model.Triangles {
			a, okA := p.project(t.V1, w, h)
			b, okB := p.project(t.V2, w, h)
			c, okC := p.project(t.V3, w, h)
			if !okA || !okB || !okC {
				continue
			}
			if p.filled {
				f.fillTriangle(a, b, c, shade(t, forward))
			}
			if p.wireframe {
				col := edgeColor((a.z + b.z + c.z) / 3)
				f.line(a, b, bias, col)
				f.line(b, c, bias, col)
				f.line(c, a, bias, col)
			}
		}
	}

	if visuals == nil {
		return
	}
	for _, l := range visuals.Lines() {
		a, okA := p.project(l.Start, w, h)
		b, okB := p.project(l.End, w, h)
		if okA && okB {
			f.line(vertex{a.x, a.y, onTop}, vertex{b.x, b.y, onTop}, 0, measureLineColor)
		}
	}
	for _, m := range visuals.Markers() {
		if v, ok := p.project(m.Position, w, h); ok {
			f.disc(v.x, v.y, markerRadius, pointColors[m.Index%len(pointColors)])
		}
	}
}

// project maps a world point into the frame; false when behind the near plane
func (p *painter) project(v geometry.Vector3, w, h float64) (vertex, bool) {
	x, y, z := p.camera.Project(v, w, h)
	return vertex{x, y, z}, z > p.camera.Near
}

// shade lights a face with a headlight so the side facing the viewer is brightest
func shade(t geometry.Triangle, forward geometry.Vector3) color.RGBA {
	light := math.Max(0.3, math.Abs(t.CalculateNormal().Dot(forward)))
	const base = 200.0
	return color.RGBA{
		R: uint8(base * light * 0.5),
		G: uint8(base * light * 0.6),
		B: uint8(base * light),
		A: 255,
	}
}

// edgeColor darkens far edges
func edgeColor(depth float64) color.RGBA {
	brightness := uint8(math.Max(50, math.Min(255, 230-depth*0.5)))
	return color.RGBA{brightness, brightness, brightness, 255}
}
