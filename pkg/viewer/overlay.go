package viewer

import (
	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// Projector maps a world position to screen coordinates. visible is false
// when the point is behind the camera.
type Projector interface {
	Project(p geometry.Vector3) (x, y float64, visible bool)
}

// ProjectorFunc adapts a function to the Projector interface
type ProjectorFunc func(p geometry.Vector3) (float64, float64, bool)

// Project implements Projector
func (f ProjectorFunc) Project(p geometry.Vector3) (float64, float64, bool) {
	return f(p)
}

// Anchor is an overlay element pinned to a 3D point
type Anchor struct {
	World   geometry.Vector3
	Text    string
	X, Y    float64 // Screen position after the last Update
	Visible bool

	id int
}

// Overlay tracks screen positions of elements anchored to 3D points.
// Update must run after every rendered frame so the anchors follow the camera.
type Overlay struct {
	anchors []*Anchor
	nextID  int
}

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Add pins a new element with text at world
func (o *Overlay) Add(world geometry.Vector3, text string) *Anchor {
	o.nextID++
	a := &Anchor{World: world, Text: text, id: o.nextID}
	o.anchors = append(o.anchors, a)
	return a
}

// Remove detaches an anchor; removing an unknown anchor is a no-op
func (o *Overlay) Remove(a *Anchor) {
	for i, existing := range o.anchors {
		if existing.id == a.id {
			o.anchors = append(o.anchors[:i], o.anchors[i+1:]...)
			return
		}
	}
}

// Update recomputes every anchor's screen position
func (o *Overlay) Update(p Projector) {
	for _, a := range o.anchors {
		a.X, a.Y, a.Visible = p.Project(a.World)
	}
}

// Anchors returns the anchors in insertion order
func (o *Overlay) Anchors() []*Anchor {
	return o.anchors
}

// Len returns the number of anchors
func (o *Overlay) Len() int {
	return len(o.anchors)
}
