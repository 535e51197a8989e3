// Package measurement implements the two-point distance measurement workflow.
//
// A Pair is an explicit state machine:
//
//	Empty --pick--> OnePoint --pick--> Complete --pick--> OnePoint (new pair)
//
// A third pick never extends the measurement; it tears down both markers, the
// line and the label, then starts over with the new point.
package measurement

import (
	"fmt"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// State is the number of points a Pair holds
type State int

const (
	Empty State = iota
	OnePoint
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case OnePoint:
		return "one-point"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Visual is a scene object owned by a measurement
type Visual interface {
	Remove()
}

// Scene creates measurement visuals in whatever renders the model
type Scene interface {
	// AddMarker places the marker for the index-th point (0 or 1) of a pair
	AddMarker(pos geometry.Vector3, index int) Visual
	AddLine(start, end geometry.Vector3) Visual
	// AddLabel pins a text label to a 3D anchor point
	AddLabel(anchor geometry.Vector3, text string) Visual
}

// Point is a picked position together with its marker
type Point struct {
	Position geometry.Vector3
	Marker   Visual
}

// Pair holds zero, one or two measurement points and their visuals
type Pair struct {
	scene  Scene
	format Format

	points   []Point
	line     Visual
	label    Visual
	distance Distance
}

// NewPair creates an empty pair drawing into scene
func NewPair(scene Scene, format Format) *Pair {
	return &Pair{
		scene:  scene,
		format: format,
		points: make([]Point, 0, 2),
	}
}

// State returns the current state
func (p *Pair) State() State {
	return State(len(p.points))
}

// Points returns the stored positions in pick order
func (p *Pair) Points() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(p.points))
	for i, pt := range p.points {
		out[i] = pt.Position
	}
	return out
}

// Distance returns the measured distance once the pair is complete
func (p *Pair) Distance() (Distance, bool) {
	if p.State() != Complete {
		return Distance{}, false
	}
	return p.distance, true
}

// Label returns the text shown in the distance label, if any
func (p *Pair) Label() (string, bool) {
	d, ok := p.Distance()
	if !ok {
		return "", false
	}
	return d.Text(p.format), true
}

// Format returns the display format
func (p *Pair) Format() Format {
	return p.format
}

// Add records a picked position and returns the new state
func (p *Pair) Add(pos geometry.Vector3) State {
	if p.State() == Complete {
		p.teardown()
	}

	marker := p.scene.AddMarker(pos, len(p.points))
	p.points = append(p.points, Point{Position: pos, Marker: marker})

	if len(p.points) == 2 {
		p.distance = NewDistance(p.points[0].Position, p.points[1].Position)
		p.line = p.scene.AddLine(p.distance.Start, p.distance.End)
		p.label = p.scene.AddLabel(p.distance.Midpoint, p.distance.Text(p.format))
	}
	return p.State()
}

// Reset removes every point and visual. It reports whether anything was removed.
func (p *Pair) Reset() bool {
	if p.State() == Empty {
		return false
	}
	p.teardown()
	return true
}

func (p *Pair) teardown() {
	if p.label != nil {
		p.label.Remove()
		p.label = nil
	}
	if p.line != nil {
		p.line.Remove()
		p.line = nil
	}
	for _, pt := range p.points {
		if pt.Marker != nil {
			pt.Marker.Remove()
		}
	}
	p.points = p.points[:0]
	p.distance = Distance{}
}
