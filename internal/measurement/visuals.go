package measurement

import (
	"maps"
	"slices"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

// Marker is a retained point marker
type Marker struct {
	Position geometry.Vector3
	Index    int
}

// Line is a retained measurement line
type Line struct {
	Start, End geometry.Vector3
}

// Visuals is a retained Scene for front ends that redraw from data.
// Markers and lines are drawn into the cached frame; labels live in the
// overlay and follow the camera after every render.
type Visuals struct {
	overlay *viewer.Overlay
	nextID  int
	markers map[int]Marker
	lines   map[int]Line
}

// NewVisuals creates an empty store
func NewVisuals() *Visuals {
	return &Visuals{
		overlay: viewer.NewOverlay(),
		markers: make(map[int]Marker),
		lines:   make(map[int]Line),
	}
}

// handle removes its visual once
type handle struct {
	remove func()
}

func (h *handle) Remove() {
	if h.remove != nil {
		h.remove()
		h.remove = nil
	}
}

func (v *Visuals) id() int {
	v.nextID++
	return v.nextID
}

// AddMarker implements Scene
func (v *Visuals) AddMarker(pos geometry.Vector3, index int) Visual {
	id := v.id()
	v.markers[id] = Marker{Position: pos, Index: index}
	return &handle{remove: func() { delete(v.markers, id) }}
}

// AddLine implements Scene
func (v *Visuals) AddLine(start, end geometry.Vector3) Visual {
	id := v.id()
	v.lines[id] = Line{Start: start, End: end}
	return &handle{remove: func() { delete(v.lines, id) }}
}

// AddLabel implements Scene
func (v *Visuals) AddLabel(anchor geometry.Vector3, text string) Visual {
	a := v.overlay.Add(anchor, text)
	return &handle{remove: func() { v.overlay.Remove(a) }}
}

// Markers returns the live markers in creation order
func (v *Visuals) Markers() []Marker {
	out := make([]Marker, 0, len(v.markers))
	for _, id := range slices.Sorted(maps.Keys(v.markers)) {
		out = append(out, v.markers[id])
	}
	return out
}

// Lines returns the live lines in creation order
func (v *Visuals) Lines() []Line {
	out := make([]Line, 0, len(v.lines))
	for _, id := range slices.Sorted(maps.Keys(v.lines)) {
		out = append(out, v.lines[id])
	}
	return out
}

// Overlay returns the label overlay
func (v *Visuals) Overlay() *viewer.Overlay {
	return v.overlay
}

// Len returns the number of live markers, lines and labels
func (v *Visuals) Len() int {
	return len(v.markers) + len(v.lines) + v.overlay.Len()
}
