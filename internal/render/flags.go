package render

import (
	"strings"
	"sync/atomic"
)

// Reason is a set of independent reasons a frame is owed
type Reason uint32

const (
	// CameraMoved is set when the controls report camera movement
	CameraMoved Reason = 1 << iota
	// ModelChanged is set when model content or visibility changed
	ModelChanged
	// MeasurementChanged is set when a pick added or removed measurement visuals
	MeasurementChanged
)

var reasonNames = []struct {
	r    Reason
	name string
}{
	{CameraMoved, "camera"},
	{ModelChanged, "model"},
	{MeasurementChanged, "measurement"},
}

// Has reports whether all reasons in other are set
func (r Reason) Has(other Reason) bool {
	return r&other == other
}

func (r Reason) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for _, n := range reasonNames {
		if r.Has(n.r) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// DirtyFlags records reasons to render. Set may be called from any goroutine;
// take clears every flag in one atomic swap.
type DirtyFlags struct {
	bits atomic.Uint32
}

// Set marks the given reasons dirty
func (f *DirtyFlags) Set(r Reason) {
	f.bits.Or(uint32(r))
}

// Pending returns the currently set reasons without clearing them
func (f *DirtyFlags) Pending() Reason {
	return Reason(f.bits.Load())
}

// take returns the set reasons and clears them together
func (f *DirtyFlags) take() Reason {
	return Reason(f.bits.Swap(0))
}
