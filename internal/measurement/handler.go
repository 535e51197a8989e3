package measurement

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/render"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// Modifier is a set of held modifier keys
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper

	// ModNone makes every click a measurement click
	ModNone Modifier = 0
)

var modifierNames = []struct {
	m    Modifier
	name string
}{
	{ModShift, "shift"},
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModSuper, "super"},
}

func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	for _, n := range modifierNames {
		if m&n.m != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifier parses names like "alt" or "ctrl+shift"
func ParseModifier(s string) (Modifier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return ModNone, nil
	}

	var m Modifier
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "option":
			part = "alt"
		case "control":
			part = "ctrl"
		case "cmd", "meta":
			part = "super"
		}
		found := false
		for _, n := range modifierNames {
			if n.name == part {
				m |= n.m
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return m, nil
}

// Click is a pointer click in viewport pixels
type Click struct {
	X, Y      float64
	Modifiers Modifier
}

// Picker finds the model point under a viewport coordinate
type Picker interface {
	Pick(x, y float64) (geometry.Vector3, bool)
}

// PickerFunc adapts a function to the Picker interface
type PickerFunc func(x, y float64) (geometry.Vector3, bool)

// Pick implements Picker
func (f PickerFunc) Pick(x, y float64) (geometry.Vector3, bool) {
	return f(x, y)
}

// Invalidator receives render requests; *render.Scheduler implements it
type Invalidator interface {
	Invalidate(reasons render.Reason)
}

// Handler turns modified clicks into measurement points
type Handler struct {
	pair    *Pair
	picker  Picker
	trigger Modifier
	render  Invalidator
	log     *zap.Logger
}

// NewHandler creates a handler. Clicks without all trigger modifiers are ignored.
func NewHandler(pair *Pair, picker Picker, trigger Modifier, r Invalidator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		pair:    pair,
		picker:  picker,
		trigger: trigger,
		render:  r,
		log:     log,
	}
}

// Pair returns the measured pair
func (h *Handler) Pair() *Pair {
	return h.pair
}

// Trigger returns the modifier that turns a click into a pick
func (h *Handler) Trigger() Modifier {
	return h.trigger
}

// SetPicker replaces the picker, e.g. after the model was reloaded
func (h *Handler) SetPicker(p Picker) {
	h.picker = p
}

// HandleClick picks under the click and records the point. It reports
// whether the measurement changed; misses and unmodified clicks change nothing.
func (h *Handler) HandleClick(c Click) bool {
	if c.Modifiers&h.trigger != h.trigger {
		return false
	}

	pos, ok := h.picker.Pick(c.X, c.Y)
	if !ok {
		h.log.Debug("pick missed geometry", zap.Float64("x", c.X), zap.Float64("y", c.Y))
		return false
	}

	state := h.pair.Add(pos)
	h.render.Invalidate(render.MeasurementChanged)

	if d, ok := h.pair.Distance(); ok {
		h.log.Info("distance measured",
			zap.Stringer("from", d.Start),
			zap.Stringer("to", d.End),
			zap.Float64("distance", d.Value),
		)
	} else {
		h.log.Debug("measurement point picked", zap.Stringer("point", pos), zap.Stringer("state", state))
	}
	return true
}

// Clear removes the current measurement
func (h *Handler) Clear() bool {
	if !h.pair.Reset() {
		return false
	}
	h.render.Invalidate(render.MeasurementChanged)
	return true
}
