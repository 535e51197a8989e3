package viewer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Action is a camera movement performed while a key is held
type Action int

const (
	OrbitLeft Action = iota
	OrbitRight
	OrbitUp
	OrbitDown
	ZoomIn
	ZoomOut
	PanLeft
	PanRight
	PanUp
	PanDown
)

var actionNames = map[Action]string{
	OrbitLeft:  "orbit-left",
	OrbitRight: "orbit-right",
	OrbitUp:    "orbit-up",
	OrbitDown:  "orbit-down",
	ZoomIn:     "zoom-in",
	ZoomOut:    "zoom-out",
	PanLeft:    "pan-left",
	PanRight:   "pan-right",
	PanUp:      "pan-up",
	PanDown:    "pan-down",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction converts a name such as "orbit-left" to an Action
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown camera action %q", name)
}

// Bindings maps lower-case key names to camera actions
type Bindings map[string]Action

// DefaultBindings returns the WASD/arrow orbit, Q/E zoom and IJKL pan layout
func DefaultBindings() Bindings {
	return Bindings{
		"a":        OrbitLeft,
		"left":     OrbitLeft,
		"d":        OrbitRight,
		"right":    OrbitRight,
		"w":        OrbitUp,
		"up":       OrbitUp,
		"s":        OrbitDown,
		"down":     OrbitDown,
		"e":        ZoomIn,
		"pageup":   ZoomIn,
		"q":        ZoomOut,
		"pagedown": ZoomOut,
		"j":        PanLeft,
		"l":        PanRight,
		"i":        PanUp,
		"k":        PanDown,
	}
}

// ParseBindings converts a key -> action-name map, as found in config files
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := make(Bindings, len(raw))
	for key, name := range raw {
		action, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		b[strings.ToLower(key)] = action
	}
	return b, nil
}

// Keys returns the bound key names in sorted order
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeyState reports whether a named key is currently held
type KeyState interface {
	IsKeyDown(key string) bool
}

// Speeds controls how fast held keys move the camera
type Speeds struct {
	Orbit float64 // Radians per second
	Zoom  float64 // Fraction of distance per second
	Pan   float64 // Fraction of distance per second
}

// DefaultSpeeds returns the speeds used when none are configured
func DefaultSpeeds() Speeds {
	return Speeds{Orbit: 1.5, Zoom: 1.0, Pan: 0.5}
}

// Controls drives a Camera from held keys and queued pointer input.
// Pointer handlers queue movement; Update applies it once per tick.
type Controls struct {
	camera   *Camera
	keys     KeyState
	bindings Bindings
	speeds   Speeds

	orbitX, orbitY float64
	panX, panY     float64
	zoom           float64
	moved          bool
}

// NewControls creates controls for camera. keys may be nil when the host has
// no keyboard.
func NewControls(camera *Camera, keys KeyState, bindings Bindings, speeds Speeds) *Controls {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Controls{
		camera:   camera,
		keys:     keys,
		bindings: bindings,
		speeds:   speeds,
	}
}

// Camera returns the controlled camera
func (c *Controls) Camera() *Camera {
	return c.camera
}

// Orbit queues a rotation in radians
func (c *Controls) Orbit(deltaX, deltaY float64) {
	c.orbitX += deltaX
	c.orbitY += deltaY
}

// Pan queues a pan, in fractions of the camera distance
func (c *Controls) Pan(dx, dy float64) {
	c.panX += dx
	c.panY += dy
}

// Zoom queues a relative zoom; negative values move closer
func (c *Controls) Zoom(delta float64) {
	c.zoom += delta
}

// SetLookAt moves the camera immediately and reports movement on the next Update
func (c *Controls) SetLookAt(cfg CameraConfig) {
	c.camera.Apply(cfg)
	c.moved = true
}

// Update advances the controls by dt and reports whether the camera moved
func (c *Controls) Update(dt time.Duration) bool {
	secs := dt.Seconds()

	if c.keys != nil {
		for key, action := range c.bindings {
			if !c.keys.IsKeyDown(key) {
				continue
			}
			switch action {
			case OrbitLeft:
				c.orbitY -= c.speeds.Orbit * secs
			case OrbitRight:
				c.orbitY += c.speeds.Orbit * secs
			case OrbitUp:
				c.orbitX += c.speeds.Orbit * secs
			case OrbitDown:
				c.orbitX -= c.speeds.Orbit * secs
			case ZoomIn:
				c.zoom -= c.speeds.Zoom * secs
			case ZoomOut:
				c.zoom += c.speeds.Zoom * secs
			case PanLeft:
				c.panX -= c.speeds.Pan * secs
			case PanRight:
				c.panX += c.speeds.Pan * secs
			case PanUp:
				c.panY += c.speeds.Pan * secs
			case PanDown:
				c.panY -= c.speeds.Pan * secs
			}
		}
	}

	moved := c.moved
	if c.orbitX != 0 || c.orbitY != 0 {
		c.camera.Rotate(c.orbitX, c.orbitY)
		moved = true
	}
	if c.panX != 0 || c.panY != 0 {
		c.camera.Pan(c.panX, c.panY)
		moved = true
	}
	if c.zoom != 0 {
		// Keep a single tick from inverting the camera
		c.camera.Zoom(max(c.zoom, -0.9))
		moved = true
	}

	c.orbitX, c.orbitY = 0, 0
	c.panX, c.panY = 0, 0
	c.zoom = 0
	c.moved = false

	return moved
}
