package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

var namedKeys = map[string]int32{
	"left":     rl.KeyLeft,
	"right":    rl.KeyRight,
	"up":       rl.KeyUp,
	"down":     rl.KeyDown,
	"pageup":   rl.KeyPageUp,
	"pagedown": rl.KeyPageDown,
	"home":     rl.KeyHome,
	"end":      rl.KeyEnd,
	"insert":   rl.KeyInsert,
	"delete":   rl.KeyDelete,
	"space":    rl.KeySpace,
	"minus":    rl.KeyMinus,
	"equal":    rl.KeyEqual,
	"comma":    rl.KeyComma,
	"period":   rl.KeyPeriod,
}

// keyCode maps a binding key name to a raylib key code
func keyCode(name string) (int32, bool) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return rl.KeyA + int32(c-'a'), true
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), true
		}
	}
	code, ok := namedKeys[name]
	return code, ok
}

// keyboard reads held keys from raylib for viewer.Controls
type keyboard struct {
	codes map[string]int32
}

// newKeyboard resolves the bound key names once; unknown names are returned
// so the caller can report them.
func newKeyboard(bindings viewer.Bindings) (*keyboard, []string) {
	k := &keyboard{codes: make(map[string]int32, len(bindings))}
	var unknown []string
	for _, name := range bindings.Keys() {
		code, ok := keyCode(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		k.codes[name] = code
	}
	return k, unknown
}

// IsKeyDown implements viewer.KeyState
func (k *keyboard) IsKeyDown(name string) bool {
	code, ok := k.codes[name]
	return ok && rl.IsKeyDown(code)
}

// heldModifiers returns the modifier keys currently held
func heldModifiers() measurement.Modifier {
	var m measurement.Modifier
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= measurement.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		m |= measurement.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		m |= measurement.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		m |= measurement.ModSuper
	}
	return m
}
