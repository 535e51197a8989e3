package gui

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/philipparndt/stlmeasure/internal/measurement"
)

// fyne names keys that binding names spell out
var keyAliases = map[fyne.KeyName]string{
	fyne.KeyPageUp:   "pageup",
	fyne.KeyPageDown: "pagedown",
	fyne.KeyMinus:    "minus",
	fyne.KeyEqual:    "equal",
	fyne.KeyComma:    "comma",
	fyne.KeyPeriod:   "period",
	fyne.KeySpace:    "space",
}

// bindingName converts a fyne key name to the lower-case name used in bindings
func bindingName(key fyne.KeyName) string {
	if name, ok := keyAliases[key]; ok {
		return name
	}
	return strings.ToLower(string(key))
}

// keyState tracks held keys from canvas key events for viewer.Controls
type keyState struct {
	held map[string]bool
}

func newKeyState() *keyState {
	return &keyState{held: make(map[string]bool)}
}

func (k *keyState) press(key fyne.KeyName) {
	k.held[bindingName(key)] = true
}

func (k *keyState) release(key fyne.KeyName) {
	delete(k.held, bindingName(key))
}

// reset forgets held keys, e.g. when the window loses focus
func (k *keyState) reset() {
	clear(k.held)
}

// IsKeyDown implements viewer.KeyState
func (k *keyState) IsKeyDown(key string) bool {
	return k.held[key]
}

// modifiers converts fyne modifier bits
func modifiers(m fyne.KeyModifier) measurement.Modifier {
	var out measurement.Modifier
	if m&fyne.KeyModifierShift != 0 {
		out |= measurement.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= measurement.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= measurement.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= measurement.ModSuper
	}
	return out
}
