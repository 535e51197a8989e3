package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/viewer"
)

func TestBindingNameMatchesDefaultBindings(t *testing.T) {
	bindings := viewer.DefaultBindings()
	for _, key := range []fyne.KeyName{
		fyne.KeyW, fyne.KeyA, fyne.KeyS, fyne.KeyD,
		fyne.KeyLeft, fyne.KeyRight, fyne.KeyUp, fyne.KeyDown,
		fyne.KeyPageUp, fyne.KeyPageDown,
	} {
		_, ok := bindings[bindingName(key)]
		assert.True(t, ok, "key %s maps to %q", key, bindingName(key))
	}
}

func TestKeyStateTracksHeldKeys(t *testing.T) {
	k := newKeyState()
	k.press(fyne.KeyW)
	k.press(fyne.KeyPageUp)

	assert.True(t, k.IsKeyDown("w"))
	assert.True(t, k.IsKeyDown("pageup"))

	k.release(fyne.KeyW)
	assert.False(t, k.IsKeyDown("w"))

	k.reset()
	assert.False(t, k.IsKeyDown("pageup"))
}

func TestModifiers(t *testing.T) {
	assert.Equal(t, measurement.ModNone, modifiers(0))
	assert.Equal(t, measurement.ModAlt, modifiers(fyne.KeyModifierAlt))
	assert.Equal(t,
		measurement.ModShift|measurement.ModCtrl|measurement.ModSuper,
		modifiers(fyne.KeyModifierShift|fyne.KeyModifierControl|fyne.KeyModifierSuper),
	)
}

func TestClickHint(t *testing.T) {
	assert.Equal(t, "alt+click", clickHint(measurement.ModAlt))
	assert.Equal(t, "shift+ctrl+click", clickHint(measurement.ModShift|measurement.ModCtrl))
	assert.Equal(t, "click", clickHint(measurement.ModNone))
}
