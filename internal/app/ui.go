package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/version"
)

const (
	fontSize12 = float32(12)
	fontSize14 = float32(14)
	fontSize16 = float32(16)
	lineHeight = float32(20)
)

var (
	labelBackground = rl.NewColor(20, 20, 20, 220)
	hintColor       = rl.NewColor(144, 238, 144, 255)
)

// getPointColor returns the marker colour for the index-th point of a pair
func getPointColor(index int) rl.Color {
	colors := []rl.Color{rl.Red, rl.Green}
	return colors[index%len(colors)]
}

// drawLabels draws the overlay labels at the positions tracked by the last render
func (app *App) drawLabels() {
	const padding = float32(6)

	for _, a := range app.visuals.Overlay().Anchors() {
		if !a.Visible {
			continue
		}
		pos := rl.Vector2{X: float32(a.X), Y: float32(a.Y)}
		size := rl.MeasureTextEx(app.font, a.Text, fontSize16, 1)

		rect := rl.Rectangle{
			X:      pos.X - size.X/2 - padding,
			Y:      pos.Y - size.Y/2 - padding,
			Width:  size.X + 2*padding,
			Height: size.Y + 2*padding,
		}
		rl.DrawRectangleRec(rect, labelBackground)
		rl.DrawRectangleLinesEx(rect, 2, rl.Yellow)
		rl.DrawTextEx(app.font, a.Text, rl.Vector2{X: pos.X - size.X/2, Y: pos.Y - size.Y/2}, fontSize16, 1, rl.Yellow)
	}
}

func (app *App) text(s string, y float32, size float32, color rl.Color) float32 {
	rl.DrawTextEx(app.font, s, rl.Vector2{X: 10, Y: y}, size, 1, color)
	return y + lineHeight
}

// drawUI draws the info panel, the instructions and the status line
func (app *App) drawUI() {
	y := float32(10)
	report := app.Model.report
	unit := app.handler.Pair().Format().Unit

	// === MODEL ===
	y = app.text("Model:", y, fontSize16, rl.Yellow)
	if app.Model.model.Name != "" {
		y = app.text(fmt.Sprintf("  Name: %s", app.Model.model.Name), y, fontSize14, rl.White)
	}
	y = app.text(fmt.Sprintf("  Triangles: %d", report.TriangleCount), y, fontSize14, rl.White)
	y = app.text(fmt.Sprintf("  Size: %.2f x %.2f x %.2f %s", report.Dimensions.X, report.Dimensions.Y, report.Dimensions.Z, unit), y, fontSize14, rl.White)
	y += lineHeight / 2

	// === MEASURE ===
	pair := app.handler.Pair()
	trigger := app.handler.Trigger()
	y = app.text("Measure:", y, fontSize16, rl.Yellow)
	switch pair.State() {
	case measurement.Empty:
		y = app.text(fmt.Sprintf("  %s: Select first point", clickHint(trigger)), y, fontSize14, hintColor)
	case measurement.OnePoint:
		p := pair.Points()[0]
		y = app.text(fmt.Sprintf("  Point 1: %s", p), y, fontSize14, rl.Green)
		y = app.text(fmt.Sprintf("  %s: Select second point", clickHint(trigger)), y, fontSize14, hintColor)
	case measurement.Complete:
		d, _ := pair.Distance()
		label, _ := pair.Label()
		y = app.text(fmt.Sprintf("  Point 1: %s", d.Start), y, fontSize14, rl.Green)
		y = app.text(fmt.Sprintf("  Point 2: %s", d.End), y, fontSize14, rl.Green)
		y = app.text(fmt.Sprintf("  Distance: %s", label), y, fontSize16, rl.Yellow)
		y = app.text(fmt.Sprintf("  dX %.3f  dY %.3f  dZ %.3f", d.Delta.X, d.Delta.Y, d.Delta.Z), y, fontSize14, rl.SkyBlue)
		y = app.text(fmt.Sprintf("  %s: Start new measurement", clickHint(trigger)), y, fontSize14, hintColor)
	}
	if pair.State() != measurement.Empty {
		y = app.text("  ESC: Clear measurement", y, fontSize14, rl.NewColor(255, 200, 100, 255))
	}
	y += lineHeight / 2

	// === NAVIGATE ===
	if app.View.showHelp {
		y = app.text("Navigate:", y, fontSize16, rl.Yellow)
		y = app.text("  Left Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom", y, fontSize14, rl.LightGray)
		y = app.text("  WASD/Arrows: Orbit | Q/E: Zoom | IJKL: Pan", y, fontSize14, rl.LightGray)
		y = app.text("  Home: Reset | T: Top | B: Bottom | 1-4: Sides", y, fontSize14, rl.LightGray)
		app.text("  G: Wireframe | F: Fill | H: Hide help", y, fontSize14, rl.LightGray)
	} else {
		app.text("H: Show controls", y, fontSize14, rl.LightGray)
	}

	app.drawStatus()

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 24
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	stats := app.sched.Stats()
	fpsText := fmt.Sprintf("FPS: %d  frames rendered: %d", rl.GetFPS(), stats.Rendered)
	versionWidth := rl.MeasureTextEx(app.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}

// drawStatus shows reload results in the top-right corner
func (app *App) drawStatus() {
	fw := &app.FileWatch
	if fw.status == "" || time.Now().After(fw.statusUntil) {
		return
	}

	color := rl.Yellow
	if fw.statusIsErr {
		color = rl.NewColor(255, 100, 100, 255)
	}

	const padding = float32(10)
	size := rl.MeasureTextEx(app.font, fw.status, fontSize16, 1)
	rect := rl.Rectangle{
		X:      float32(rl.GetScreenWidth()) - size.X - 2*padding - 20,
		Y:      20,
		Width:  size.X + 2*padding,
		Height: size.Y + 2*padding,
	}
	rl.DrawRectangleRec(rect, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLinesEx(rect, 1, color)
	rl.DrawTextEx(app.font, fw.status, rl.Vector2{X: rect.X + padding, Y: rect.Y + padding}, fontSize16, 1, color)
}

// clickHint names the click that picks a point, e.g. "Alt+Click"
func clickHint(trigger measurement.Modifier) string {
	if trigger == measurement.ModNone {
		return "Click"
	}
	names := map[string]string{"shift": "Shift", "ctrl": "Ctrl", "alt": "Alt", "super": "Super"}
	out := ""
	for _, part := range splitModifier(trigger) {
		out += names[part] + "+"
	}
	return out + "Click"
}

func splitModifier(m measurement.Modifier) []string {
	var parts []string
	for _, mod := range []measurement.Modifier{measurement.ModShift, measurement.ModCtrl, measurement.ModAlt, measurement.ModSuper} {
		if m&mod != 0 {
			parts = append(parts, mod.String())
		}
	}
	return parts
}
