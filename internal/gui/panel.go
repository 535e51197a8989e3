package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// infoPanel shows model statistics and the current measurement
type infoPanel struct {
	point1Label    *widget.Label
	point2Label    *widget.Label
	distanceXLabel *widget.Label
	distanceYLabel *widget.Label
	distanceZLabel *widget.Label
	totalDistLabel *widget.Label
	modelInfoLabel *widget.Label
	statusLabel    *widget.Label
}

func newInfoPanel() *infoPanel {
	p := &infoPanel{
		point1Label:    widget.NewLabel(""),
		point2Label:    widget.NewLabel(""),
		distanceXLabel: widget.NewLabel(""),
		distanceYLabel: widget.NewLabel(""),
		distanceZLabel: widget.NewLabel(""),
		totalDistLabel: widget.NewLabel(""),
		modelInfoLabel: widget.NewLabel(""),
		statusLabel:    widget.NewLabel(""),
	}
	p.totalDistLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.statusLabel.Wrapping = fyne.TextWrapWord
	return p
}

// showModel fills in the model statistics
func (p *infoPanel) showModel(model *stl.Model) {
	r := analysis.AnalyzeModel(model)
	p.modelInfoLabel.SetText(fmt.Sprintf(
		"Model: %s\nTriangles: %d\nEdges: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		model.Name,
		r.TriangleCount,
		r.EdgeCount,
		r.SurfaceArea,
		r.Dimensions.X,
		r.Dimensions.Y,
		r.Dimensions.Z,
	))
}

// showPair fills in the measurement section
func (p *infoPanel) showPair(pair *measurement.Pair, trigger measurement.Modifier) {
	points := pair.Points()
	hint := fmt.Sprintf("Not selected (%s)", clickHint(trigger))

	p.point1Label.SetText("Point 1: " + hint)
	p.point2Label.SetText("Point 2: " + hint)
	if len(points) > 0 {
		p.point1Label.SetText("Point 1: " + points[0].String())
	}
	if len(points) > 1 {
		p.point2Label.SetText("Point 2: " + points[1].String())
	}

	d, ok := pair.Distance()
	if !ok {
		p.distanceXLabel.SetText("Distance X: -")
		p.distanceYLabel.SetText("Distance Y: -")
		p.distanceZLabel.SetText("Distance Z: -")
		p.totalDistLabel.SetText("Total Distance: -")
		return
	}
	f := pair.Format()
	p.distanceXLabel.SetText("Distance X: " + measurement.FormatDistance(d.Delta.X, f.Precision, f.Unit))
	p.distanceYLabel.SetText("Distance Y: " + measurement.FormatDistance(d.Delta.Y, f.Precision, f.Unit))
	p.distanceZLabel.SetText("Distance Z: " + measurement.FormatDistance(d.Delta.Z, f.Precision, f.Unit))
	p.totalDistLabel.SetText("Total Distance: " + d.Text(f))
}

// setStatus shows a reload or error message
func (p *infoPanel) setStatus(msg string) {
	p.statusLabel.SetText(msg)
}

func (p *infoPanel) content() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabelWithStyle("Measurement", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.point1Label,
		p.point2Label,
		widget.NewSeparator(),
		p.distanceXLabel,
		p.distanceYLabel,
		p.distanceZLabel,
		p.totalDistLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Model Info", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.modelInfoLabel,
		p.statusLabel,
	)
}
