package measurement

import (
	"strconv"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

// DefaultPrecision is the number of decimals shown in distance labels
const DefaultPrecision = 4

// Distance is a completed two-point measurement. Value keeps full precision;
// rounding happens only in Text.
type Distance struct {
	Start    geometry.Vector3
	End      geometry.Vector3
	Value    float64
	Delta    geometry.Vector3 // Absolute per-axis differences
	Midpoint geometry.Vector3
}

// NewDistance measures from start to end
func NewDistance(start, end geometry.Vector3) Distance {
	return Distance{
		Start:    start,
		End:      end,
		Value:    start.Distance(end),
		Delta:    end.Sub(start).Abs(),
		Midpoint: start.Midpoint(end),
	}
}

// Format controls how distances are displayed
type Format struct {
	Precision int
	Unit      string
}

// DefaultFormat shows four decimals without a unit
func DefaultFormat() Format {
	return Format{Precision: DefaultPrecision}
}

// Text renders the distance for display
func (d Distance) Text(f Format) string {
	return FormatDistance(d.Value, f.Precision, f.Unit)
}

// FormatDistance formats value with a fixed number of decimals and an
// optional unit suffix
func FormatDistance(value float64, precision int, unit string) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}
