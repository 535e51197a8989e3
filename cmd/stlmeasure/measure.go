package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/internal/measurement"
	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

func newMeasureCmd(c *cli) *cobra.Command {
	var (
		point1X, point1Y, point1Z float64
		point2X, point2Y, point2Z float64
	)

	cmd := &cobra.Command{
		Use:   "measure <file>",
		Short: "Measure distance between two points",
		Long: `Measure the straight-line distance between two 3D points.
Points off the model are related to their nearest model vertices.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, model, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			p1 := geometry.NewVector3(point1X, point1Y, point1Z)
			p2 := geometry.NewVector3(point2X, point2Y, point2Z)
			m := analysis.MeasurePoints(model, p1, p2)
			f := c.cfg.Format()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Point-to-Point Measurement")
			fmt.Fprintln(out, "==========================")

			fmt.Fprintf(out, "\nPoint 1: %s\n", p1)
			if m.SnapFrom > 0 {
				fmt.Fprintf(out, "  Nearest vertex: %s (distance: %s)\n", m.NearestFrom, measurement.FormatDistance(m.SnapFrom, f.Precision, f.Unit))
			}
			fmt.Fprintf(out, "\nPoint 2: %s\n", p2)
			if m.SnapTo > 0 {
				fmt.Fprintf(out, "  Nearest vertex: %s (distance: %s)\n", m.NearestTo, measurement.FormatDistance(m.SnapTo, f.Precision, f.Unit))
			}

			d := measurement.NewDistance(p1, p2)
			fmt.Fprintf(out, "\nDirect distance: %s\n", d.Text(f))
			fmt.Fprintf(out, "  dX: %s  dY: %s  dZ: %s\n",
				measurement.FormatDistance(d.Delta.X, f.Precision, f.Unit),
				measurement.FormatDistance(d.Delta.Y, f.Precision, f.Unit),
				measurement.FormatDistance(d.Delta.Z, f.Precision, f.Unit),
			)
			if m.Snapped() {
				fmt.Fprintf(out, "Distance between nearest vertices: %s\n", measurement.FormatDistance(m.BetweenVertices, f.Precision, f.Unit))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	cmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	cmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	cmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	cmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	cmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	cmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
	return cmd
}
