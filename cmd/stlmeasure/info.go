package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/pkg/analysis"
)

func newInfoCmd(c *cli) *cobra.Command {
	var (
		longest  int
		shortest int
	)

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Display general information about a model",
		Long:  "Show dimensions, triangle count, surface area and edge statistics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, model, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			result := analysis.AnalyzeModel(model)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Model Information")
			fmt.Fprintln(out, "=================")
			if model.Name != "" {
				fmt.Fprintf(out, "Name: %s\n", model.Name)
			}
			fmt.Fprintf(out, "File: %s\n\n", sess.Path())

			fmt.Fprintln(out, "Model Statistics:")
			fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
			fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
			fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

			fmt.Fprintln(out, "Bounding Box:")
			fmt.Fprintf(out, "  Min: %s\n", result.BoundingBox.Min)
			fmt.Fprintf(out, "  Max: %s\n", result.BoundingBox.Max)
			fmt.Fprintf(out, "  Center: %s\n\n", result.BoundingBox.Center())

			fmt.Fprintln(out, "Dimensions:")
			fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
			fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
			fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
			fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
			fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

			fmt.Fprintln(out, "Edge Lengths:")
			fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
			fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
			fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)

			if longest > 0 {
				printEdges(out, fmt.Sprintf("Top %d Longest Edges", longest), result.LongestEdges(longest))
			}
			if shortest > 0 {
				printEdges(out, fmt.Sprintf("Top %d Shortest Edges", shortest), result.ShortestEdges(shortest))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&longest, "longest", "l", 0, "List the N longest edges")
	cmd.Flags().IntVarP(&shortest, "shortest", "s", 0, "List the N shortest edges")
	return cmd
}

func printEdges(out io.Writer, title string, edges []analysis.EdgeInfo) {
	fmt.Fprintf(out, "\n%s\n", title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
	for i, edge := range edges {
		fmt.Fprintf(out, "%-6d %-35s %-35s %-15.6f\n", i+1, edge.Start, edge.End, edge.Length)
	}
}
