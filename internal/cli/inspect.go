package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/meshviz/internal/usecase"
)

func inspectCmd(g *globalFlags) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "inspect link_name",
		Short: "Load a link's collision mesh from a URDF file and print its stats (no ROS)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pretty" && format != "json" && format != "" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			s, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			load, err := s.fileLoad()
			if err != nil {
				return fatal(err)
			}
			lm, err := load.Execute(cmd.Context(), args[0])
			if err != nil {
				return fatal(err)
			}
			return printLinkMesh(cmd.OutOrStdout(), lm, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type meshStats struct {
	Robot      string     `json:"robot"`
	Root       string     `json:"root"`
	Link       string     `json:"link"`
	Source     string     `json:"source"`
	Triangles  int        `json:"triangles"`
	Vertices   int        `json:"vertices"`
	Original   int        `json:"original_triangles"`
	Simplified bool       `json:"simplified"`
	Min        [3]float64 `json:"bbox_min"`
	Max        [3]float64 `json:"bbox_max"`
	Center     [3]float64 `json:"bbox_center"`
	Points     int        `json:"marker_points"`
}

func statsOf(lm usecase.LinkMesh) meshStats {
	box := lm.Mesh.BoundingBox()
	return meshStats{
		Robot:      lm.Robot,
		Root:       lm.Root,
		Link:       lm.Link,
		Source:     lm.Mesh.Source,
		Triangles:  lm.Mesh.TriangleCount(),
		Vertices:   lm.Mesh.VertexCount(),
		Original:   lm.Original,
		Simplified: lm.Simplified,
		Min:        arr(box.Min),
		Max:        arr(box.Max),
		Center:     arr(box.Center()),
		Points:     4 * lm.Mesh.TriangleCount(),
	}
}

func arr(v r3.Vector) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func printLinkMesh(w io.Writer, lm usecase.LinkMesh, format string) error {
	st := statsOf(lm)
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	th := defaultTheme()
	row := func(label, value string) string {
		return th.Label.Render(label) + value
	}

	triangles := fmt.Sprintf("%d", st.Triangles)
	if st.Simplified {
		triangles += th.Subtitle.Render(fmt.Sprintf(" (simplified from %d)", st.Original))
	}

	lines := []string{
		th.Title.Render(st.Link),
		row("Robot", st.Robot),
		row("Root", st.Root),
		row("Source", st.Source),
		row("Triangles", triangles),
		row("Vertices", fmt.Sprintf("%d", st.Vertices)),
		row("Points", fmt.Sprintf("%d", st.Points)),
		row("BBox min", formatVec(st.Min)),
		row("BBox max", formatVec(st.Max)),
		row("Center", formatVec(st.Center)),
	}
	_, err := fmt.Fprintln(w, th.Card.Render(strings.Join(lines, "\n")))
	return err
}

func formatVec(v [3]float64) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}
