package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/meshviz/internal/domain"
)

func linksCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List the links of a URDF file with their collision geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			src, err := s.fileSource()
			if err != nil {
				return fatal(err)
			}
			doc, err := src.Description(cmd.Context())
			if err != nil {
				return fatal(err)
			}
			model, err := s.parser.Parse(doc)
			if err != nil {
				return fatal(err)
			}

			printLinks(cmd.OutOrStdout(), model)
			return nil
		},
	}
}

func printLinks(w io.Writer, model domain.RobotModel) {
	th := defaultTheme()

	width := 0
	for _, l := range model.Links {
		if len(l.Name) > width {
			width = len(l.Name)
		}
	}
	name := th.Title.Width(width + 2)

	fmt.Fprintf(w, "%s %s\n", th.Title.Render(model.Name), th.Subtitle.Render(fmt.Sprintf("(%d links)", len(model.Links))))
	for _, l := range model.Links {
		geometry := "none"
		if len(l.Collisions) > 0 {
			geometry = describeGeometry(l.Collisions[0].Geometry)
			if n := len(l.Collisions); n > 1 {
				geometry += th.Subtitle.Render(fmt.Sprintf(" (+%d more)", n-1))
			}
		}

		marker := ""
		if l.Name == model.Root() {
			marker = th.Subtitle.Render(" root")
		}
		fmt.Fprintf(w, "  %s%s%s\n", name.Render(l.Name), geometry, marker)
	}
}

func describeGeometry(g domain.Geometry) string {
	switch g.Kind {
	case domain.GeometryMesh:
		return fmt.Sprintf("mesh %s", g.Filename)
	case domain.GeometryBox:
		return fmt.Sprintf("box %gx%gx%g", g.Size.X, g.Size.Y, g.Size.Z)
	case domain.GeometryCylinder:
		return fmt.Sprintf("cylinder r=%g l=%g", g.Radius, g.Length)
	case domain.GeometrySphere:
		return fmt.Sprintf("sphere r=%g", g.Radius)
	default:
		return string(g.Kind)
	}
}
