package rosbridge

import (
	"github.com/bluenviron/goroslib/v2/pkg/msgs/geometry_msgs"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/std_msgs"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/visualization_msgs"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// ToMessage maps domain markers onto the ROS message types.
func ToMessage(in domain.MarkerArray) *visualization_msgs.MarkerArray {
	out := &visualization_msgs.MarkerArray{
		Markers: make([]visualization_msgs.Marker, 0, len(in.Markers)),
	}
	for _, m := range in.Markers {
		points := make([]geometry_msgs.Point, len(m.Points))
		for i, p := range m.Points {
			points[i] = geometry_msgs.Point{X: p.X, Y: p.Y, Z: p.Z}
		}

		out.Markers = append(out.Markers, visualization_msgs.Marker{
			Header: std_msgs.Header{
				Stamp:   m.Stamp,
				FrameId: m.FrameID,
			},
			Ns:     m.Namespace,
			Id:     m.ID,
			Type:   int32(m.Type),
			Action: int32(m.Action),
			Pose: geometry_msgs.Pose{
				Position: geometry_msgs.Point{X: m.Position.X, Y: m.Position.Y, Z: m.Position.Z},
				Orientation: geometry_msgs.Quaternion{
					X: m.Orientation.X,
					Y: m.Orientation.Y,
					Z: m.Orientation.Z,
					W: m.Orientation.W,
				},
			},
			Scale: geometry_msgs.Vector3{X: m.Scale.X, Y: m.Scale.Y, Z: m.Scale.Z},
			Color: std_msgs.ColorRGBA{
				R: m.Color.R,
				G: m.Color.G,
				B: m.Color.B,
				A: m.Color.A,
			},
			Points: points,
		})
	}
	return out
}
