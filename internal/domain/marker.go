package domain

import (
	"time"

	"github.com/golang/geo/r3"
)

// MarkerType and MarkerAction values follow the visualization marker message
// constants.
type MarkerType int32

const MarkerLineStrip MarkerType = 4

type MarkerAction int32

const MarkerAdd MarkerAction = 0

type Color struct {
	R, G, B, A float32
}

// Quaternion is stored x, y, z, w.
type Quaternion struct {
	X, Y, Z, W float64
}

// Marker is a single drawable primitive expressed in FrameID.
type Marker struct {
	FrameID     string
	Stamp       time.Time
	Namespace   string
	ID          int32
	Type        MarkerType
	Action      MarkerAction
	Position    r3.Vector
	Orientation Quaternion
	Scale       r3.Vector
	Color       Color
	Points      []r3.Vector
}

type MarkerArray struct {
	Markers []Marker
}

// PointCount sums the points of every marker.
func (a MarkerArray) PointCount() int {
	n := 0
	for _, m := range a.Markers {
		n += len(m.Points)
	}
	return n
}

// MarkerStyle is the appearance shared by every generated marker.
type MarkerStyle struct {
	LineWidth float64
	Color     Color
}

func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{
		LineWidth: 0.005,
		Color:     Color{R: 1, G: 0, B: 0, A: 1},
	}
}

// BuildLineStrips turns every triangle of mesh into its own closed line strip
// (v1, v2, v3, v1), framed and namespaced by link and numbered by triangle.
func BuildLineStrips(link string, mesh Mesh, style MarkerStyle, stamp time.Time) MarkerArray {
	w := style.LineWidth
	out := MarkerArray{Markers: make([]Marker, 0, mesh.TriangleCount())}
	for t := 0; t < mesh.TriangleCount(); t++ {
		v1, v2, v3 := mesh.Triangle(t)
		out.Markers = append(out.Markers, Marker{
			FrameID:     link,
			Stamp:       stamp,
			Namespace:   link,
			ID:          int32(t),
			Type:        MarkerLineStrip,
			Action:      MarkerAdd,
			Orientation: Quaternion{W: 1},
			Scale:       r3.Vector{X: w, Y: w, Z: w},
			Color:       style.Color,
			Points:      []r3.Vector{v1, v2, v3, v1},
		})
	}
	return out
}
