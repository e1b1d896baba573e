package domain

import (
	"math"

	"github.com/golang/geo/r3"
)

// RobotModel is the subset of a URDF robot description that meshviz needs.
type RobotModel struct {
	Name   string
	Links  []Link
	Joints []Joint
	root   string
}

type Link struct {
	Name       string
	Collisions []Collision
}

type Joint struct {
	Name   string
	Type   string
	Parent string
	Child  string
}

type Collision struct {
	Name     string
	Origin   Pose
	Geometry Geometry
}

type GeometryKind string

const (
	GeometryMesh     GeometryKind = "mesh"
	GeometryBox      GeometryKind = "box"
	GeometryCylinder GeometryKind = "cylinder"
	GeometrySphere   GeometryKind = "sphere"
)

// Geometry is a tagged union; only the fields matching Kind are meaningful.
type Geometry struct {
	Kind GeometryKind

	Filename string
	Scale    r3.Vector

	Size   r3.Vector
	Radius float64
	Length float64
}

// Pose is a URDF origin: translation plus fixed-axis roll, pitch, yaw.
type Pose struct {
	XYZ r3.Vector
	RPY r3.Vector
}

func (p Pose) IsIdentity() bool {
	return p.XYZ == (r3.Vector{}) && p.RPY == (r3.Vector{})
}

// Apply rotates v by Rz(yaw)·Ry(pitch)·Rx(roll) and then translates it.
func (p Pose) Apply(v r3.Vector) r3.Vector {
	sr, cr := math.Sincos(p.RPY.X)
	sp, cp := math.Sincos(p.RPY.Y)
	sy, cy := math.Sincos(p.RPY.Z)

	rotated := r3.Vector{
		X: cy*cp*v.X + (cy*sp*sr-sy*cr)*v.Y + (cy*sp*cr+sy*sr)*v.Z,
		Y: sy*cp*v.X + (sy*sp*sr+cy*cr)*v.Y + (sy*sp*cr-cy*sr)*v.Z,
		Z: -sp*v.X + cp*sr*v.Y + cp*cr*v.Z,
	}
	return rotated.Add(p.XYZ)
}

// NewRobotModel builds a model whose root link has already been resolved.
func NewRobotModel(name string, links []Link, joints []Joint, root string) RobotModel {
	return RobotModel{Name: name, Links: links, Joints: joints, root: root}
}

// Root returns the name of the link that is not the child of any joint.
func (m RobotModel) Root() string { return m.root }

func (m RobotModel) Link(name string) (Link, bool) {
	for _, l := range m.Links {
		if l.Name == name {
			return l, true
		}
	}
	return Link{}, false
}
