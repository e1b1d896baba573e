package urdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

func mapRobot(dto xmlRobot) (domain.RobotModel, error) {
	if len(dto.Links) == 0 {
		return domain.RobotModel{}, fmt.Errorf("robot %q has no links", dto.Name)
	}

	links := make([]domain.Link, 0, len(dto.Links))
	seen := make(map[string]bool, len(dto.Links))
	for i, l := range dto.Links {
		if strings.TrimSpace(l.Name) == "" {
			return domain.RobotModel{}, fmt.Errorf("links[%d]: name is required", i)
		}
		if seen[l.Name] {
			return domain.RobotModel{}, fmt.Errorf("links[%d]: duplicate link %q", i, l.Name)
		}
		seen[l.Name] = true

		link, err := mapLink(l)
		if err != nil {
			return domain.RobotModel{}, fmt.Errorf("link %q: %w", l.Name, err)
		}
		links = append(links, link)
	}

	joints := make([]domain.Joint, 0, len(dto.Joints))
	children := make(map[string]string, len(dto.Joints))
	for i, j := range dto.Joints {
		if !seen[j.Parent.Link] {
			return domain.RobotModel{}, fmt.Errorf("joints[%d] %q: unknown parent link %q", i, j.Name, j.Parent.Link)
		}
		if !seen[j.Child.Link] {
			return domain.RobotModel{}, fmt.Errorf("joints[%d] %q: unknown child link %q", i, j.Name, j.Child.Link)
		}
		if prev, ok := children[j.Child.Link]; ok {
			return domain.RobotModel{}, fmt.Errorf("joints[%d] %q: link %q already has parent joint %q", i, j.Name, j.Child.Link, prev)
		}
		children[j.Child.Link] = j.Name
		joints = append(joints, domain.Joint{
			Name:   j.Name,
			Type:   j.Type,
			Parent: j.Parent.Link,
			Child:  j.Child.Link,
		})
	}

	var roots []string
	for _, l := range links {
		if _, ok := children[l.Name]; !ok {
			roots = append(roots, l.Name)
		}
	}
	if len(roots) != 1 {
		return domain.RobotModel{}, fmt.Errorf("expected exactly one root link, found %d %v", len(roots), roots)
	}

	return domain.NewRobotModel(dto.Name, links, joints, roots[0]), nil
}

func mapLink(dto xmlLink) (domain.Link, error) {
	link := domain.Link{Name: dto.Name}
	for i, c := range dto.Collisions {
		col, err := mapCollision(c)
		if err != nil {
			return domain.Link{}, fmt.Errorf("collision[%d]: %w", i, err)
		}
		link.Collisions = append(link.Collisions, col)
	}
	return link, nil
}

func mapCollision(dto xmlCollision) (domain.Collision, error) {
	col := domain.Collision{Name: dto.Name}

	if dto.Origin != nil {
		xyz, err := parseVector(dto.Origin.XYZ, r3.Vector{})
		if err != nil {
			return col, fmt.Errorf("origin.xyz: %w", err)
		}
		rpy, err := parseVector(dto.Origin.RPY, r3.Vector{})
		if err != nil {
			return col, fmt.Errorf("origin.rpy: %w", err)
		}
		col.Origin = domain.Pose{XYZ: xyz, RPY: rpy}
	}

	if dto.Geometry == nil {
		return col, fmt.Errorf("geometry is required")
	}
	g, err := mapGeometry(*dto.Geometry)
	if err != nil {
		return col, err
	}
	col.Geometry = g
	return col, nil
}

func mapGeometry(dto xmlGeometry) (domain.Geometry, error) {
	switch {
	case dto.Mesh != nil:
		if strings.TrimSpace(dto.Mesh.Filename) == "" {
			return domain.Geometry{}, fmt.Errorf("mesh.filename is required")
		}
		scale, err := parseVector(dto.Mesh.Scale, r3.Vector{X: 1, Y: 1, Z: 1})
		if err != nil {
			return domain.Geometry{}, fmt.Errorf("mesh.scale: %w", err)
		}
		return domain.Geometry{Kind: domain.GeometryMesh, Filename: strings.TrimSpace(dto.Mesh.Filename), Scale: scale}, nil

	case dto.Box != nil:
		size, err := parseVector(dto.Box.Size, r3.Vector{})
		if err != nil {
			return domain.Geometry{}, fmt.Errorf("box.size: %w", err)
		}
		return domain.Geometry{Kind: domain.GeometryBox, Size: size}, nil

	case dto.Cylinder != nil:
		r, err := parseFloat(dto.Cylinder.Radius)
		if err != nil {
			return domain.Geometry{}, fmt.Errorf("cylinder.radius: %w", err)
		}
		l, err := parseFloat(dto.Cylinder.Length)
		if err != nil {
			return domain.Geometry{}, fmt.Errorf("cylinder.length: %w", err)
		}
		return domain.Geometry{Kind: domain.GeometryCylinder, Radius: r, Length: l}, nil

	case dto.Sphere != nil:
		r, err := parseFloat(dto.Sphere.Radius)
		if err != nil {
			return domain.Geometry{}, fmt.Errorf("sphere.radius: %w", err)
		}
		return domain.Geometry{Kind: domain.GeometrySphere, Radius: r}, nil
	}
	return domain.Geometry{}, fmt.Errorf("geometry has no mesh, box, cylinder or sphere")
}

// parseVector reads "x y z"; an empty attribute yields def.
func parseVector(s string, def r3.Vector) (r3.Vector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return def, nil
	}
	if len(fields) != 3 {
		return r3.Vector{}, fmt.Errorf("expected 3 values, got %d in %q", len(fields), s)
	}
	var out [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
