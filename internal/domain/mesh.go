package domain

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Mesh is an indexed triangle mesh. Vertices holds x,y,z triples and
// Triangles holds vertex index triples.
type Mesh struct {
	Source    string
	Vertices  []float64
	Triangles []int
}

func (m Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

func (m Mesh) Vertex(i int) r3.Vector {
	return r3.Vector{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
}

// Triangle returns the corners of triangle t in winding order.
func (m Mesh) Triangle(t int) (r3.Vector, r3.Vector, r3.Vector) {
	return m.Vertex(m.Triangles[3*t]), m.Vertex(m.Triangles[3*t+1]), m.Vertex(m.Triangles[3*t+2])
}

// Validate checks that the buffers are well formed and every index is in range.
func (m Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("vertex buffer length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("index buffer length %d is not a multiple of 3", len(m.Triangles))
	}
	n := m.VertexCount()
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= n {
			return fmt.Errorf("triangle %d references vertex %d of %d", i/3, idx, n)
		}
	}
	return nil
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min r3.Vector
	Max r3.Vector
}

func (b Box) Center() r3.Vector { return b.Min.Add(b.Max).Mul(0.5) }
func (b Box) Size() r3.Vector   { return b.Max.Sub(b.Min) }

// BoundingBox returns the zero Box for an empty mesh.
func (m Mesh) BoundingBox() Box {
	if m.VertexCount() == 0 {
		return Box{}
	}
	inf := math.Inf(1)
	box := Box{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		box.Min = r3.Vector{X: math.Min(box.Min.X, v.X), Y: math.Min(box.Min.Y, v.Y), Z: math.Min(box.Min.Z, v.Z)}
		box.Max = r3.Vector{X: math.Max(box.Max.X, v.X), Y: math.Max(box.Max.Y, v.Y), Z: math.Max(box.Max.Z, v.Z)}
	}
	return box
}

// Scaled returns a copy of m with each axis multiplied by s.
func (m Mesh) Scaled(s r3.Vector) Mesh {
	out := m.clone()
	for i := 0; i < len(out.Vertices); i += 3 {
		out.Vertices[i] *= s.X
		out.Vertices[i+1] *= s.Y
		out.Vertices[i+2] *= s.Z
	}
	return out
}

// Transformed returns a copy of m with every vertex moved by p.
func (m Mesh) Transformed(p Pose) Mesh {
	if p.IsIdentity() {
		return m.clone()
	}
	out := m.clone()
	for i := 0; i < out.VertexCount(); i++ {
		v := p.Apply(m.Vertex(i))
		out.Vertices[3*i], out.Vertices[3*i+1], out.Vertices[3*i+2] = v.X, v.Y, v.Z
	}
	return out
}

func (m Mesh) clone() Mesh {
	out := Mesh{Source: m.Source}
	out.Vertices = append([]float64(nil), m.Vertices...)
	out.Triangles = append([]int(nil), m.Triangles...)
	return out
}

// MeshBuilder accumulates vertices and triangles.
type MeshBuilder struct {
	mesh Mesh
}

func NewMeshBuilder(source string) *MeshBuilder {
	return &MeshBuilder{mesh: Mesh{Source: source}}
}

// AddVertex appends v and returns its index.
func (b *MeshBuilder) AddVertex(v r3.Vector) int {
	b.mesh.Vertices = append(b.mesh.Vertices, v.X, v.Y, v.Z)
	return b.mesh.VertexCount() - 1
}

func (b *MeshBuilder) AddTriangle(i1, i2, i3 int) {
	b.mesh.Triangles = append(b.mesh.Triangles, i1, i2, i3)
}

// AddFace appends three fresh vertices and the triangle joining them.
func (b *MeshBuilder) AddFace(v1, v2, v3 r3.Vector) {
	i := b.AddVertex(v1)
	b.AddVertex(v2)
	b.AddVertex(v3)
	b.AddTriangle(i, i+1, i+2)
}

func (b *MeshBuilder) Mesh() Mesh { return b.mesh }
