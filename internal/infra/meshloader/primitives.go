package meshloader

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// Tessellation resolution for round primitives.
const (
	cylinderSegments = 24
	sphereRings      = 12
	sphereSegments   = 24
)

// Box is centered on the origin, 12 triangles.
func Box(size r3.Vector) domain.Mesh {
	b := domain.NewMeshBuilder("box")
	h := size.Mul(0.5)
	for _, c := range [8]r3.Vector{
		{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z},
	} {
		b.AddVertex(c)
	}
	for _, q := range [6][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{2, 3, 7, 6}, // +y
		{1, 2, 6, 5}, // +x
		{0, 4, 7, 3}, // -x
	} {
		b.AddTriangle(q[0], q[1], q[2])
		b.AddTriangle(q[0], q[2], q[3])
	}
	return b.Mesh()
}

// Cylinder is centered on the origin with its axis along z.
func Cylinder(radius, length float64) domain.Mesh {
	b := domain.NewMeshBuilder("cylinder")
	hz := length / 2

	bottom := b.AddVertex(r3.Vector{Z: -hz})
	top := b.AddVertex(r3.Vector{Z: hz})
	first := b.Mesh().VertexCount()
	for i := 0; i < cylinderSegments; i++ {
		a := 2 * math.Pi * float64(i) / cylinderSegments
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		b.AddVertex(r3.Vector{X: x, Y: y, Z: -hz})
		b.AddVertex(r3.Vector{X: x, Y: y, Z: hz})
	}
	for i := 0; i < cylinderSegments; i++ {
		j := (i + 1) % cylinderSegments
		b0, t0 := first+2*i, first+2*i+1
		b1, t1 := first+2*j, first+2*j+1
		b.AddTriangle(bottom, b1, b0)
		b.AddTriangle(top, t0, t1)
		b.AddTriangle(b0, b1, t1)
		b.AddTriangle(b0, t1, t0)
	}
	return b.Mesh()
}

// Sphere is a UV sphere centered on the origin.
func Sphere(radius float64) domain.Mesh {
	b := domain.NewMeshBuilder("sphere")
	south := b.AddVertex(r3.Vector{Z: -radius})
	north := b.AddVertex(r3.Vector{Z: radius})

	// Interior rings only; the poles are shared apexes.
	ring := func(r, s int) int { return 2 + (r-1)*sphereSegments + s%sphereSegments }
	for r := 1; r < sphereRings; r++ {
		phi := math.Pi * float64(r) / sphereRings
		z := -radius * math.Cos(phi)
		rr := radius * math.Sin(phi)
		for s := 0; s < sphereSegments; s++ {
			theta := 2 * math.Pi * float64(s) / sphereSegments
			b.AddVertex(r3.Vector{X: rr * math.Cos(theta), Y: rr * math.Sin(theta), Z: z})
		}
	}

	for s := 0; s < sphereSegments; s++ {
		b.AddTriangle(south, ring(1, s+1), ring(1, s))
		b.AddTriangle(north, ring(sphereRings-1, s), ring(sphereRings-1, s+1))
	}
	for r := 1; r < sphereRings-1; r++ {
		for s := 0; s < sphereSegments; s++ {
			b.AddTriangle(ring(r, s), ring(r, s+1), ring(r+1, s+1))
			b.AddTriangle(ring(r, s), ring(r+1, s+1), ring(r+1, s))
		}
	}
	return b.Mesh()
}
