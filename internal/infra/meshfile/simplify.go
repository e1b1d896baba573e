package meshfile

import (
	"github.com/fogleman/simplify"
	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// Simplify decimates m to roughly factor × its triangle count using quadric
// error metrics. Factors outside (0, 1) return m unchanged.
func Simplify(m domain.Mesh, factor float64) domain.Mesh {
	if factor <= 0 || factor >= 1 || m.TriangleCount() == 0 {
		return m
	}

	triangles := make([]*simplify.Triangle, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		v1, v2, v3 := m.Triangle(t)
		triangles = append(triangles, simplify.NewTriangle(toSimplify(v1), toSimplify(v2), toSimplify(v3)))
	}

	out := simplify.NewMesh(triangles).Simplify(factor)

	w := newWelder(m.Source)
	for _, t := range out.Triangles {
		w.addFace(fromSimplify(t.V1), fromSimplify(t.V2), fromSimplify(t.V3))
	}
	return w.mesh()
}

func toSimplify(v r3.Vector) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func fromSimplify(v simplify.Vector) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
