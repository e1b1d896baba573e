package meshfile

import (
	"github.com/golang/geo/r3"
	"github.com/hschendel/stl"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// DecodeSTL reads ASCII or binary STL. STL stores unindexed facets, so
// coincident corners are merged into shared vertices.
func DecodeSTL(path string) (domain.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.stl",
			Kind: domain.KindInvalidMesh,
			Path: path,
			Err:  err,
		}
	}

	w := newWelder(path)
	for _, t := range solid.Triangles {
		w.addFace(vec32(t.Vertices[0]), vec32(t.Vertices[1]), vec32(t.Vertices[2]))
	}
	return w.mesh(), nil
}

func vec32(v stl.Vec3) r3.Vector {
	return r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// welder builds an indexed mesh from loose triangles, reusing identical vertices.
type welder struct {
	b     *domain.MeshBuilder
	index map[r3.Vector]int
}

func newWelder(source string) *welder {
	return &welder{b: domain.NewMeshBuilder(source), index: map[r3.Vector]int{}}
}

func (w *welder) vertex(v r3.Vector) int {
	if i, ok := w.index[v]; ok {
		return i
	}
	i := w.b.AddVertex(v)
	w.index[v] = i
	return i
}

func (w *welder) addFace(v1, v2, v3 r3.Vector) {
	w.b.AddTriangle(w.vertex(v1), w.vertex(v2), w.vertex(v3))
}

func (w *welder) mesh() domain.Mesh { return w.b.Mesh() }
