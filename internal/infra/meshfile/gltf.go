package meshfile

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// DecodeGLTF loads .gltf or .glb. Every triangle primitive of every mesh is
// merged into one mesh; node transforms are not applied.
func DecodeGLTF(path string) (domain.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.gltf",
			Kind: domain.KindInvalidMesh,
			Path: path,
			Err:  err,
		}
	}

	b := domain.NewMeshBuilder(path)
	for _, mesh := range doc.Meshes {
		for pi, primitive := range mesh.Primitives {
			// Only triangle lists carry a surface.
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			if int(posIdx) >= len(doc.Accessors) {
				return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d: position accessor %d of %d", mesh.Name, pi, posIdx, len(doc.Accessors)))
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d positions: %w", mesh.Name, pi, err))
			}

			var indices []uint32
			if primitive.Indices != nil {
				if int(*primitive.Indices) >= len(doc.Accessors) {
					return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d: index accessor %d of %d", mesh.Name, pi, *primitive.Indices, len(doc.Accessors)))
				}
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d indices: %w", mesh.Name, pi, err))
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}
			if len(indices)%3 != 0 {
				return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d: %d indices is not a triangle list", mesh.Name, pi, len(indices)))
			}
			for _, idx := range indices {
				if int(idx) >= len(positions) {
					return domain.Mesh{}, gltfError(path, fmt.Errorf("mesh %q primitive %d: index %d out of %d positions", mesh.Name, pi, idx, len(positions)))
				}
			}

			base := b.Mesh().VertexCount()
			for _, p := range positions {
				b.AddVertex(r3.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
			}
			for i := 0; i < len(indices); i += 3 {
				b.AddTriangle(base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
			}
		}
	}
	return b.Mesh(), nil
}

func gltfError(path string, err error) error {
	return &domain.OpError{
		Op:   "meshfile.gltf",
		Kind: domain.KindInvalidMesh,
		Path: path,
		Err:  err,
	}
}
