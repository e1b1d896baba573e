package meshfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

const asciiSTL = `solid plate
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid plate
`

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 44, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA="}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
}`

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func binarySTL(t *testing.T, tris [][3][3]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		_ = binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		for _, v := range tri {
			_ = binary.Write(&buf, binary.LittleEndian, v)
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestDecodeASCIISTLWeldsVertices(t *testing.T) {
	path := writeFile(t, "plate.stl", []byte(asciiSTL))

	m, err := NewDecoder().Decode(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.TriangleCount())
	}
	if m.VertexCount() != 4 {
		t.Fatalf("expected 4 welded vertices, got %d", m.VertexCount())
	}
	if m.Source != path {
		t.Fatalf("expected source %s, got %s", path, m.Source)
	}
}

func TestDecodeBinarySTL(t *testing.T) {
	data := binarySTL(t, [][3][3]float32{
		{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}},
	})
	path := writeFile(t, "BASE.STL", data)

	m, err := NewDecoder().Decode(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("expected 1 triangle, got %d", m.TriangleCount())
	}
	_, v2, v3 := m.Triangle(0)
	if v2 != (r3.Vector{X: 2}) || v3 != (r3.Vector{Y: 3}) {
		t.Fatalf("unexpected corners %v %v", v2, v3)
	}
}

func TestDecodeOBJ(t *testing.T) {
	src := `# a unit quad and a triangle using negative indices
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
v 0 0 1
f -5//1 -4//1 -1//1
`
	path := writeFile(t, "quad.obj", []byte(src))

	m, err := NewDecoder().Decode(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.VertexCount() != 5 {
		t.Fatalf("expected 5 vertices, got %d", m.VertexCount())
	}
	want := []int{0, 1, 2, 0, 2, 3, 0, 1, 4}
	if len(m.Triangles) != len(want) {
		t.Fatalf("expected indices %v, got %v", want, m.Triangles)
	}
	for i := range want {
		if m.Triangles[i] != want[i] {
			t.Fatalf("expected indices %v, got %v", want, m.Triangles)
		}
	}
}

func TestDecodeOBJInvalid(t *testing.T) {
	cases := map[string]string{
		"short vertex": "v 1 2\n",
		"bad coord":    "v 1 two 3\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
	}
	for name, src := range cases {
		_, err := DecodeOBJFromReader(name, strings.NewReader(src))
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	path := writeFile(t, "bad.obj", []byte(cases["bad coord"]))
	_, err := DecodeOBJ(path)
	if !domain.IsKind(err, domain.KindInvalidMesh) {
		t.Fatalf("expected KindInvalidMesh, got %v", err)
	}
}

func TestDecodeGLTF(t *testing.T) {
	path := writeFile(t, "tri.gltf", []byte(triangleGLTF))

	m, err := NewDecoder().Decode(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("unexpected mesh: %d triangles, %d vertices", m.TriangleCount(), m.VertexCount())
	}
	if m.Vertex(1) != (r3.Vector{X: 1}) {
		t.Fatalf("unexpected vertex %v", m.Vertex(1))
	}
}

func TestDecodeGLTFMalformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"position accessor out of range", strings.Replace(triangleGLTF, `"POSITION": 0`, `"POSITION": 7`, 1)},
		{"index accessor out of range", strings.Replace(triangleGLTF, `"indices": 1`, `"indices": 9`, 1)},
		{"index beyond positions", strings.Replace(triangleGLTF,
			"AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA=",
			"AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAUAAAA=", 1)},
		{"no accessors", `{"asset": {"version": "2.0"}, "meshes": [{"primitives": [{"attributes": {"POSITION": 7}}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.doc == triangleGLTF {
				t.Fatalf("fixture was not modified")
			}
			path := writeFile(t, "bad.gltf", []byte(tc.doc))
			_, err := NewDecoder().Decode(path)
			if !domain.IsKind(err, domain.KindInvalidMesh) {
				t.Fatalf("expected KindInvalidMesh, got %v", err)
			}
		})
	}
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "base.dae", []byte("<COLLADA/>"))
	_, err := NewDecoder().Decode(path)
	if !domain.IsKind(err, domain.KindUnsupportedGeometry) {
		t.Fatalf("expected KindUnsupportedGeometry, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnsupportedGeometry) {
		t.Fatalf("expected ErrUnsupportedGeometry in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), ".stl") || !strings.Contains(err.Error(), ".glb") {
		t.Fatalf("expected supported extensions in message, got %v", err)
	}
}

func TestDecoderExtensions(t *testing.T) {
	got := NewDecoder(WithFormat(".ply", DecodeSTL)).Extensions()
	want := []string{".glb", ".gltf", ".obj", ".ply", ".stl"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDecoderWithFormat(t *testing.T) {
	called := false
	d := NewDecoder(WithFormat(".PLY", func(path string) (domain.Mesh, error) {
		called = true
		return domain.Mesh{Source: path}, nil
	}))

	if _, err := d.Decode("/tmp/scan.ply"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("custom decoder was not used")
	}
}

func TestDecodeRejectsInvalidIndices(t *testing.T) {
	d := NewDecoder(WithFormat(".bad", func(path string) (domain.Mesh, error) {
		return domain.Mesh{Source: path, Vertices: []float64{0, 0, 0}, Triangles: []int{0, 1, 2}}, nil
	}))
	_, err := d.Decode("x.bad")
	if !domain.IsKind(err, domain.KindInvalidMesh) {
		t.Fatalf("expected KindInvalidMesh, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidMesh) {
		t.Fatalf("expected ErrInvalidMesh in chain, got %v", err)
	}
}

func grid(n int) domain.Mesh {
	b := domain.NewMeshBuilder("grid")
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			b.AddVertex(r3.Vector{X: float64(x), Y: float64(y), Z: math.Sin(float64(x+y)) * 0.01})
		}
	}
	row := n + 1
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*row + x
			b.AddTriangle(i, i+1, i+row+1)
			b.AddTriangle(i, i+row+1, i+row)
		}
	}
	return b.Mesh()
}

func TestSimplify(t *testing.T) {
	m := grid(12)

	if got := Simplify(m, 1); got.TriangleCount() != m.TriangleCount() {
		t.Fatalf("factor 1 should be a no-op")
	}
	if got := Simplify(m, 0); got.TriangleCount() != m.TriangleCount() {
		t.Fatalf("factor 0 should be a no-op")
	}

	got := Simplify(m, 0.25)
	if got.TriangleCount() == 0 || got.TriangleCount() >= m.TriangleCount() {
		t.Fatalf("expected fewer triangles than %d, got %d", m.TriangleCount(), got.TriangleCount())
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("simplified mesh is invalid: %v", err)
	}
	if got.Source != "grid" {
		t.Fatalf("source lost: %q", got.Source)
	}
}
