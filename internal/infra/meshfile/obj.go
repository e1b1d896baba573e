package meshfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

func DecodeOBJ(path string) (domain.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.obj",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer file.Close()

	m, err := DecodeOBJFromReader(path, file)
	if err != nil {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.obj",
			Kind: domain.KindInvalidMesh,
			Path: path,
			Err:  err,
		}
	}
	return m, nil
}

// DecodeOBJFromReader keeps only geometry: positions and faces. Texture
// coordinates, normals, groups and materials are skipped. Polygons are
// fan-triangulated.
func DecodeOBJFromReader(source string, r io.Reader) (domain.Mesh, error) {
	b := domain.NewMeshBuilder(source)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return domain.Mesh{}, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return domain.Mesh{}, fmt.Errorf("line %d: invalid coordinate %q", lineNo, fields[i+1])
				}
				xyz[i] = f
			}
			b.AddVertex(r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "f":
			args := fields[1:]
			if len(args) < 3 {
				return domain.Mesh{}, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			count := b.Mesh().VertexCount()
			idx := make([]int, len(args))
			for i, arg := range args {
				v, err := faceIndex(arg, count)
				if err != nil {
					return domain.Mesh{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx[i] = v
			}
			for i := 1; i < len(idx)-1; i++ {
				b.AddTriangle(idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Mesh{}, err
	}
	return b.Mesh(), nil
}

// faceIndex converts the position part of "v", "v/vt", "v//vn" or "v/vt/vn"
// to a zero-based index. Negative values count back from the last vertex.
func faceIndex(arg string, count int) (int, error) {
	pos, _, _ := strings.Cut(arg, "/")
	parsed, err := strconv.Atoi(pos)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid face index %q", arg)
	}

	idx := parsed - 1
	if parsed < 0 {
		idx = count + parsed
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("face index %d out of range (%d vertices)", parsed, count)
	}
	return idx, nil
}
