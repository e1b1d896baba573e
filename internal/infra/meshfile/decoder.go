// Package meshfile decodes collision mesh files (STL, OBJ, glTF) into
// indexed domain meshes.
package meshfile

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// DecodeFunc reads the file at path.
type DecodeFunc func(path string) (domain.Mesh, error)

// Decoder dispatches on the lower-cased file extension.
type Decoder struct {
	formats map[string]DecodeFunc
}

type Option func(*Decoder)

// WithFormat registers (or replaces) the decoder for ext, e.g. ".ply".
func WithFormat(ext string, fn DecodeFunc) Option {
	return func(d *Decoder) { d.formats[strings.ToLower(ext)] = fn }
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		formats: map[string]DecodeFunc{
			".stl":  DecodeSTL,
			".obj":  DecodeOBJ,
			".gltf": DecodeGLTF,
			".glb":  DecodeGLTF,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ ports.MeshDecoder = (*Decoder)(nil)

func (d *Decoder) Decode(path string) (domain.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := d.formats[ext]
	if !ok {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.decode",
			Kind: domain.KindUnsupportedGeometry,
			Path: path,
			Err:  fmt.Errorf("%w: no decoder for extension %q (supported: %s)", domain.ErrUnsupportedGeometry, ext, strings.Join(d.Extensions(), ", ")),
		}
	}

	m, err := fn(path)
	if err != nil {
		return domain.Mesh{}, err
	}
	if err := m.Validate(); err != nil {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshfile.decode",
			Kind: domain.KindInvalidMesh,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidMesh, err),
		}
	}
	return m, nil
}

// Extensions lists the registered extensions in sorted order.
func (d *Decoder) Extensions() []string {
	out := make([]string, 0, len(d.formats))
	for ext := range d.formats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
