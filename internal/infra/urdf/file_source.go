package urdf

import (
	"context"
	"os"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// FileSource reads the robot description from a file, for use without a
// running parameter server.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

var _ ports.DescriptionSource = (*FileSource)(nil)

func (s *FileSource) Description(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "urdf.read_file",
			Kind: domain.KindMissingParameter,
			Path: s.Path,
			Err:  err,
		}
	}
	return string(b), nil
}
