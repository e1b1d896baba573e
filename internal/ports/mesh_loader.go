package ports

import (
	"context"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// MeshLoader extracts a link's collision geometry as a triangle mesh in the link frame.
type MeshLoader interface {
	CollisionMesh(ctx context.Context, model domain.RobotModel, link string) (domain.Mesh, error)
}

// MeshDecoder reads a mesh file from a local path.
type MeshDecoder interface {
	Decode(path string) (domain.Mesh, error)
}

// ResourceResolver maps a description URI (package://, file://, plain path) to a local path.
type ResourceResolver interface {
	Resolve(uri string) (string, error)
}
