package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// LinkMesh is the result of resolving a link's collision mesh.
type LinkMesh struct {
	Robot      string
	Root       string
	Link       string
	Mesh       domain.Mesh
	Original   int // triangle count before simplification
	Simplified bool
}

type LoadLinkMesh struct {
	source   ports.DescriptionSource
	parser   ports.DescriptionParser
	loader   ports.MeshLoader
	simplify func(domain.Mesh) domain.Mesh
}

type LoadOption func(*LoadLinkMesh)

// WithSimplifier post-processes the loaded mesh, e.g. to decimate it.
func WithSimplifier(fn func(domain.Mesh) domain.Mesh) LoadOption {
	return func(uc *LoadLinkMesh) { uc.simplify = fn }
}

func NewLoadLinkMesh(src ports.DescriptionSource, p ports.DescriptionParser, ml ports.MeshLoader, opts ...LoadOption) *LoadLinkMesh {
	uc := &LoadLinkMesh{
		source: src,
		parser: p,
		loader: ml,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute fetches and parses the description, then loads the collision mesh
// of link. An empty mesh is reported as not found.
func (uc *LoadLinkMesh) Execute(ctx context.Context, link string) (LinkMesh, error) {
	doc, err := uc.source.Description(ctx)
	if err != nil {
		return LinkMesh{}, err
	}

	model, err := uc.parser.Parse(doc)
	if err != nil {
		return LinkMesh{}, err
	}

	mesh, err := uc.loader.CollisionMesh(ctx, model, link)
	if err != nil {
		return LinkMesh{}, err
	}
	if mesh.TriangleCount() == 0 {
		return LinkMesh{}, &domain.OpError{
			Op:   "usecase.load_link_mesh",
			Kind: domain.KindNotFound,
			Path: mesh.Source,
			Err:  fmt.Errorf("collision mesh of link %q has no triangles", link),
		}
	}

	out := LinkMesh{
		Robot:    model.Name,
		Root:     model.Root(),
		Link:     link,
		Mesh:     mesh,
		Original: mesh.TriangleCount(),
	}
	if uc.simplify != nil {
		out.Mesh = uc.simplify(mesh)
		out.Simplified = out.Mesh.TriangleCount() != out.Original
	}
	return out, nil
}
