// Package meshloader extracts a link's collision geometry from a robot model
// as a triangle mesh expressed in the link frame.
package meshloader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// Loader resolves mesh URIs, decodes mesh files, tessellates primitives and
// caches the result per robot and link.
type Loader struct {
	resolver ports.ResourceResolver
	decoder  ports.MeshDecoder
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[cacheKey]domain.Mesh
}

type cacheKey struct {
	robot string
	link  string
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

func New(resolver ports.ResourceResolver, decoder ports.MeshDecoder, opts ...Option) *Loader {
	l := &Loader{
		resolver: resolver,
		decoder:  decoder,
		logger:   slog.Default(),
		cache:    map[cacheKey]domain.Mesh{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.MeshLoader = (*Loader)(nil)

// CollisionMesh uses the link's first collision element.
func (l *Loader) CollisionMesh(ctx context.Context, model domain.RobotModel, link string) (domain.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return domain.Mesh{}, err
	}

	key := cacheKey{robot: model.Name, link: link}
	l.mu.Lock()
	if m, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return m, nil
	}
	l.mu.Unlock()

	lk, ok := model.Link(link)
	if !ok {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshloader.collision_mesh",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("link %q is not part of robot %q", link, model.Name),
		}
	}
	if len(lk.Collisions) == 0 {
		return domain.Mesh{}, &domain.OpError{
			Op:   "meshloader.collision_mesh",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("link %q has no collision geometry", link),
		}
	}
	if len(lk.Collisions) > 1 {
		l.logger.Warn("meshloader.extra_collisions_ignored", "link", link, "count", len(lk.Collisions))
	}

	col := lk.Collisions[0]
	m, err := l.geometryMesh(col.Geometry)
	if err != nil {
		return domain.Mesh{}, err
	}
	m = m.Transformed(col.Origin)

	l.logger.Debug("meshloader.loaded",
		"link", link,
		"kind", string(col.Geometry.Kind),
		"source", m.Source,
		"triangles", m.TriangleCount(),
	)

	l.mu.Lock()
	l.cache[key] = m
	l.mu.Unlock()
	return m, nil
}

func (l *Loader) geometryMesh(g domain.Geometry) (domain.Mesh, error) {
	switch g.Kind {
	case domain.GeometryMesh:
		path, err := l.resolver.Resolve(g.Filename)
		if err != nil {
			return domain.Mesh{}, err
		}
		m, err := l.decoder.Decode(path)
		if err != nil {
			return domain.Mesh{}, err
		}
		return m.Scaled(g.Scale), nil

	case domain.GeometryBox:
		return Box(g.Size), nil
	case domain.GeometryCylinder:
		return Cylinder(g.Radius, g.Length), nil
	case domain.GeometrySphere:
		return Sphere(g.Radius), nil
	}

	return domain.Mesh{}, &domain.OpError{
		Op:   "meshloader.geometry",
		Kind: domain.KindUnsupportedGeometry,
		Err:  fmt.Errorf("%w: unknown geometry kind %q", domain.ErrUnsupportedGeometry, g.Kind),
	}
}
