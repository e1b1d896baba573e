package ports

import (
	"context"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// MarkerPublisher broadcasts marker arrays to visualizers.
type MarkerPublisher interface {
	Publish(ctx context.Context, markers domain.MarkerArray) error
}
