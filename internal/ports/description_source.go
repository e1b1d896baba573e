package ports

import "context"

// DescriptionSource provides the raw robot description document (URDF XML),
// e.g. from the parameter server or a file on disk.
type DescriptionSource interface {
	Description(ctx context.Context) (string, error)
}
