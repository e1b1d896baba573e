package rosbridge

import (
	"context"
	"fmt"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// paramGetter is the slice of *goroslib.Node the parameter source needs.
type paramGetter interface {
	ParamGetString(key string) (string, error)
}

// ParamSource reads the robot description from the parameter server.
type ParamSource struct {
	params paramGetter
	param  string
}

func NewParamSource(node *Node, param string) *ParamSource {
	return &ParamSource{params: node.n, param: param}
}

var _ ports.DescriptionSource = (*ParamSource)(nil)

// Description returns the parameter verbatim. An empty value is left for the
// parser to reject.
func (s *ParamSource) Description(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v, err := s.params.ParamGetString(s.param)
	if err != nil {
		return "", &domain.OpError{
			Op:   "rosbridge.param",
			Kind: domain.KindMissingParameter,
			Path: s.param,
			Err:  fmt.Errorf("%w: %w", domain.ErrMissingParameter, err),
		}
	}
	return v, nil
}
