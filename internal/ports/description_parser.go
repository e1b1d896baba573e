package ports

import "github.com/aalvaropc/meshviz/internal/domain"

// DescriptionParser turns a robot description document into a model.
type DescriptionParser interface {
	Parse(doc string) (domain.RobotModel, error)
}
