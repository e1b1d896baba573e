// Package urdf reads URDF robot descriptions into the domain model.
package urdf

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

type Parser struct{}

func NewParser() *Parser { return &Parser{} }

var _ ports.DescriptionParser = (*Parser)(nil)

func (p *Parser) Parse(doc string) (domain.RobotModel, error) {
	if strings.TrimSpace(doc) == "" {
		return domain.RobotModel{}, &domain.OpError{
			Op:   "urdf.parse",
			Kind: domain.KindInvalidDescription,
			Err:  fmt.Errorf("%w: document is empty", domain.ErrInvalidDescription),
		}
	}

	var dto xmlRobot
	if err := xml.Unmarshal([]byte(doc), &dto); err != nil {
		return domain.RobotModel{}, &domain.OpError{
			Op:   "urdf.parse",
			Kind: domain.KindInvalidDescription,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidDescription, err),
		}
	}

	model, err := mapRobot(dto)
	if err != nil {
		return domain.RobotModel{}, &domain.OpError{
			Op:   "urdf.parse",
			Kind: domain.KindInvalidDescription,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidDescription, err),
		}
	}
	return model, nil
}
