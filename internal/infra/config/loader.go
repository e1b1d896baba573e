// Package config loads meshviz settings from meshviz.yaml and the ROS
// environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// LoadFile loads path and applies it on top of domain.DefaultConfig.
func LoadFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.loadfile",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.loadfile",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.loadfile",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// Validate rejects values that cannot drive a publisher.
func Validate(cfg domain.Config) error {
	var err error
	switch {
	case cfg.Node.Name == "":
		err = fmt.Errorf("node.name is required")
	case cfg.Node.Topic == "":
		err = fmt.Errorf("node.topic is required")
	case cfg.Node.Rate <= 0:
		err = fmt.Errorf("node.rate must be positive, got %v", cfg.Node.Rate)
	case cfg.Marker.LineWidth <= 0:
		err = fmt.Errorf("marker.line_width must be positive, got %v", cfg.Marker.LineWidth)
	case cfg.Mesh.Simplify < 0 || cfg.Mesh.Simplify > 1:
		err = fmt.Errorf("mesh.simplify must be within [0, 1], got %v", cfg.Mesh.Simplify)
	}
	if err != nil {
		return &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
		}
	}
	return nil
}

func apply(cfg *domain.Config, y yamlConfig) error {
	n := y.Meshviz.Node
	if n.Name != "" {
		cfg.Node.Name = n.Name
	}
	if n.Topic != "" {
		cfg.Node.Topic = n.Topic
	}
	if n.Rate != nil {
		cfg.Node.Rate = *n.Rate
	}

	d := y.Meshviz.Description
	if d.Param != "" {
		cfg.Description.Param = d.Param
	}
	if d.File != "" {
		cfg.Description.File = d.File
	}

	m := y.Meshviz.Marker
	if m.LineWidth != nil {
		cfg.Marker.LineWidth = *m.LineWidth
	}
	if len(m.Color) > 0 {
		c, err := parseColor(m.Color)
		if err != nil {
			return err
		}
		cfg.Marker.Color = c
	}

	if y.Meshviz.Mesh.Simplify != nil {
		cfg.Mesh.Simplify = *y.Meshviz.Mesh.Simplify
	}
	return nil
}

// parseColor accepts [r, g, b] or [r, g, b, a] with components in [0, 1].
func parseColor(in []float32) (domain.Color, error) {
	if len(in) != 3 && len(in) != 4 {
		return domain.Color{}, fmt.Errorf("marker.color needs 3 or 4 components, got %d", len(in))
	}
	for i, v := range in {
		if v < 0 || v > 1 {
			return domain.Color{}, fmt.Errorf("marker.color[%d] = %v is outside [0, 1]", i, v)
		}
	}
	c := domain.Color{R: in[0], G: in[1], B: in[2], A: 1}
	if len(in) == 4 {
		c.A = in[3]
	}
	return c, nil
}

type yamlConfig struct {
	Meshviz struct {
		Node struct {
			Name  string   `yaml:"name"`
			Topic string   `yaml:"topic"`
			Rate  *float64 `yaml:"rate"`
		} `yaml:"node"`

		Description struct {
			Param string `yaml:"param"`
			File  string `yaml:"file"`
		} `yaml:"description"`

		Marker struct {
			LineWidth *float64  `yaml:"line_width"`
			Color     []float32 `yaml:"color"`
		} `yaml:"marker"`

		Mesh struct {
			Simplify *float64 `yaml:"simplify"`
		} `yaml:"mesh"`
	} `yaml:"meshviz"`
}
