package domain

import "time"

// Config represents the meshviz configuration, loaded from meshviz.yaml and
// overridden by environment and flags.
type Config struct {
	Node        NodeConfig
	Description DescriptionConfig
	Marker      MarkerStyle
	Mesh        MeshConfig
}

type NodeConfig struct {
	Name  string
	Topic string
	Rate  float64 // Hz
}

type DescriptionConfig struct {
	Param string
	File  string // When set, the description is read from disk instead of the parameter server.
}

type MeshConfig struct {
	// Simplify is the decimation target as a fraction of the original triangle
	// count. Values <= 0 or >= 1 disable simplification.
	Simplify float64
}

// DefaultConfig mirrors the calibration toolchain's mesh visualizer.
func DefaultConfig() Config {
	return Config{
		Node: NodeConfig{
			Name:  "robot_calibration_mesh_viz",
			Topic: "~data",
			Rate:  1,
		},
		Description: DescriptionConfig{
			Param: "/robot_description",
		},
		Marker: DefaultMarkerStyle(),
	}
}

// Period is the publish interval derived from Rate.
func (n NodeConfig) Period() time.Duration {
	if n.Rate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / n.Rate)
}
