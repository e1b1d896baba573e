// Package rosbridge connects meshviz to a ROS 1 master: it reads the robot
// description parameter and publishes visualization marker arrays.
package rosbridge

import (
	"fmt"
	"strings"

	"github.com/bluenviron/goroslib/v2"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// NodeConfig describes how to join the ROS graph.
type NodeConfig struct {
	Name          string
	MasterAddress string // host:port
	Host          string // advertised host; empty autodetects
}

// Node is a registered ROS node.
type Node struct {
	name string
	n    *goroslib.Node
}

func Connect(cfg NodeConfig) (*Node, error) {
	n, err := goroslib.NewNode(goroslib.NodeConf{
		Name:          cfg.Name,
		MasterAddress: cfg.MasterAddress,
		Host:          cfg.Host,
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "rosbridge.connect",
			Kind: domain.KindExecution,
			Path: cfg.MasterAddress,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	return &Node{name: cfg.Name, n: n}, nil
}

func (n *Node) Close() {
	n.n.Close()
}

// ResolveTopic expands private (~name) and relative topic names the way the
// ROS client libraries do for a node in the root namespace.
func ResolveTopic(node, topic string) string {
	switch {
	case strings.HasPrefix(topic, "/"):
		return topic
	case strings.HasPrefix(topic, "~"):
		return "/" + strings.Trim(node, "/") + "/" + strings.TrimLeft(topic[1:], "/")
	default:
		return "/" + topic
	}
}
