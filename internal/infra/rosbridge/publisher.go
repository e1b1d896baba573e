package rosbridge

import (
	"context"
	"fmt"

	"github.com/bluenviron/goroslib/v2"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/visualization_msgs"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// Publisher advertises a visualization_msgs/MarkerArray topic.
type Publisher struct {
	topic string
	pub   *goroslib.Publisher
}

func NewPublisher(node *Node, topic string) (*Publisher, error) {
	resolved := ResolveTopic(node.name, topic)
	pub, err := goroslib.NewPublisher(goroslib.PublisherConf{
		Node:  node.n,
		Topic: resolved,
		Msg:   &visualization_msgs.MarkerArray{},
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "rosbridge.advertise",
			Kind: domain.KindExecution,
			Path: resolved,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	return &Publisher{topic: resolved, pub: pub}, nil
}

var _ ports.MarkerPublisher = (*Publisher)(nil)

func (p *Publisher) Topic() string { return p.topic }

func (p *Publisher) Publish(ctx context.Context, markers domain.MarkerArray) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.pub.Write(ToMessage(markers))
	return nil
}

func (p *Publisher) Close() {
	p.pub.Close()
}
