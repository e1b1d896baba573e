package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

// Report summarizes a visualization run.
type Report struct {
	LinkMesh
	Markers   int
	Publishes int
	Failures  int
}

type Visualize struct {
	load      *LoadLinkMesh
	publisher ports.MarkerPublisher
	style     domain.MarkerStyle
	period    time.Duration
	once      bool
	now       func() time.Time
	ticker    func(time.Duration) (<-chan time.Time, func())
	logger    *slog.Logger
}

type VisualizeOption func(*Visualize)

func WithStyle(s domain.MarkerStyle) VisualizeOption {
	return func(uc *Visualize) { uc.style = s }
}

// WithPeriod sets the interval between publishes.
func WithPeriod(d time.Duration) VisualizeOption {
	return func(uc *Visualize) {
		if d > 0 {
			uc.period = d
		}
	}
}

// WithOnce publishes a single time and returns.
func WithOnce(once bool) VisualizeOption {
	return func(uc *Visualize) { uc.once = once }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) VisualizeOption {
	return func(uc *Visualize) { uc.now = now }
}

// WithTicker replaces time.NewTicker; useful for tests.
func WithTicker(fn func(time.Duration) (<-chan time.Time, func())) VisualizeOption {
	return func(uc *Visualize) { uc.ticker = fn }
}

func WithLogger(l *slog.Logger) VisualizeOption {
	return func(uc *Visualize) {
		if l != nil {
			uc.logger = l
		}
	}
}

func NewVisualize(load *LoadLinkMesh, pub ports.MarkerPublisher, opts ...VisualizeOption) *Visualize {
	uc := &Visualize{
		load:      load,
		publisher: pub,
		style:     domain.DefaultMarkerStyle(),
		period:    time.Second,
		now:       time.Now,
		ticker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads the link mesh, converts it to line strips once and publishes
// the same array immediately and then every period until ctx is done.
// Cancellation after the first publish is a clean shutdown, not an error.
// Publish failures are logged and counted; they never stop the loop.
func (uc *Visualize) Execute(ctx context.Context, link string) (Report, error) {
	lm, err := uc.load.Execute(ctx, link)
	if err != nil {
		return Report{}, err
	}

	markers := domain.BuildLineStrips(link, lm.Mesh, uc.style, uc.now())
	rep := Report{LinkMesh: lm, Markers: len(markers.Markers)}

	uc.logger.Info("mesh.loaded",
		"robot", lm.Robot,
		"root", lm.Root,
		"link", link,
		"source", lm.Mesh.Source,
		"triangles", lm.Mesh.TriangleCount(),
		"original_triangles", lm.Original,
	)

	uc.publish(ctx, markers, &rep)
	if uc.once {
		return rep, nil
	}

	ticks, stop := uc.ticker(uc.period)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("visualize.stopped", "link", link, "publishes", rep.Publishes, "failures", rep.Failures)
			return rep, nil
		case <-ticks:
			uc.publish(ctx, markers, &rep)
		}
	}
}

func (uc *Visualize) publish(ctx context.Context, markers domain.MarkerArray, rep *Report) {
	err := uc.publisher.Publish(ctx, markers)
	switch {
	case err == nil:
		rep.Publishes++
		uc.logger.Debug("markers.published", "count", len(markers.Markers), "points", markers.PointCount())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	default:
		rep.Failures++
		uc.logger.Warn("markers.publish_failed", "err", err)
	}
}
