package usecase

import (
	"context"
	"sync"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

type fakeSource struct {
	doc string
	err error
}

func (f fakeSource) Description(_ context.Context) (string, error) {
	return f.doc, f.err
}

type fakeParser struct {
	model domain.RobotModel
	err   error
	got   *string
}

func (f fakeParser) Parse(doc string) (domain.RobotModel, error) {
	if f.got != nil {
		*f.got = doc
	}
	return f.model, f.err
}

type fakeLoader struct {
	mesh domain.Mesh
	err  error
}

func (f fakeLoader) CollisionMesh(ctx context.Context, _ domain.RobotModel, _ string) (domain.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return domain.Mesh{}, err
	}
	return f.mesh, f.err
}

type recordingPublisher struct {
	mu    sync.Mutex
	sent  []domain.MarkerArray
	errAt map[int]error
	calls int
}

func (p *recordingPublisher) Publish(_ context.Context, markers domain.MarkerArray) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if err, ok := p.errAt[p.calls]; ok {
		return err
	}
	p.sent = append(p.sent, markers)
	return nil
}

var (
	_ ports.DescriptionSource = fakeSource{}
	_ ports.DescriptionParser = fakeParser{}
	_ ports.MeshLoader        = fakeLoader{}
	_ ports.MarkerPublisher   = (*recordingPublisher)(nil)
)

func cube() domain.Mesh {
	b := domain.NewMeshBuilder("package://arm/meshes/cube.stl")
	for _, v := range [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	} {
		b.AddVertex(vec(v))
	}
	for _, q := range [6][4]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 4, 7, 3},
	} {
		b.AddTriangle(q[0], q[1], q[2])
		b.AddTriangle(q[0], q[2], q[3])
	}
	return b.Mesh()
}

func armModel() domain.RobotModel {
	return domain.NewRobotModel("arm", []domain.Link{{Name: "base_link"}, {Name: "gripper_link"}}, nil, "base_link")
}
