package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

func vec(v [3]float64) r3.Vector { return r3.Vector{X: v[0], Y: v[1], Z: v[2]} }

func TestLoadLinkMesh_Success(t *testing.T) {
	var parsed string
	uc := NewLoadLinkMesh(
		fakeSource{doc: "<robot/>"},
		fakeParser{model: armModel(), got: &parsed},
		fakeLoader{mesh: cube()},
	)

	lm, err := uc.Execute(context.Background(), "gripper_link")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != "<robot/>" {
		t.Fatalf("parser did not receive the description, got %q", parsed)
	}
	if lm.Robot != "arm" || lm.Root != "base_link" || lm.Link != "gripper_link" {
		t.Fatalf("unexpected result %+v", lm)
	}
	if lm.Mesh.TriangleCount() != 12 || lm.Original != 12 || lm.Simplified {
		t.Fatalf("unexpected mesh stats: %d/%d simplified=%v", lm.Mesh.TriangleCount(), lm.Original, lm.Simplified)
	}
}

func TestLoadLinkMesh_WithSimplifier(t *testing.T) {
	half := func(m domain.Mesh) domain.Mesh {
		m.Triangles = m.Triangles[:len(m.Triangles)/2]
		return m
	}
	uc := NewLoadLinkMesh(fakeSource{doc: "x"}, fakeParser{model: armModel()}, fakeLoader{mesh: cube()}, WithSimplifier(half))

	lm, err := uc.Execute(context.Background(), "base_link")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lm.Mesh.TriangleCount() != 6 || lm.Original != 12 || !lm.Simplified {
		t.Fatalf("unexpected mesh stats: %d/%d simplified=%v", lm.Mesh.TriangleCount(), lm.Original, lm.Simplified)
	}
}

func TestLoadLinkMesh_Failures(t *testing.T) {
	missing := &domain.OpError{Op: "rosbridge.param", Kind: domain.KindMissingParameter}
	invalid := &domain.OpError{Op: "urdf.parse", Kind: domain.KindInvalidDescription}
	noMesh := &domain.OpError{Op: "meshloader.collision_mesh", Kind: domain.KindNotFound}

	cases := []struct {
		name string
		uc   *LoadLinkMesh
		kind domain.ErrorKind
	}{
		{"missing description", NewLoadLinkMesh(fakeSource{err: missing}, fakeParser{}, fakeLoader{}), domain.KindMissingParameter},
		{"invalid description", NewLoadLinkMesh(fakeSource{doc: "x"}, fakeParser{err: invalid}, fakeLoader{}), domain.KindInvalidDescription},
		{"mesh unavailable", NewLoadLinkMesh(fakeSource{doc: "x"}, fakeParser{model: armModel()}, fakeLoader{err: noMesh}), domain.KindNotFound},
		{"empty mesh", NewLoadLinkMesh(fakeSource{doc: "x"}, fakeParser{model: armModel()}, fakeLoader{mesh: domain.Mesh{}}), domain.KindNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.uc.Execute(context.Background(), "base_link")
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}

func TestLoadLinkMesh_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewLoadLinkMesh(fakeSource{doc: "x"}, fakeParser{model: armModel()}, fakeLoader{mesh: cube()})
	_, err := uc.Execute(ctx, "base_link")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
