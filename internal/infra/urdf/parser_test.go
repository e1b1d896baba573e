package urdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/aalvaropc/meshviz/internal/domain"
)

const armURDF = `<?xml version="1.0"?>
<robot name="arm">
  <link name="base_link">
    <visual>
      <geometry><mesh filename="package://arm_description/meshes/base_visual.dae"/></geometry>
    </visual>
    <collision name="base_collision">
      <origin xyz="0 0 0.1" rpy="0 0 1.5707963"/>
      <geometry>
        <mesh filename="package://arm_description/meshes/base.stl" scale="0.001 0.001 0.001"/>
      </geometry>
    </collision>
  </link>
  <link name="upper_arm">
    <collision>
      <geometry><cylinder radius="0.05" length="0.4"/></geometry>
    </collision>
  </link>
  <link name="camera_link">
    <collision>
      <geometry><box size="0.02 0.1 0.03"/></geometry>
    </collision>
    <collision>
      <geometry><sphere radius="0.01"/></geometry>
    </collision>
  </link>
  <link name="tool_frame"/>
  <joint name="shoulder" type="revolute">
    <parent link="base_link"/>
    <child link="upper_arm"/>
  </joint>
  <joint name="camera_mount" type="fixed">
    <parent link="upper_arm"/>
    <child link="camera_link"/>
  </joint>
  <joint name="tool" type="fixed">
    <parent link="upper_arm"/>
    <child link="tool_frame"/>
  </joint>
</robot>`

func TestParse(t *testing.T) {
	model, err := NewParser().Parse(armURDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.Name != "arm" {
		t.Fatalf("expected robot name arm, got %q", model.Name)
	}
	if model.Root() != "base_link" {
		t.Fatalf("expected root base_link, got %q", model.Root())
	}
	if len(model.Links) != 4 || len(model.Joints) != 3 {
		t.Fatalf("unexpected counts: %d links, %d joints", len(model.Links), len(model.Joints))
	}

	base, ok := model.Link("base_link")
	if !ok || len(base.Collisions) != 1 {
		t.Fatalf("expected one base collision, got %+v", base)
	}
	g := base.Collisions[0].Geometry
	if g.Kind != domain.GeometryMesh {
		t.Fatalf("expected mesh, got %s", g.Kind)
	}
	if g.Filename != "package://arm_description/meshes/base.stl" {
		t.Fatalf("unexpected filename %q", g.Filename)
	}
	if g.Scale != (r3.Vector{X: 0.001, Y: 0.001, Z: 0.001}) {
		t.Fatalf("unexpected scale %v", g.Scale)
	}
	if base.Collisions[0].Origin.XYZ != (r3.Vector{Z: 0.1}) {
		t.Fatalf("unexpected origin %+v", base.Collisions[0].Origin)
	}

	arm, _ := model.Link("upper_arm")
	if g := arm.Collisions[0].Geometry; g.Kind != domain.GeometryCylinder || g.Radius != 0.05 || g.Length != 0.4 {
		t.Fatalf("unexpected cylinder %+v", g)
	}

	cam, _ := model.Link("camera_link")
	if len(cam.Collisions) != 2 {
		t.Fatalf("expected two camera collisions")
	}
	if g := cam.Collisions[0].Geometry; g.Kind != domain.GeometryBox || g.Size != (r3.Vector{X: 0.02, Y: 0.1, Z: 0.03}) {
		t.Fatalf("unexpected box %+v", g)
	}
	if g := cam.Collisions[1].Geometry; g.Kind != domain.GeometrySphere || g.Radius != 0.01 {
		t.Fatalf("unexpected sphere %+v", g)
	}

	tool, _ := model.Link("tool_frame")
	if len(tool.Collisions) != 0 {
		t.Fatalf("expected no tool collisions")
	}
}

func TestParseMeshScaleDefaultsToOne(t *testing.T) {
	doc := `<robot name="r"><link name="a"><collision><geometry><mesh filename="a.stl"/></geometry></collision></link></robot>`
	model, err := NewParser().Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link, _ := model.Link("a")
	if link.Collisions[0].Geometry.Scale != (r3.Vector{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("expected unit scale, got %v", link.Collisions[0].Geometry.Scale)
	}
	if !link.Collisions[0].Origin.IsIdentity() {
		t.Fatalf("expected identity origin")
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "   ", "empty"},
		{"not xml", "robot_description", "EOF"},
		{"no links", `<robot name="r"/>`, "no links"},
		{"two roots", `<robot name="r"><link name="a"/><link name="b"/></robot>`, "exactly one root"},
		{"cycle", `<robot name="r"><link name="a"/><link name="b"/>
			<joint name="j1"><parent link="a"/><child link="b"/></joint>
			<joint name="j2"><parent link="b"/><child link="a"/></joint></robot>`, "exactly one root"},
		{"unknown child", `<robot name="r"><link name="a"/>
			<joint name="j"><parent link="a"/><child link="ghost"/></joint></robot>`, "unknown child"},
		{"duplicate link", `<robot name="r"><link name="a"/><link name="a"/></robot>`, "duplicate link"},
		{"bad number", `<robot name="r"><link name="a"><collision><geometry><sphere radius="big"/></geometry></collision></link></robot>`, "sphere.radius"},
		{"short vector", `<robot name="r"><link name="a"><collision><origin xyz="1 2"/><geometry><sphere radius="1"/></geometry></collision></link></robot>`, "origin.xyz"},
		{"missing geometry", `<robot name="r"><link name="a"><collision/></link></robot>`, "geometry is required"},
		{"empty geometry", `<robot name="r"><link name="a"><collision><geometry/></collision></link></robot>`, "no mesh"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewParser().Parse(c.doc)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidDescription) {
				t.Fatalf("expected KindInvalidDescription, got %v", err)
			}
			if !errors.Is(err, domain.ErrInvalidDescription) {
				t.Fatalf("expected ErrInvalidDescription in chain, got %v", err)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected %q in %v", c.want, err)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.urdf")
	if err := os.WriteFile(path, []byte(armURDF), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewFileSource(path).Description(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != armURDF {
		t.Fatalf("document mismatch")
	}

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.urdf")).Description(context.Background())
	if !domain.IsKind(err, domain.KindMissingParameter) {
		t.Fatalf("expected KindMissingParameter, got %v", err)
	}
}
