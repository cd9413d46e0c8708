package geometry

import (
	"math"
	"testing"

	"github.com/tlerebours/pathtracer/pkg/core"
)

// unitQuadMesh builds a two-triangle square in the z=-2 plane
func unitQuadMesh(t *testing.T) *TriangleMesh {
	t.Helper()
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, -2),
		core.NewVec3(1, -1, -2),
		core.NewVec3(1, 1, -2),
		core.NewVec3(-1, 1, -2),
	}
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2, 0, 2, 3}, testMaterial())
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}
	return mesh
}

func TestTriangleMeshHit(t *testing.T) {
	mesh := unitQuadMesh(t)

	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	// Hits land on either triangle of the square
	for _, origin := range []core.Vec3{
		core.NewVec3(0.5, -0.5, 0),
		core.NewVec3(-0.5, 0.5, 0),
	} {
		ray := core.NewRay(origin, core.NewVec3(0, 0, -1))
		hit, isHit := mesh.Hit(ray, 0.001, 1000.0)
		if !isHit {
			t.Fatalf("Expected hit from %v", origin)
		}
		if math.Abs(hit.T-2.0) > 1e-9 {
			t.Errorf("T = %v, want 2.0", hit.T)
		}
	}

	// Miss outside the square
	miss := core.NewRay(core.NewVec3(2, 2, 0), core.NewVec3(0, 0, -1))
	if _, isHit := mesh.Hit(miss, 0.001, 1000.0); isHit {
		t.Error("Expected miss outside mesh bounds")
	}
}

func TestTriangleMeshValidation(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	if _, err := NewTriangleMesh(vertices, []int{0, 1}, testMaterial()); err == nil {
		t.Error("Expected error for index count not a multiple of 3")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 3}, testMaterial()); err == nil {
		t.Error("Expected error for out-of-range vertex index")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, -1}, testMaterial()); err == nil {
		t.Error("Expected error for negative vertex index")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 2}, testMaterial()); err != nil {
		t.Errorf("Valid mesh rejected: %v", err)
	}
}

func TestTriangleMeshBoundingBox(t *testing.T) {
	mesh := unitQuadMesh(t)
	box := mesh.BoundingBox()

	want := core.NewAABB(core.NewVec3(-1, -1, -2), core.NewVec3(1, 1, -2))
	if !box.Contains(want) {
		t.Errorf("Mesh box %v does not contain vertex extent %v", box, want)
	}
}
