package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

const cubeOBJ = `# unit cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 2 3
f 1 3 4
f 5 6 7
f 5 7 8
f 1 2 6
f 1 6 5
f 4 3 7
f 4 7 8
f 1 4 8
f 1 8 5
f 2 3 7
f 2 7 6
`

func writeTempOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp obj: %v", err)
	}
	return path
}

func TestLoadOBJ(t *testing.T) {
	path := writeTempOBJ(t, cubeOBJ)

	data, err := LoadOBJ(path, nil)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if len(data.Vertices) != 8 {
		t.Errorf("Vertices = %d, want 8", len(data.Vertices))
	}
	if len(data.Indices) != 36 {
		t.Errorf("Indices = %d, want 36 (12 triangles)", len(data.Indices))
	}
	for _, idx := range data.Indices {
		if idx < 0 || idx >= len(data.Vertices) {
			t.Fatalf("Index %d out of range [0, %d)", idx, len(data.Vertices))
		}
	}

	// Vertices must land inside the unit cube
	for _, v := range data.Vertices {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0 || c > 1 {
				t.Errorf("Vertex %v outside unit cube", v)
			}
		}
	}
}

func TestLoadOBJMesh(t *testing.T) {
	path := writeTempOBJ(t, cubeOBJ)

	mesh, err := LoadOBJMesh(path, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), nil)
	if err != nil {
		t.Fatalf("LoadOBJMesh: %v", err)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", mesh.TriangleCount())
	}

	// A ray through the cube center must hit it
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -2), core.NewVec3(0, 0, 1))
	if _, isHit := mesh.Hit(ray, 0.001, 1000.0); !isHit {
		t.Error("Expected hit through cube center")
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "absent.obj"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}
