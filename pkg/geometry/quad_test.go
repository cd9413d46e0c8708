package geometry

import (
	"math"
	"testing"

	"github.com/tlerebours/pathtracer/pkg/core"
)

func TestQuadHit(t *testing.T) {
	// Unit square in the z=-2 plane spanning [0,1]x[0,1]
	quad := NewQuad(
		core.NewVec3(0, 0, -2),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
	}{
		{"center hit", core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, -1)), true},
		{"corner hit", core.NewRay(core.NewVec3(0.99, 0.99, 0), core.NewVec3(0, 0, -1)), true},
		{"just outside u", core.NewRay(core.NewVec3(1.01, 0.5, 0), core.NewVec3(0, 0, -1)), false},
		{"just outside v", core.NewRay(core.NewVec3(0.5, -0.01, 0), core.NewVec3(0, 0, -1)), false},
		{"parallel ray", core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(1, 0, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isHit := quad.Hit(tt.ray, 0.001, 1000.0)
			if isHit != tt.wantHit {
				t.Errorf("Hit = %v, want %v", isHit, tt.wantHit)
			}
		})
	}
}

func TestQuadHitDistanceAndNormal(t *testing.T) {
	quad := NewQuad(
		core.NewVec3(-1, -1, -4),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial(),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := quad.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit through quad center")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("T = %v, want 4.0", hit.T)
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Normal %v does not oppose ray", hit.Normal)
	}
}

func TestQuadBoundingBoxHasExtent(t *testing.T) {
	// Axis-aligned quad would have a zero-thickness box without padding,
	// which breaks BVH slab tests
	quad := NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	size := quad.BoundingBox().Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		t.Errorf("Bounding box has a zero-extent axis: size %v", size)
	}
}
