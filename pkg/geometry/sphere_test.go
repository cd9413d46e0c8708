package geometry

import (
	"math"
	"testing"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

func testMaterial() material.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
		wantT   float64
	}{
		{"through center", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), true, 4.0},
		{"grazing miss", core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -1)), false, 0},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), false, 0},
		{"from inside", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), true, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(tt.ray, 0.001, 1000.0)
			if isHit != tt.wantHit {
				t.Fatalf("Hit = %v, want %v", isHit, tt.wantHit)
			}
			if isHit && math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("T = %v, want %v", hit.T, tt.wantT)
			}
		})
	}
}

func TestSphereNormalOpposesRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())

	// Outside hit: front face, normal towards the ray origin
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, _ := sphere.Hit(ray, 0.001, 1000.0)
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside")
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Normal %v does not oppose ray", hit.Normal)
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
		t.Errorf("Normal is not unit length: %v", hit.Normal)
	}

	// Inside hit: back face, normal still opposes the ray
	inside := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, _ = sphere.Hit(inside, 0.001, 1000.0)
	if hit.FrontFace {
		t.Error("Expected back face hit from inside")
	}
	if hit.Normal.Dot(inside.Direction) >= 0 {
		t.Errorf("Normal %v does not oppose ray from inside", hit.Normal)
	}
}

func TestSphereDegenerateRadiusSkipped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 0.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Zero-radius sphere should never be hit")
	}
}

func TestSphereRespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Closest root at t=4 excluded, farther root at t=6 returned
	hit, isHit := sphere.Hit(ray, 5.0, 1000.0)
	if !isHit || math.Abs(hit.T-6.0) > 1e-9 {
		t.Errorf("Expected far-side hit at t=6, got %+v (hit=%v)", hit, isHit)
	}

	// Both roots outside the interval
	if _, isHit := sphere.Hit(ray, 0.001, 3.0); isHit {
		t.Error("Expected no hit when both roots are beyond tMax")
	}
}

func TestSphereBoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0, testMaterial())
	box := sphere.BoundingBox()
	if box.Min != core.NewVec3(-1, 0, 1) || box.Max != core.NewVec3(3, 4, 5) {
		t.Errorf("Unexpected bounding box: %v", box)
	}

	// Negative radius (hollow shell) still has a positive-extent box
	inner := NewSphere(core.NewVec3(0, 0, 0), -1.0, testMaterial())
	if !inner.BoundingBox().IsValid() {
		t.Error("Negative-radius sphere should have a valid bounding box")
	}
}
