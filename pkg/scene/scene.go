// Package scene assembles cameras, shapes and materials into
// renderable scenes and validates them before rendering starts.
package scene

import (
	"fmt"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// SamplingConfig contains per-scene rendering configuration
type SamplingConfig struct {
	SamplesPerPixel           int     // Number of rays per pixel
	MaxDepth                  int     // Maximum ray bounce depth
	RussianRouletteMinBounces int     // Minimum bounces before Russian Roulette can activate
	AdaptiveMinSamples        float64 // Minimum samples as fraction of max samples (0.0-1.0)
	AdaptiveThreshold         float64 // Relative error threshold for adaptive convergence (0 = off)
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH // Built by Preprocess

	TopColor    core.Vec3 // Background gradient at the zenith
	BottomColor core.Vec3 // Background gradient at the horizon
}

// Preprocess validates the scene and builds the acceleration structure.
// It must be called once before rendering; afterwards the scene is
// read-only and safe for concurrent tracing.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return fmt.Errorf("scene: camera is required")
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("scene: shape %d is nil", i)
		}
		if !shape.BoundingBox().IsValid() {
			return fmt.Errorf("scene: shape %d has an invalid bounding box", i)
		}
	}
	if err := validateMaterials(s.Shapes); err != nil {
		return err
	}

	s.BVH = geometry.NewBVH(s.Shapes)

	if len(s.Shapes) > 0 {
		size := s.BVH.Bounds().Size()
		if size.X == 0 && size.Y == 0 && size.Z == 0 {
			return fmt.Errorf("scene: geometry has zero spatial extent")
		}
	}
	return nil
}

// validateMaterials checks that every primitive carries a material. A
// nil material would only fail deep inside the integrator, so catch it
// here with a useful index.
func validateMaterials(shapes []geometry.Shape) error {
	for i, shape := range shapes {
		var mat material.Material
		switch sh := shape.(type) {
		case *geometry.Sphere:
			mat = sh.Material
		case *geometry.Triangle:
			mat = sh.Material
		case *geometry.Quad:
			mat = sh.Material
		case *geometry.TriangleMesh:
			mat = sh.Material
		default:
			continue
		}
		if mat == nil {
			return fmt.Errorf("scene: shape %d has no material", i)
		}
	}
	return nil
}

// Hit finds the closest intersection with the scene geometry
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.BVH.Hit(ray, tMin, tMax)
}

// Background returns the sky radiance for a ray that escaped the scene,
// a vertical gradient between BottomColor and TopColor
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return s.BottomColor.Lerp(s.TopColor, t)
}

// NewGroundQuad creates a large horizontal quad to stand in for an
// infinite ground plane, centered at the given point with the normal
// pointing up
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, size)
	return geometry.NewQuad(corner, u, v, mat)
}
