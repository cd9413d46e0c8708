package geometry

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the closest intersection within [tMin, tMax], or false.
// Shapes are immutable once the scene is built.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
