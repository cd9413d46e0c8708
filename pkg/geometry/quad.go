package geometry

import (
	"math"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner point and two edge
// vectors u and v
type Quad struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Material material.Material
	normal   core.Vec3
	d        float64 // Plane equation constant: normal · p = d
	w        core.Vec3
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		normal:   normal,
		d:        normal.Dot(corner),
		w:        n.Multiply(1.0 / n.Dot(n)),
	}

	// Pad the planar box slightly so it has volume along the normal
	q.bbox = core.NewAABBFromPoints(
		corner,
		corner.Add(u),
		corner.Add(v),
		corner.Add(u).Add(v),
	)
	const pad = 1e-4
	padVec := core.NewVec3(pad, pad, pad)
	q.bbox = core.NewAABB(q.bbox.Min.Subtract(padVec), q.bbox.Max.Add(padVec))

	return q
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denom := q.normal.Dot(ray.Direction)

	// Ray parallel to the plane
	if math.Abs(denom) < 1e-12 {
		return nil, false
	}

	t := (q.d - q.normal.Dot(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	// Planar coordinates of the hit point
	point := ray.At(t)
	planar := point.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
