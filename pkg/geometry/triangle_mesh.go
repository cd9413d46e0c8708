package geometry

import (
	"fmt"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// TriangleMesh represents an indexed triangle mesh with a single material.
// The mesh owns a private BVH over its triangles so that large meshes stay
// sub-linear even inside leaf nodes of the scene hierarchy.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	Material  material.Material
}

// NewTriangleMesh creates a mesh from a vertex list and triangle indices
// (three indices per face)
func NewTriangleMesh(vertices []core.Vec3, indices []int, mat material.Material) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangle mesh: index count %d is not a multiple of 3", len(indices))
	}

	mesh := &TriangleMesh{
		triangles: make([]Shape, 0, len(indices)/3),
		Material:  mat,
	}

	for i := 0; i < len(indices); i += 3 {
		for j := 0; j < 3; j++ {
			if idx := indices[i+j]; idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle mesh: index %d out of range for %d vertices", idx, len(vertices))
			}
		}
		tri := NewTriangle(
			vertices[indices[i]],
			vertices[indices[i+1]],
			vertices[indices[i+2]],
			mat,
		)
		mesh.triangles = append(mesh.triangles, tri)
	}

	if len(mesh.triangles) == 0 {
		return nil, fmt.Errorf("triangle mesh: no triangles")
	}

	mesh.bvh = NewBVH(mesh.triangles)
	return mesh, nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}

// Hit tests if a ray intersects with any triangle of the mesh
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the whole mesh
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bvh.Bounds()
}
