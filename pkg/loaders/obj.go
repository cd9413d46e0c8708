// Package loaders reads external geometry files into renderer meshes.
package loaders

import (
	"fmt"

	"github.com/udhos/gwob"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// MeshData is triangulated geometry extracted from a model file
type MeshData struct {
	Vertices []core.Vec3
	Indices  []int
}

// LoadOBJ reads a Wavefront OBJ file and returns its triangulated
// vertex and index buffers. Normals and texture coordinates in the
// file are ignored; shading normals come from the triangle planes.
func LoadOBJ(path string, logger core.Logger) (*MeshData, error) {
	options := &gwob.ObjParserOptions{
		LogStats: logger != nil,
		Logger: func(msg string) {
			if logger != nil {
				logger.Printf("obj: %s", msg)
			}
		},
		IgnoreNormals: true,
	}

	obj, err := gwob.NewObjFromFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	// gwob interleaves attributes; strides are in bytes, coords are
	// float32, so divide by 4 to get float indices
	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	if stride <= 0 {
		return nil, fmt.Errorf("loading %s: invalid vertex stride %d", path, obj.StrideSize)
	}

	vertexCount := len(obj.Coord) / stride
	vertices := make([]core.Vec3, vertexCount)
	for i := 0; i < vertexCount; i++ {
		base := stride*i + offset
		vertices[i] = core.NewVec3(
			obj.Coord64(base),
			obj.Coord64(base+1),
			obj.Coord64(base+2),
		)
	}

	indices := make([]int, len(obj.Indices))
	copy(indices, obj.Indices)

	return &MeshData{Vertices: vertices, Indices: indices}, nil
}

// LoadOBJMesh loads an OBJ file directly into a renderable triangle
// mesh with a single material
func LoadOBJMesh(path string, mat material.Material, logger core.Logger) (*geometry.TriangleMesh, error) {
	data, err := LoadOBJ(path, logger)
	if err != nil {
		return nil, err
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Indices, mat)
}
