package scene

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/loaders"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// NewMeshScene loads a Wavefront OBJ model and places it over a ground
// quad under the default sky
func NewMeshScene(objPath string, logger core.Logger, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	mesh, err := loaders.LoadOBJMesh(objPath,
		material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)), logger)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           150,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 5,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	s.Shapes = append(s.Shapes, ground, mesh)
	return s, nil
}
