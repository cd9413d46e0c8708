package scene

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// NewMirrorScene creates a scene dominated by perfect mirrors: two
// facing mirror spheres over a dark floor. Long specular chains make
// it a good stress test for path termination.
func NewMirrorScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        35.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           150,
			MaxDepth:                  60,
			RussianRouletteMinBounces: 10,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	mirror := material.NewMetal(core.NewVec3(0.95, 0.95, 0.95), 0.0)
	brushed := material.NewMetal(core.NewVec3(0.9, 0.7, 0.4), 0.25)
	floor := material.NewLambertian(core.NewVec3(0.2, 0.2, 0.25))
	lamp := material.NewEmissive(core.NewVec3(8, 8, 8))

	s.Shapes = append(s.Shapes,
		NewGroundQuad(core.NewVec3(0, 0, 0), 200.0, floor),
		geometry.NewSphere(core.NewVec3(-1.1, 0.8, 0), 0.8, mirror),
		geometry.NewSphere(core.NewVec3(1.1, 0.8, 0), 0.8, mirror),
		geometry.NewSphere(core.NewVec3(0, 0.4, 1.2), 0.4, brushed),
		geometry.NewSphere(core.NewVec3(0, 6, 2), 1.5, lamp),
	)

	return s
}
