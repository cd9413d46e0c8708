package scene

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box with quad walls, a
// ceiling light and two spheres
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
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
			MaxDepth:                  40,
			RussianRouletteMinBounces: 4,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
		// All light comes from the ceiling quad
		TopColor:    core.NewVec3(0, 0, 0),
		BottomColor: core.NewVec3(0, 0, 0),
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555-unit box
	boxSize := 555.0

	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	ceiling := geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	)
	leftWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	)
	rightWall := geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	)

	// Ceiling light, slightly below the ceiling plane to avoid
	// coplanar self-intersection
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	light := geometry.NewQuad(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		material.NewEmissive(core.NewVec3(15.0, 15.0, 15.0)),
	)

	leftSphere := geometry.NewSphere(
		core.NewVec3(185, 82.5, 169), 82.5,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0),
	)
	rightSphere := geometry.NewSphere(
		core.NewVec3(370, 90, 351), 90,
		material.NewDielectric(1.5),
	)

	s.Shapes = append(s.Shapes,
		floor, ceiling, backWall, leftWall, rightWall,
		light, leftSphere, rightSphere)

	return s
}
