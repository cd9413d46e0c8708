package scene

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// NewDefaultScene creates the default showcase scene: a diffuse, a
// mirror and a glass sphere over a ground quad, lit by the sky and a
// distant emissive sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2),
		LookAt:        core.NewVec3(0, 0.5, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate from look-at
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           200,
			MaxDepth:                  50,
			RussianRouletteMinBounces: 8,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	lambertianGreen := material.NewLambertian(core.NewVec3(0.48, 0.48, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	sun := material.NewEmissive(core.NewVec3(15.0, 14.0, 13.0))

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen)
	sphereCenter := geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianBlue)
	sphereLeft := geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	sphereRight := geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	solidGlass := geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	// Hollow glass shell: inner sphere with negative radius flips the
	// normal so refraction sees an exit surface
	hollowOuter := geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)
	hollowInner := geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass)

	sunSphere := geometry.NewSphere(core.NewVec3(30, 30.5, 15), 10, sun)

	s.Shapes = append(s.Shapes,
		ground, sphereCenter, sphereLeft, sphereRight,
		solidGlass, hollowOuter, hollowInner, sunSphere)

	return s
}
