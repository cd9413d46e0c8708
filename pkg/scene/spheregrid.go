package scene

import (
	"math"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB.
// L: lightness (0-1), C: chroma, H: hue in degrees. The OKLAB to RGB
// step uses the standard matrix, clamped to [0,1].
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a 10x10 grid of spheres cycling through
// hues and materials, a stress test for the acceleration structure
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),
		LookAt:        core.NewVec3(4.5, 0.8, 4.5),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.02,
		FocusDistance: 0.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           100,
			MaxDepth:                  30,
			RussianRouletteMinBounces: 5,
			AdaptiveMinSamples:        0.15,
			AdaptiveThreshold:         0.01,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Shapes = append(s.Shapes, ground)

	const gridSize = 10
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			hue := float64((row*gridSize+col)*360) / float64(gridSize*gridSize)
			color := oklchToRGB(0.7, 0.15, hue)

			// Alternate diffuse, metal and glass across the grid
			var mat material.Material
			switch (row + col) % 3 {
			case 0:
				mat = material.NewLambertian(color)
			case 1:
				mat = material.NewMetal(color, 0.1)
			default:
				mat = material.NewDielectric(1.5)
			}

			center := core.NewVec3(float64(col), 0.4, float64(row))
			s.Shapes = append(s.Shapes, geometry.NewSphere(center, 0.4, mat))
		}
	}

	return s
}
