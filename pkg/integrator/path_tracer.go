// Package integrator estimates pixel radiance with unidirectional
// Monte Carlo path tracing.
package integrator

import (
	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/material"
)

const (
	rayTMin = 0.001 // Offset to avoid self-intersection (shadow acne)
	rayTMax = 1000.0
)

// Scene is what the integrator needs from a scene: intersection against
// all geometry and a background radiance for escaped rays.
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	Background(ray core.Ray) core.Vec3
}

// Config controls path length and termination
type Config struct {
	MaxDepth                  int // Hard bounce limit
	RussianRouletteMinBounces int // Bounces before roulette termination kicks in
}

// RayResult carries the radiance estimate for a primary ray together
// with the first-hit feature channels used by denoisers. When the ray
// escapes the scene, Hit is false and the feature channels stay at
// their zero values.
type RayResult struct {
	Color    core.Vec3 // Radiance estimate along the ray
	Normal   core.Vec3 // Shading normal at the first hit
	Albedo   core.Vec3 // Surface reflectance at the first hit
	Position core.Vec3 // World-space point of the first hit
	Depth    float64   // Distance to the first hit
	Hit      bool      // Whether the primary ray hit anything
}

// PathTracer traces light transport paths. It holds no per-ray state,
// so a single instance is shared by all workers.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a path tracer with the given configuration
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// TraceRay estimates radiance along a primary ray and records first-hit
// features. All randomness comes from the supplied sampler, so results
// are reproducible for a fixed sampler state.
func (pt *PathTracer) TraceRay(ray core.Ray, scene Scene, sampler core.Sampler) RayResult {
	var result RayResult

	color := core.NewVec3(0, 0, 0)
	throughput := core.NewVec3(1, 1, 1)
	current := ray

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		hit, isHit := scene.Hit(current, rayTMin, rayTMax)
		if !isHit {
			color = color.Add(throughput.MultiplyVec(scene.Background(current)))
			break
		}

		if bounce == 0 {
			result.Hit = true
			result.Normal = hit.Normal
			result.Albedo = firstHitAlbedo(hit.Material)
			result.Position = hit.Point
			result.Depth = hit.T
		}

		if emitter, ok := hit.Material.(material.Emitter); ok {
			color = color.Add(throughput.MultiplyVec(emitter.Emit(current)))
		}

		scatter, didScatter := hit.Material.Scatter(current, *hit, sampler)
		if !didScatter {
			break
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		current = scatter.Scattered

		// Russian roulette: after the configured bounce count, kill
		// paths probabilistically and reweight survivors so the
		// estimator stays unbiased
		if bounce >= pt.config.RussianRouletteMinBounces {
			survival := clamp(throughput.Luminance(), 0.5, 0.95)
			if sampler.Get1D() >= survival {
				break
			}
			throughput = throughput.Multiply(1.0 / survival)
		}
	}

	// Degenerate geometry or extreme throughput can produce NaN or Inf;
	// a single bad sample must not poison the pixel mean
	if !color.IsFinite() {
		color = core.NewVec3(0, 0, 0)
	}
	result.Color = color
	return result
}

// firstHitAlbedo extracts the reflectance channel for the albedo AOV.
// Emissive surfaces report their (unclamped) emission so the denoiser
// sees where the light sources are.
func firstHitAlbedo(mat material.Material) core.Vec3 {
	switch m := mat.(type) {
	case *material.Lambertian:
		return m.Albedo
	case *material.Metal:
		return m.Albedo
	case *material.Dielectric:
		return core.NewVec3(1, 1, 1)
	case *material.Emissive:
		return m.Emission
	default:
		return core.NewVec3(0, 0, 0)
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
