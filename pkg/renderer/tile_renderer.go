package renderer

import (
	"github.com/tlerebours/pathtracer/pkg/integrator"
	"github.com/tlerebours/pathtracer/pkg/scene"
)

// TileRenderer renders the pixels of individual tiles with the path
// tracer. It is stateless across tiles; all accumulation lives in the
// frame buffer.
type TileRenderer struct {
	scene      *scene.Scene
	integrator *integrator.PathTracer
}

// NewTileRenderer creates a tile renderer for the given scene
func NewTileRenderer(s *scene.Scene) *TileRenderer {
	return &TileRenderer{
		scene: s,
		integrator: integrator.NewPathTracer(integrator.Config{
			MaxDepth:                  s.SamplingConfig.MaxDepth,
			RussianRouletteMinBounces: s.SamplingConfig.RussianRouletteMinBounces,
		}),
	}
}

// RenderTile samples every pixel in the tile up to targetSamples,
// stopping early per pixel once the adaptive convergence criterion is
// met. Pixels are visited in row-major order so the tile sampler's
// consumption is schedule-independent.
func (tr *TileRenderer) RenderTile(tile *Tile, fb *FrameBuffer, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: tile.Bounds.Dx() * tile.Bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			used := tr.samplePixel(i, j, fb.Pixel(i, j), tile, targetSamples)
			stats.TotalSamples += used
			if used < stats.MinSamples {
				stats.MinSamples = used
			}
			if used > stats.MaxSamplesUsed {
				stats.MaxSamplesUsed = used
			}
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel takes samples until the pixel reaches targetSamples or
// converges, returning the number of samples taken this pass
func (tr *TileRenderer) samplePixel(i, j int, pixel *Pixel, tile *Tile, targetSamples int) int {
	before := pixel.SampleCount

	for pixel.SampleCount < targetSamples && !tr.shouldStopSampling(pixel, targetSamples) {
		ray := tr.scene.Camera.GetRay(i, j, tile.Sampler)
		result := tr.integrator.TraceRay(ray, tr.scene, tile.Sampler)
		pixel.AddSample(result)
	}

	return pixel.SampleCount - before
}

// shouldStopSampling applies the adaptive convergence criterion: never
// before the configured minimum fraction of samples, then once the
// relative error of the luminance mean drops below the threshold
func (tr *TileRenderer) shouldStopSampling(pixel *Pixel, targetSamples int) bool {
	config := tr.scene.SamplingConfig
	if config.AdaptiveThreshold <= 0 {
		return false // Adaptive sampling disabled
	}

	minSamples := max(1, int(float64(config.SamplesPerPixel)*config.AdaptiveMinSamples))
	if pixel.SampleCount < minSamples {
		return false
	}

	return pixel.RelativeError() < config.AdaptiveThreshold
}
