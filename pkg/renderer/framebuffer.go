package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/integrator"
)

// Pixel accumulates samples for a single pixel as running means, so
// the current estimate is readable at any time without a division
// sweep. Luminance variance is tracked with Welford's algorithm for
// adaptive convergence checks.
type Pixel struct {
	Color    core.Vec3 // Running mean radiance
	Normal   core.Vec3 // Running mean first-hit normal
	Albedo   core.Vec3 // Running mean first-hit albedo
	Position core.Vec3 // Running mean first-hit world position
	Depth    float64   // Running mean first-hit depth

	SampleCount int
	HitCount    int // Samples whose primary ray hit geometry

	luminanceMean float64
	luminanceM2   float64
}

// AddSample folds one ray result into the running means
func (p *Pixel) AddSample(result integrator.RayResult) {
	p.SampleCount++
	n := float64(p.SampleCount)

	p.Color = p.Color.Add(result.Color.Subtract(p.Color).Multiply(1.0 / n))
	p.Normal = p.Normal.Add(result.Normal.Subtract(p.Normal).Multiply(1.0 / n))
	p.Albedo = p.Albedo.Add(result.Albedo.Subtract(p.Albedo).Multiply(1.0 / n))
	p.Position = p.Position.Add(result.Position.Subtract(p.Position).Multiply(1.0 / n))
	p.Depth += (result.Depth - p.Depth) / n
	if result.Hit {
		p.HitCount++
	}

	luminance := result.Color.Luminance()
	delta := luminance - p.luminanceMean
	p.luminanceMean += delta / n
	p.luminanceM2 += delta * (luminance - p.luminanceMean)
}

// LuminanceVariance returns the sample variance of pixel luminance
func (p *Pixel) LuminanceVariance() float64 {
	if p.SampleCount < 2 {
		return math.Inf(1)
	}
	return p.luminanceM2 / float64(p.SampleCount-1)
}

// RelativeError returns the luminance coefficient of variation of the
// mean estimate, the convergence measure for adaptive sampling
func (p *Pixel) RelativeError() float64 {
	if p.SampleCount < 2 {
		return math.Inf(1)
	}
	variance := p.LuminanceVariance() / float64(p.SampleCount)
	if p.luminanceMean <= 1e-8 {
		// Dark pixels: absolute rather than relative criterion
		return math.Sqrt(variance)
	}
	return math.Sqrt(variance) / p.luminanceMean
}

// FrameBuffer holds per-pixel accumulation state for the whole image.
// Tiles write to disjoint pixel ranges, so concurrent tile rendering
// needs no locking.
type FrameBuffer struct {
	width, height int
	pixels        [][]Pixel // [y][x]
}

// NewFrameBuffer creates a zeroed frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	pixels := make([][]Pixel, height)
	for y := range pixels {
		pixels[y] = make([]Pixel, width)
	}
	return &FrameBuffer{width: width, height: height, pixels: pixels}
}

// Width returns the image width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the image height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Pixel returns the accumulation state for pixel (x, y)
func (fb *FrameBuffer) Pixel(x, y int) *Pixel {
	return &fb.pixels[y][x]
}

// ColorAt returns the current linear radiance estimate for a pixel
func (fb *FrameBuffer) ColorAt(x, y int) core.Vec3 {
	return fb.pixels[y][x].Color
}

// Stats scans the buffer and reports cumulative sampling statistics
func (fb *FrameBuffer) Stats(maxSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: fb.width * fb.height,
		MaxSamples:  maxSamples,
		MinSamples:  int(^uint(0) >> 1),
	}
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			count := fb.pixels[y][x].SampleCount
			stats.TotalSamples += count
			if count < stats.MinSamples {
				stats.MinSamples = count
			}
			if count > stats.MaxSamplesUsed {
				stats.MaxSamplesUsed = count
			}
		}
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}
	return stats
}

// vec3ToColor converts linear radiance to display RGBA with gamma 2.0
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// ColorImage renders the accumulated radiance to a tone-mapped image
func (fb *FrameBuffer) ColorImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.pixels[y][x].Color))
		}
	}
	return img
}

// NormalImage visualizes mean first-hit normals mapped from [-1,1] to
// [0,1] per channel. Pixels that never hit geometry come out mid-gray.
func (fb *FrameBuffer) NormalImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			n := fb.pixels[y][x].Normal
			mapped := core.NewVec3(n.X+1, n.Y+1, n.Z+1).Multiply(0.5).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * mapped.X),
				G: uint8(255 * mapped.Y),
				B: uint8(255 * mapped.Z),
				A: 255,
			})
		}
	}
	return img
}

// AlbedoImage renders the mean first-hit albedo without tone mapping
func (fb *FrameBuffer) AlbedoImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			a := fb.pixels[y][x].Albedo.Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * a.X),
				G: uint8(255 * a.Y),
				B: uint8(255 * a.Z),
				A: 255,
			})
		}
	}
	return img
}

// DepthImage renders mean first-hit depth normalized by the maximum
// finite depth in the buffer, nearer surfaces brighter
func (fb *FrameBuffer) DepthImage() *image.RGBA {
	maxDepth := 0.0
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			if d := fb.pixels[y][x].Depth; d > maxDepth && !math.IsInf(d, 1) {
				maxDepth = d
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			v := 0.0
			if p := &fb.pixels[y][x]; p.HitCount > 0 && maxDepth > 0 {
				v = 1.0 - math.Min(p.Depth/maxDepth, 1.0)
			}
			g := uint8(255 * v)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}
