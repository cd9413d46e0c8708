// Package renderer orchestrates tile-parallel progressive rendering of
// a scene into a frame buffer.
package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for progressive rendering
type Config struct {
	TileSize       int   // Size of each square tile in pixels
	InitialSamples int   // Samples per pixel for the first preview pass
	MaxPasses      int   // Number of progressive passes
	NumWorkers     int   // Parallel workers (0 = CPU count)
	Seed           int64 // Base seed for per-tile samplers
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      7,
		NumWorkers:     0,
		Seed:           42,
	}
}

// Validate rejects configurations that cannot render
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("renderer: tile size must be positive, got %d", c.TileSize)
	}
	if c.InitialSamples < 1 {
		return fmt.Errorf("renderer: initial samples must be at least 1, got %d", c.InitialSamples)
	}
	if c.MaxPasses < 1 {
		return fmt.Errorf("renderer: max passes must be at least 1, got %d", c.MaxPasses)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("renderer: worker count must be non-negative, got %d", c.NumWorkers)
	}
	return nil
}

// PassResult contains the output of one completed pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// Result is the final output of a complete render: the tone-mapped
// image, the feature channels and the accumulation buffer itself
type Result struct {
	Image       *image.RGBA
	NormalImage *image.RGBA
	AlbedoImage *image.RGBA
	DepthImage  *image.RGBA
	FrameBuffer *FrameBuffer
	Stats       RenderStats
}

// Renderer manages progressive rendering of a single scene. It is not
// safe for concurrent Render calls; create one renderer per render.
type Renderer struct {
	scene      *scene.Scene
	config     Config
	fb         *FrameBuffer
	tiles      []*Tile
	tileRender *TileRenderer
	logger     core.Logger
}

// NewRenderer validates the configuration and scene, preprocesses the
// scene and prepares the tile grid
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s.SamplingConfig.SamplesPerPixel < 1 {
		return nil, fmt.Errorf("renderer: samples per pixel must be at least 1, got %d",
			s.SamplingConfig.SamplesPerPixel)
	}
	if s.SamplingConfig.MaxDepth < 0 {
		return nil, fmt.Errorf("renderer: max depth must be non-negative, got %d",
			s.SamplingConfig.MaxDepth)
	}
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	width := s.Camera.Width()
	height := s.Camera.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: image dimensions %dx%d are invalid", width, height)
	}

	return &Renderer{
		scene:      s,
		config:     config,
		fb:         NewFrameBuffer(width, height),
		tiles:      NewTileGrid(width, height, config.TileSize, config.Seed),
		tileRender: NewTileRenderer(s),
		logger:     logger,
	}, nil
}

// getSamplesForPass returns the cumulative per-pixel sample target
// after the given pass: a single quick preview sample first, then the
// remaining budget spread evenly, with the final pass absorbing the
// remainder
func (r *Renderer) getSamplesForPass(passNumber int) int {
	maxSamples := r.scene.SamplingConfig.SamplesPerPixel
	if r.config.MaxPasses == 1 || passNumber >= r.config.MaxPasses {
		return maxSamples
	}
	if passNumber == 1 {
		return min(r.config.InitialSamples, maxSamples)
	}

	remainingSamples := maxSamples - r.config.InitialSamples
	samplesPerPass := remainingSamples / (r.config.MaxPasses - 1)
	return min(r.config.InitialSamples+(passNumber-1)*samplesPerPass, maxSamples)
}

// renderPass runs one pass over all tiles through the worker pool and
// waits for every tile to finish: the pass barrier. Pass N+1 never
// starts while any tile is still on pass N.
func (r *Renderer) renderPass(pool *WorkerPool, passNumber int) (RenderStats, error) {
	targetSamples := r.getSamplesForPass(passNumber)

	r.logger.Printf("Pass %d: target %d samples per pixel (%d workers)\n",
		passNumber, targetSamples, pool.NumWorkers())

	for taskID, tile := range r.tiles {
		pool.Submit(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
		})
	}

	for range r.tiles {
		result, ok := pool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("renderer: worker pool closed unexpectedly")
		}
		if result.Err != nil {
			return RenderStats{}, result.Err
		}
		r.tiles[result.TaskID].PassesCompleted++
	}

	// Cumulative statistics come from the frame buffer, not the
	// per-pass tile deltas
	return r.fb.Stats(targetSamples), nil
}

// Render runs all passes to completion and returns the final result.
// Cancellation discards all partial output and returns the context
// error.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	pool := NewWorkerPool(r.tileRender, r.fb, len(r.tiles), r.config.NumWorkers)
	pool.Start(ctx)
	defer pool.Stop()

	var stats RenderStats
	for pass := 1; pass <= r.config.MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		passStats, err := r.renderPass(pool, pass)
		if err != nil {
			return nil, err
		}
		stats = passStats

		if int(passStats.AverageSamples) >= r.scene.SamplingConfig.SamplesPerPixel {
			break
		}
	}

	return r.result(stats), nil
}

// RenderProgressive renders pass by pass, delivering each pass's image
// over the returned channel. The error channel receives at most one
// error; both channels close when rendering ends.
func (r *Renderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pool := NewWorkerPool(r.tileRender, r.fb, len(r.tiles), r.config.NumWorkers)
		pool.Start(ctx)
		defer pool.Stop()

		r.logger.Printf("Starting progressive render: %d passes, %dx%d pixels, %d tiles\n",
			r.config.MaxPasses, r.fb.Width(), r.fb.Height(), len(r.tiles))

		for pass := 1; pass <= r.config.MaxPasses; pass++ {
			if err := ctx.Err(); err != nil {
				errChan <- err
				return
			}

			startTime := time.Now()
			stats, err := r.renderPass(pool, pass)
			if err != nil {
				errChan <- err
				return
			}

			r.logger.Printf("Pass %d completed in %v (avg %.1f samples/pixel)\n",
				pass, time.Since(startTime), stats.AverageSamples)

			done := int(stats.AverageSamples) >= r.scene.SamplingConfig.SamplesPerPixel
			result := PassResult{
				PassNumber: pass,
				Image:      r.fb.ColorImage(),
				Stats:      stats,
				IsLast:     pass == r.config.MaxPasses || done,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if done {
				return
			}
		}
	}()

	return passChan, errChan
}

// result assembles the final output from the frame buffer
func (r *Renderer) result(stats RenderStats) *Result {
	return &Result{
		Image:       r.fb.ColorImage(),
		NormalImage: r.fb.NormalImage(),
		AlbedoImage: r.fb.AlbedoImage(),
		DepthImage:  r.fb.DepthImage(),
		FrameBuffer: r.fb,
		Stats:       stats,
	}
}
