package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/tlerebours/pathtracer/pkg/core"
	"github.com/tlerebours/pathtracer/pkg/export"
	"github.com/tlerebours/pathtracer/pkg/geometry"
	"github.com/tlerebours/pathtracer/pkg/renderer"
	"github.com/tlerebours/pathtracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene: 'default', 'cornell', 'mirror', 'spheregrid' or 'mesh'")
	objPath := flag.String("obj", "", "OBJ file to load (mesh scene only)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	maxDepth := flag.Int("max-depth", 0, "Maximum ray bounces (0 = scene default)")
	passes := flag.Int("passes", 7, "Number of progressive passes")
	workers := flag.Int("workers", 0, "Parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Base seed for per-tile samplers")
	adaptive := flag.Float64("adaptive", -1, "Adaptive sampling error threshold (0 disables, <0 = scene default)")
	outputDir := flag.String("output", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default    - Spheres with mixed materials over a ground plane")
		fmt.Println("  cornell    - Cornell box with area light")
		fmt.Println("  mirror     - Facing mirror spheres")
		fmt.Println("  spheregrid - 10x10 grid of spheres")
		fmt.Println("  mesh       - Wavefront OBJ model (requires -obj)")
		fmt.Println()
		fmt.Println("Output is saved to <output>/<scene>/render_<timestamp>.{png,pfm}")
		fmt.Println("plus normal, albedo and depth channel images.")
		return
	}

	logger := renderer.NewDefaultLogger()

	selectedScene, err := buildScene(*sceneType, *objPath, *width, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *samples > 0 {
		selectedScene.SamplingConfig.SamplesPerPixel = *samples
	}
	if *maxDepth > 0 {
		selectedScene.SamplingConfig.MaxDepth = *maxDepth
	}
	if *adaptive >= 0 {
		selectedScene.SamplingConfig.AdaptiveThreshold = *adaptive
	}

	config := renderer.Config{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      *passes,
		NumWorkers:     *workers,
		Seed:           *seed,
	}

	rend, err := renderer.NewRenderer(selectedScene, config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C cancels the render; partial output is discarded
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	result, err := rend.Render(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render aborted: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	logger.Printf("Render completed in %v\n", renderTime)
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		result.Stats.AverageSamples, result.Stats.MinSamples, result.Stats.MaxSamplesUsed)

	timestamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(*outputDir, *sceneType)
	baseName := fmt.Sprintf("render_%s", timestamp)

	if err := export.SaveResult(result, dir, baseName); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving output: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Render saved as %s\n", filepath.Join(dir, baseName+".png"))
}

// buildScene constructs the selected scene, applying a width override
// when requested
func buildScene(sceneType, objPath string, width int, logger core.Logger) (*scene.Scene, error) {
	var overrides []geometry.CameraConfig
	if width > 0 {
		overrides = append(overrides, geometry.CameraConfig{Width: width})
	}

	switch sceneType {
	case "default":
		return scene.NewDefaultScene(overrides...), nil
	case "cornell":
		return scene.NewCornellScene(overrides...), nil
	case "mirror":
		return scene.NewMirrorScene(overrides...), nil
	case "spheregrid":
		return scene.NewSphereGridScene(overrides...), nil
	case "mesh":
		if objPath == "" {
			return nil, fmt.Errorf("mesh scene requires -obj <file>")
		}
		return scene.NewMeshScene(objPath, logger, overrides...)
	default:
		return nil, fmt.Errorf("unknown scene type %q", sceneType)
	}
}
