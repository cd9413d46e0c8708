// Package export writes rendered images to disk in LDR (PNG) and HDR
// (PFM) formats.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/tlerebours/pathtracer/pkg/renderer"
)

// SavePNG writes an image to a PNG file, creating parent directories
// as needed
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// SavePFM writes the frame buffer's linear radiance to a Portable
// FloatMap file: untone-mapped HDR output for downstream grading or
// denoising. The format stores rows bottom to top as little-endian
// float32 RGB triples.
func SavePFM(fb *renderer.FrameBuffer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	// Scale of -1.0 declares little-endian
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1.0\n", fb.Width(), fb.Height()); err != nil {
		return fmt.Errorf("writing %s header: %w", path, err)
	}

	row := make([]byte, fb.Width()*3*4)
	for y := fb.Height() - 1; y >= 0; y-- {
		offset := 0
		for x := 0; x < fb.Width(); x++ {
			c := fb.ColorAt(x, y)
			for _, v := range []float64{c.X, c.Y, c.Z} {
				binary.LittleEndian.PutUint32(row[offset:], math.Float32bits(float32(v)))
				offset += 4
			}
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// SaveResult writes the full render output under dir: the tone-mapped
// color image, the feature channels and the HDR radiance
func SaveResult(result *renderer.Result, dir, baseName string) error {
	outputs := []struct {
		img    image.Image
		suffix string
	}{
		{result.Image, ".png"},
		{result.NormalImage, "_normal.png"},
		{result.AlbedoImage, "_albedo.png"},
		{result.DepthImage, "_depth.png"},
	}
	for _, out := range outputs {
		if err := SavePNG(out.img, filepath.Join(dir, baseName+out.suffix)); err != nil {
			return err
		}
	}
	return SavePFM(result.FrameBuffer, filepath.Join(dir, baseName+".pfm"))
}
