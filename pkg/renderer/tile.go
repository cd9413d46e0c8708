package renderer

import (
	"image"

	"github.com/tlerebours/pathtracer/pkg/core"
)

// Tile is a rectangular region of the image with its own sampler.
// The sampler is consumed only while rendering this tile's pixels, one
// tile at a time, so the pixel values are a pure function of the seed
// regardless of how tiles are scheduled across workers.
type Tile struct {
	ID              int
	Bounds          image.Rectangle
	Sampler         core.Sampler
	PassesCompleted int
}

// NewTile creates a tile whose sampler is seeded from the base seed
// and the tile ID
func NewTile(id int, bounds image.Rectangle, baseSeed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(baseSeed + int64(id)),
	}
}

// NewTileGrid partitions a width x height image into tiles of at most
// tileSize x tileSize pixels, in row-major order
func NewTileGrid(width, height, tileSize int, baseSeed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), baseSeed))
			tileID++
		}
	}

	return tiles
}
