package renderer

import (
	"image"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// DefaultTileSize is the edge length of the square tiles the image is split into
const DefaultTileSize = 32

// Tile is a rectangular region of the image rendered as one unit of work.
// Its buffer is owned by a single render task until merged into an Image.
type Tile struct {
	Index  int             // Position in the tile grid, row major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1) in image coordinates
	pixels []core.Vec3
}

// NewTile creates a tile with a black buffer covering bounds
func NewTile(index int, bounds image.Rectangle) *Tile {
	return &Tile{
		Index:  index,
		Bounds: bounds,
		pixels: make([]core.Vec3, bounds.Dx()*bounds.Dy()),
	}
}

// StartX returns the image column of the tile's first pixel
func (t *Tile) StartX() int { return t.Bounds.Min.X }

// StartY returns the image row of the tile's first pixel
func (t *Tile) StartY() int { return t.Bounds.Min.Y }

// Width returns the tile width in pixels
func (t *Tile) Width() int { return t.Bounds.Dx() }

// Height returns the tile height in pixels
func (t *Tile) Height() int { return t.Bounds.Dy() }

// At returns the color at tile-local coordinates (i, j)
func (t *Tile) At(i, j int) core.Vec3 {
	return t.pixels[t.offset(i, j)]
}

// Set stores the color at tile-local coordinates (i, j)
func (t *Tile) Set(i, j int, c core.Vec3) {
	t.pixels[t.offset(i, j)] = c
}

func (t *Tile) offset(i, j int) int {
	if i < 0 || j < 0 || i >= t.Width() || j >= t.Height() {
		panic("renderer: tile coordinate out of range")
	}
	return j*t.Width() + i
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Tiles on the right and top edges are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(len(tiles), image.Rect(x0, y0, x1, y1)))
		}
	}

	return tiles
}
