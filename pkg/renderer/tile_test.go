package renderer

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		width, height, tileSize int
		expectedTiles           int
	}{
		{64, 64, 32, 4},
		{800, 600, 32, 25 * 19},
		{33, 31, 32, 2},
		{1, 1, 32, 1},
		{100, 7, 10, 10},
	}

	for _, tt := range tests {
		tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
		if len(tiles) != tt.expectedTiles {
			t.Errorf("%dx%d/%d: expected %d tiles, got %d", tt.width, tt.height, tt.tileSize, tt.expectedTiles, len(tiles))
		}

		covered := make([]int, tt.width*tt.height)
		for i, tile := range tiles {
			if tile.Index != i {
				t.Errorf("Expected tile index %d, got %d", i, tile.Index)
			}
			if tile.Width() > tt.tileSize || tile.Height() > tt.tileSize || tile.Width() <= 0 || tile.Height() <= 0 {
				t.Errorf("Tile %d has invalid size %dx%d", i, tile.Width(), tile.Height())
			}
			for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
				for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
					covered[y*tt.width+x]++
				}
			}
		}
		for p, n := range covered {
			if n != 1 {
				t.Fatalf("%dx%d/%d: pixel %d covered %d times", tt.width, tt.height, tt.tileSize, p, n)
			}
		}
	}
}

func TestTile_SetAt(t *testing.T) {
	tiles := NewTileGrid(40, 40, 32)
	tile := tiles[3] // clipped 8x8 corner tile
	if tile.StartX() != 32 || tile.StartY() != 32 || tile.Width() != 8 || tile.Height() != 8 {
		t.Fatalf("Unexpected corner tile %v", tile.Bounds)
	}

	c := core.NewVec3(1, 2, 3)
	tile.Set(7, 7, c)
	if tile.At(7, 7) != c {
		t.Errorf("Expected %v, got %v", c, tile.At(7, 7))
	}
	if tile.At(0, 0) != (core.Vec3{}) {
		t.Errorf("Expected untouched pixel to be black, got %v", tile.At(0, 0))
	}
}

func TestTile_OutOfRangePanics(t *testing.T) {
	tile := NewTileGrid(40, 40, 32)[3]
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-range tile access")
		}
	}()
	tile.At(8, 0)
}
