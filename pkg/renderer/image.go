package renderer

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Image is the dense linear-radiance output of a render.
// Row 0 is the bottom of the view, matching film coordinate v=0.
type Image struct {
	Width, Height int
	pixels        []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// ColorAt returns the color of pixel (x, y)
func (img *Image) ColorAt(x, y int) core.Vec3 {
	return img.pixels[img.offset(x, y)]
}

// SetColor stores the color of pixel (x, y)
func (img *Image) SetColor(x, y int, c core.Vec3) {
	img.pixels[img.offset(x, y)] = c
}

func (img *Image) offset(x, y int) int {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		panic("renderer: pixel coordinate out of range")
	}
	return y*img.Width + x
}

// Merge copies a finished tile into the image at the tile's offset
func (img *Image) Merge(tile *Tile) {
	for j := 0; j < tile.Height(); j++ {
		for i := 0; i < tile.Width(); i++ {
			img.SetColor(tile.StartX()+i, tile.StartY()+j, tile.At(i, j))
		}
	}
}

// ToRGBA clamps, gamma corrects and quantizes the image to 8 bits per channel.
// The result is flipped so the top of the view is the first row.
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, img.Height-1-y, toRGBA(img.ColorAt(x, y), gamma))
		}
	}
	return out
}

func toRGBA(c core.Vec3, gamma float64) color.RGBA {
	// Clamp first: negative radiance has no real gamma-corrected value
	c = c.Clamp(0.0, 1.0).GammaCorrect(gamma)
	return color.RGBA{
		R: uint8(255.99 * c.X),
		G: uint8(255.99 * c.Y),
		B: uint8(255.99 * c.Z),
		A: 255,
	}
}

// LuminanceSummary returns the mean and standard deviation of per-pixel luminance
func (img *Image) LuminanceSummary() (mean, stdDev float64) {
	luminance := make([]float64, len(img.pixels))
	for i, p := range img.pixels {
		luminance[i] = p.Luminance()
	}
	switch len(luminance) {
	case 0:
		return 0, 0
	case 1:
		return luminance[0], 0
	}
	return stat.MeanStdDev(luminance, nil)
}
