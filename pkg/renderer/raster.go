package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// maxChannel maps the closed interval [0,1] onto all 256 byte values
const maxChannel = 255.999

// Raster is a width x height grid of unclamped linear colors, row-major with row 0 at the top
type Raster struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewRaster creates a black raster
func NewRaster(width, height int) *Raster {
	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = core.Black
	}
	return &Raster{Width: width, Height: height, Pixels: pixels}
}

// At returns the color of pixel (x, y)
func (r *Raster) At(x, y int) core.Color {
	return r.Pixels[y*r.Width+x]
}

// Set stores the color of pixel (x, y)
func (r *Raster) Set(x, y int, c core.Color) {
	r.Pixels[y*r.Width+x] = c
}

// AverageLuminance returns the mean perceptual luminance of the unclamped pixels
func (r *Raster) AverageLuminance() float64 {
	if len(r.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range r.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(r.Pixels))
}

// ToRGBA encodes the raster as 8-bit sRGB-ish pixels. Each channel is gamma corrected and
// then clamped to [0,1]; alpha is always opaque.
func (r *Raster) ToRGBA(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y).GammaCorrect(gamma).Clamp01()
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.R * maxChannel),
				G: uint8(c.G * maxChannel),
				B: uint8(c.B * maxChannel),
				A: 255,
			})
		}
	}
	return img
}

// NewTestPattern creates a red/green gradient: red grows left to right and green top to bottom
func NewTestPattern(width, height int) *Raster {
	r := NewRaster(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.Set(x, y, core.NewColor(gradient(x, width), gradient(y, height), 0))
		}
	}
	return r
}

func gradient(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
