package core

import "math"

// Color is a linear RGBA color. Channels are unbounded while shading and only
// clamped to [0,1] when an image is encoded.
type Color struct {
	R, G, B, A float64
}

var (
	White   = Color{R: 1, G: 1, B: 1, A: 1}
	Black   = Color{R: 0, G: 0, B: 0, A: 1}
	Gray    = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	Red     = Color{R: 1, G: 0, B: 0, A: 1}
	Green   = Color{R: 0, G: 1, B: 0, A: 1}
	Blue    = Color{R: 0, G: 0, B: 1, A: 1}
	Yellow  = Color{R: 1, G: 1, B: 0, A: 1}
	Magenta = Color{R: 1, G: 0, B: 1, A: 1}
)

// NewColor creates an opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorAlpha creates a color with an explicit alpha
func NewColorAlpha(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the color with its alpha replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Add is an additive blend. The result is always opaque.
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: 1}
}

// Multiply is a multiplicative blend. The result is always opaque.
func (c Color) Multiply(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B, A: 1}
}

// Scale multiplies the color channels by s. The result is always opaque.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: 1}
}

// Lerp interpolates x*(1-t) + y*t
func Lerp(x, y Color, t float64) Color {
	return x.Scale(1 - t).Add(y.Scale(t))
}

// Clamp01 clamps all four channels to [0, 1]
func (c Color) Clamp01() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// GammaCorrect applies pow(channel, 1/gamma) to the color channels.
// Negative channels are treated as zero.
func (c Color) GammaCorrect(gamma float64) Color {
	invGamma := 1.0 / gamma
	return Color{
		R: math.Pow(math.Max(0, c.R), invGamma),
		G: math.Pow(math.Max(0, c.G), invGamma),
		B: math.Pow(math.Max(0, c.B), invGamma),
		A: c.A,
	}
}

// Value returns the largest color channel
func (c Color) Value() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// IsBlack reports whether every color channel is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether every channel is neither NaN nor infinite
func (c Color) IsFinite() bool {
	for _, v := range [...]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Luminance returns the perceptual luminance of the color
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
