package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of primary rays traced
	SamplesPerPixel int           // Subsamples taken per pixel
	TilesRendered   int           // Number of tiles completed
	NonFinitePixels int           // Pixels whose color contains NaN or Inf
	NumWorkers      int           // Number of goroutines that rendered tiles
	Duration        time.Duration // Wall time of the render
}

// Add merges the per-tile counters of other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TilesRendered += other.TilesRendered
	s.NonFinitePixels += other.NonFinitePixels
}

// PixelStats accumulates the subsamples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of subsample colors
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the average of the samples taken so far
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Black
	}
	return ps.ColorAccum.Scale(1.0 / float64(ps.SampleCount))
}
