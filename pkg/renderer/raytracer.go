package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Quality    Quality // Subpixel grid size
	MaxDepth   int     // Deepest recursion level that is still shaded
	Seed       uint64  // Seed for the per-subsample random streams
	NumWorkers int     // Number of parallel workers (1 = calling goroutine, 0 = CPU count)
	TileSize   int     // Edge length of the square tiles handed to workers
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Quality:    QualityGood,
		MaxDepth:   8,
		Seed:       42,
		NumWorkers: 1,
		TileSize:   64,
	}
}

// Validate checks that the configuration can drive a render
func (c SamplingConfig) Validate() error {
	if c.Quality < QualityFast || c.Quality > QualityGreat {
		return fmt.Errorf("%w: %v", ErrUnknownQuality, c.Quality)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() core.Camera
	GetShapes() []core.Shape
	GetLights() []core.Light
	GetEnvironment() core.Environment
}

// Raytracer traces rays through a scene and renders it into a Raster.
// The scene is read-only during a render, so one Raytracer can serve many goroutines.
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		logger: NewDefaultLogger(),
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetLogger replaces the logger used for progress output
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// GetShapes returns the scene objects in insertion order
func (rt *Raytracer) GetShapes() []core.Shape {
	return rt.scene.GetShapes()
}

// GetLights returns the scene lights
func (rt *Raytracer) GetLights() []core.Light {
	return rt.scene.GetLights()
}

// GetEnvironment returns the scene's ambient environment
func (rt *Raytracer) GetEnvironment() core.Environment {
	return rt.scene.GetEnvironment()
}

// TraceRay returns the color seen along ray. Primary rays start at depth 0 and each bounce
// adds one; past MaxDepth the environment color is returned without tracing further.
// A nil sampler is replaced by stream 0 of the configured seed.
func (rt *Raytracer) TraceRay(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	if sampler == nil {
		sampler = core.NewSeededSampler(rt.config.Seed, 0)
	}
	env := rt.scene.GetEnvironment()
	if depth > rt.config.MaxDepth {
		return env.Ambient(ray.Direction)
	}

	hit, isHit := rt.hitWorld(ray)
	if !isHit {
		return env.Ambient(ray.Direction)
	}

	return hit.Shape.Material().Shade(hit, ray.Direction, core.ShadingContext{
		Tracer:  rt,
		Depth:   depth,
		Sampler: sampler,
	})
}

// hitWorld returns the nearest hit among all shapes. On equal distances the shape added
// to the scene first wins.
func (rt *Raytracer) hitWorld(ray core.Ray) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord

	for _, shape := range rt.scene.GetShapes() {
		hit, isHit := shape.Hit(ray)
		if !isHit || hit.T < 0 {
			continue
		}
		if closestHit == nil || hit.T < closestHit.T {
			if hit.Shape == nil {
				hit.Shape = shape
			}
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Render traces every pixel and returns the HDR raster. Output is identical for any
// worker count because each subsample draws from its own seeded random stream.
func (rt *Raytracer) Render(ctx context.Context) (*Raster, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("image size must be positive, got %dx%d", rt.width, rt.height)
	}

	start := time.Now()
	raster := NewRaster(rt.width, rt.height)
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d at %s quality (%d samples per pixel, %d tiles, %d workers)...\n",
		rt.width, rt.height, rt.config.Quality, rt.config.Quality.SamplesPerPixel(), len(tiles), numWorkers)

	var stats RenderStats
	var err error
	if numWorkers == 1 {
		stats, err = rt.renderSequential(ctx, tiles, raster)
	} else {
		stats, err = rt.renderParallel(ctx, tiles, raster, numWorkers)
	}
	if err != nil {
		return nil, stats, err
	}

	stats.SamplesPerPixel = rt.config.Quality.SamplesPerPixel()
	stats.NumWorkers = numWorkers
	stats.Duration = time.Since(start)

	if stats.NonFinitePixels > 0 {
		rt.logger.Printf("Warning: %d pixels have non-finite color\n", stats.NonFinitePixels)
	}
	rt.logger.Printf("Rendered %d pixels (%d samples) in %v\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration.Round(time.Millisecond))

	return raster, stats, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, tiles []*Tile, raster *Raster) (RenderStats, error) {
	var stats RenderStats
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Add(rt.RenderBounds(tile.Bounds, raster))
	}
	return stats, nil
}

func (rt *Raytracer) renderParallel(ctx context.Context, tiles []*Tile, raster *Raster, numWorkers int) (RenderStats, error) {
	pool := NewWorkerPool(rt, len(tiles), numWorkers)
	pool.Start()

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Ctx: ctx, Tile: tile, TaskID: tile.ID, Raster: raster})
	}
	pool.Stop()

	// Drain every result so skipped tiles are accounted for before reporting an error
	var stats RenderStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return stats, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}

	if firstErr != nil {
		return stats, firstErr
	}
	return stats, ctx.Err()
}

// RenderBounds renders the pixels inside bounds into raster. Pixels outside bounds are
// not touched, so disjoint bounds may be rendered concurrently.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, raster *Raster) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{TilesRendered: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := rt.samplePixel(camera, i, j)
			color := ps.GetColor()
			raster.Set(i, j, color)

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
			if !color.IsFinite() {
				stats.NonFinitePixels++
			}
		}
	}

	return stats
}

// samplePixel averages a regular grid of subsamples centered in their cells
func (rt *Raytracer) samplePixel(camera core.Camera, i, j int) PixelStats {
	var ps PixelStats
	n := rt.config.Quality.GridSize()
	pixelIndex := uint64(j*rt.width + i)

	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			stream := pixelIndex*uint64(n*n) + uint64(sy*n+sx)
			sampler := core.NewSeededSampler(rt.config.Seed, stream)
			offset := core.NewVec2((float64(sx)+0.5)/float64(n), (float64(sy)+0.5)/float64(n))

			ray := camera.GetRay(i, j, offset)
			ps.AddSample(rt.TraceRay(ray, 0, sampler))
		}
	}

	return ps
}
