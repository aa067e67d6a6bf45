package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"golang.org/x/image/bmp"
)

// testPatternScene renders the red/green gradient instead of tracing a scene
const testPatternScene = "test"

// renderGamma is the display gamma applied to traced images
const renderGamma = 2.2

// Config holds the parsed command line options
type Config struct {
	SceneType string
	Width     int
	Height    int
	Quality   string
	Output    string
	Workers   int
	Seed      uint64
}

func main() {
	defaults := geometry.DefaultCameraConfig()
	sampling := renderer.DefaultSamplingConfig()

	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene to render: "+strings.Join(sceneChoices(), ", "))
	width := flag.Int("width", defaults.Width, "Image width in pixels")
	height := flag.Int("height", defaults.Height, "Image height in pixels")
	quality := flag.String("quality", sampling.Quality.String(), "Supersampling quality: fast (1x1), good (4x4) or great (8x8)")
	output := flag.String("output", "image.bmp", "Output file (.bmp or .png)")
	workers := flag.Int("workers", sampling.NumWorkers, "Number of parallel workers (0 = CPU count)")
	seed := flag.Uint64("seed", sampling.Seed, "Seed for surface roughness sampling")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Recursive Raytracer...")

	config := Config{
		SceneType: *sceneType,
		Width:     *width,
		Height:    *height,
		Quality:   *quality,
		Output:    *output,
		Workers:   *workers,
		Seed:      *seed,
	}
	if err := run(context.Background(), config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Recursive Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Printf("  %-8s - %s\n", testPatternScene, "Red/green gradient test image (no tracing)")
}

func sceneChoices() []string {
	return append(scene.SceneNames(), testPatternScene)
}

// run renders the configured scene and writes it to config.Output
func run(ctx context.Context, config Config, logger core.Logger) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", config.Width, config.Height)
	}

	var img image.Image
	if strings.EqualFold(config.SceneType, testPatternScene) {
		logger.Printf("Writing %dx%d test pattern...\n", config.Width, config.Height)
		img = renderer.NewTestPattern(config.Width, config.Height).ToRGBA(1)
	} else {
		raster, err := renderScene(ctx, config, logger)
		if err != nil {
			return err
		}
		img = raster.ToRGBA(renderGamma)
	}

	if err := writeImage(config.Output, img); err != nil {
		return err
	}

	absPath, err := filepath.Abs(config.Output)
	if err != nil {
		absPath = config.Output
	}
	logger.Printf("Image written to %s\n", absPath)
	return nil
}

func renderScene(ctx context.Context, config Config, logger core.Logger) (*renderer.Raster, error) {
	quality, err := renderer.ParseQuality(config.Quality)
	if err != nil {
		return nil, err
	}

	selectedScene, err := createScene(config.SceneType, config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	selectedScene.SamplingConfig.Quality = quality
	selectedScene.SamplingConfig.NumWorkers = config.Workers
	selectedScene.SamplingConfig.Seed = config.Seed

	logger.Printf("Using %s scene (%d objects, %d lights)...\n",
		config.SceneType, len(selectedScene.Shapes), len(selectedScene.Lights))

	raytracer, err := selectedScene.NewRaytracer()
	if err != nil {
		return nil, err
	}
	raytracer.SetLogger(logger)

	raster, stats, err := raytracer.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed in %v with %d workers (average luminance %.3f)\n",
		stats.Duration, stats.NumWorkers, raster.AverageLuminance())

	return raster, nil
}

// createScene builds a built-in scene at the requested resolution
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	return scene.NewByName(sceneType, geometry.CameraConfig{Width: width, Height: height})
}

// writeImage encodes img as BMP or PNG depending on the file extension
func writeImage(filename string, img image.Image) error {
	var encode func(*os.File, image.Image) error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bmp":
		encode = func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }
	case ".png":
		encode = func(f *os.File, img image.Image) error { return png.Encode(f, img) }
	default:
		return fmt.Errorf("unsupported output file type %q (use .bmp or .png)", filename)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return file.Close()
}
