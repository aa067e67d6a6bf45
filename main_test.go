package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"golang.org/x/image/bmp"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"mirrors scene", "mirrors", false},
		{"glass scene", "glass", false},
		{"metals scene", "metals", false},
		{"mixed case", "Glass", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 32, 18)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for scene type '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width != 32 || s.CameraConfig.Height != 18 {
				t.Errorf("Expected 32x18 camera, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
			if len(s.Shapes) == 0 {
				t.Error("Scene should have at least one shape")
			}
		})
	}
}

func decodeFile(t *testing.T, filename string, decode func(*os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := decode(f)
	if err != nil {
		t.Fatalf("Decode %s: %v", filename, err)
	}
	return img
}

func TestWriteImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	dir := t.TempDir()
	decoders := map[string]func(*os.File) (image.Image, error){
		"out.bmp":        func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"nested/out.png": func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"UPPER.BMP":      func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name)
			if err := writeImage(filename, img); err != nil {
				t.Fatalf("writeImage: %v", err)
			}

			got := decodeFile(t, filename, decode)
			if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
				t.Errorf("Expected 3x2 image, got %v", got.Bounds())
			}
			r, g, b, _ := got.At(2, 1).RGBA()
			if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
				t.Errorf("Expected (200,100,50), got (%d,%d,%d)", r>>8, g>>8, b>>8)
			}
		})
	}

	if err := writeImage(filepath.Join(dir, "out.jpg"), img); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}

func TestRun_TestPattern(t *testing.T) {
	output := filepath.Join(t.TempDir(), "pattern.bmp")
	config := Config{SceneType: "test", Width: 5, Height: 3, Output: output}

	if err := run(context.Background(), config, renderer.NewDiscardLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}

	img := decodeFile(t, output, func(f *os.File) (image.Image, error) { return bmp.Decode(f) })
	r, g, _, _ := img.At(4, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 {
		t.Errorf("Expected the bottom-right pixel to be yellow, got r=%d g=%d", r>>8, g>>8)
	}
	r, g, _, _ = img.At(0, 0).RGBA()
	if r != 0 || g != 0 {
		t.Errorf("Expected the top-left pixel to be black, got r=%d g=%d", r>>8, g>>8)
	}
}

func TestRun_RendersScene(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.png")
	config := Config{
		SceneType: "default",
		Width:     16,
		Height:    9,
		Quality:   "fast",
		Output:    output,
		Workers:   2,
		Seed:      7,
	}

	if err := run(context.Background(), config, renderer.NewDiscardLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}

	img := decodeFile(t, output, func(f *os.File) (image.Image, error) { return png.Decode(f) })
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %v", img.Bounds())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		config Config
	}{
		{"bad quality", Config{SceneType: "default", Width: 4, Height: 4, Quality: "ultra", Output: filepath.Join(dir, "a.png")}},
		{"unknown scene", Config{SceneType: "cornell", Width: 4, Height: 4, Quality: "fast", Output: filepath.Join(dir, "b.png")}},
		{"bad size", Config{SceneType: "default", Width: 0, Height: 4, Quality: "fast", Output: filepath.Join(dir, "c.png")}},
		{"bad extension", Config{SceneType: "test", Width: 4, Height: 4, Output: filepath.Join(dir, "d.gif")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.config, renderer.NewDiscardLogger()); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
