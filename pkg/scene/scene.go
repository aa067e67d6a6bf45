package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// ErrInvalidScene is wrapped by every scene construction error
var ErrInvalidScene = errors.New("invalid scene")

// validator is implemented by every shape and light the scene can hold
type validator interface {
	Validate() error
}

// Scene contains all the elements needed for rendering.
// Shapes are intersected in insertion order; the first one added wins distance ties.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []core.Shape // Objects in the scene
	Lights         []core.Light // Lights in the scene
	Environment    material.Environment
	SamplingConfig renderer.SamplingConfig
}

// New creates an empty scene with the default environment and sampling configuration
func New(cameraConfig geometry.CameraConfig) (*Scene, error) {
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		Shapes:         make([]core.Shape, 0),
		Lights:         make([]core.Light, 0),
		Environment:    material.DefaultEnvironment(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}, nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetShapes returns the scene objects in insertion order
func (s *Scene) GetShapes() []core.Shape {
	return s.Shapes
}

// GetLights returns the scene lights
func (s *Scene) GetLights() []core.Light {
	return s.Lights
}

// GetEnvironment returns the ambient sky/ground gradient
func (s *Scene) GetEnvironment() core.Environment {
	return s.Environment
}

// AddSphere validates and appends a sphere
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) (*geometry.Sphere, error) {
	if err := validateMaterial(mat); err != nil {
		return nil, fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, len(s.Shapes), err)
	}
	sphere := geometry.NewSphere(center, radius, mat)
	if err := sphere.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, len(s.Shapes), err)
	}
	s.Shapes = append(s.Shapes, sphere)
	return sphere, nil
}

// AddEllipsoid validates and appends an axis-aligned ellipsoid
func (s *Scene) AddEllipsoid(center, radii core.Vec3, mat *material.Material) (*geometry.Ellipsoid, error) {
	if err := validateMaterial(mat); err != nil {
		return nil, fmt.Errorf("%w: ellipsoid %d: %v", ErrInvalidScene, len(s.Shapes), err)
	}
	ellipsoid := geometry.NewEllipsoid(center, radii, mat)
	if err := ellipsoid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: ellipsoid %d: %v", ErrInvalidScene, len(s.Shapes), err)
	}
	s.Shapes = append(s.Shapes, ellipsoid)
	return ellipsoid, nil
}

// AddPointLight validates and appends a point light
func (s *Scene) AddPointLight(position core.Vec3, color core.Color, intensity float64) (*lights.PointLight, error) {
	light := lights.NewPointLight(position, color, intensity)
	if err := light.Validate(); err != nil {
		return nil, fmt.Errorf("%w: light %d: %v", ErrInvalidScene, len(s.Lights), err)
	}
	s.Lights = append(s.Lights, light)
	return light, nil
}

// Validate checks a scene whose fields were filled in directly rather than through the Add methods
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidScene)
	}
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("%w: shape %d is nil", ErrInvalidScene, i)
		}
		if v, ok := shape.(validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: shape %d: %v", ErrInvalidScene, i, err)
			}
		}
		if v, ok := shape.Material().(validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: shape %d material: %v", ErrInvalidScene, i, err)
			}
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("%w: light %d is nil", ErrInvalidScene, i)
		}
		if v, ok := light.(validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: light %d: %v", ErrInvalidScene, i, err)
			}
		}
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return nil
}

// NewRaytracer validates the scene and creates a raytracer for it at the camera's resolution
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rt := renderer.NewRaytracer(s, s.CameraConfig.Width, s.CameraConfig.Height)
	rt.SetSamplingConfig(s.SamplingConfig)
	return rt, nil
}

func validateMaterial(mat *material.Material) error {
	if mat == nil {
		return fmt.Errorf("material is nil")
	}
	return mat.Validate()
}
