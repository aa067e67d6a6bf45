package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// newGroundedScene creates a scene with a large diffuse ground sphere whose top sits at y=-1
func newGroundedScene(defaults geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) (*Scene, error) {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := New(cameraConfig)
	if err != nil {
		return nil, err
	}
	if _, err := s.AddSphere(core.NewVec3(0, -1001, 0), 1000, material.NewDiffuse(core.NewColor(0.4, 0.4, 0.35))); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMirrorsScene creates two facing mirror spheres with a small red sphere between them,
// so reflections recurse until the depth limit
func NewMirrorsScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaults := geometry.DefaultCameraConfig()
	defaults.Center = core.NewVec3(0, 1.5, 6)
	defaults.LookAt = core.NewVec3(0, -0.2, 0)

	s, err := newGroundedScene(defaults, cameraOverrides)
	if err != nil {
		return nil, err
	}

	if _, err := s.AddPointLight(core.NewVec3(4, 8, 6), core.White, 300); err != nil {
		return nil, err
	}

	silver := material.NewMirror(core.NewColor(0.9, 0.9, 0.9), 1)
	gold := material.NewMirror(core.NewColor(1.0, 0.8, 0.4), 1)
	gold.Specularity = 0.9

	if _, err := s.AddSphere(core.NewVec3(-1.6, 0, 0), 1, silver); err != nil {
		return nil, err
	}
	if _, err := s.AddSphere(core.NewVec3(1.6, 0, 0), 1, gold); err != nil {
		return nil, err
	}
	if _, err := s.AddSphere(core.NewVec3(0, -0.6, 0.5), 0.4, material.New(core.NewColor(0.8, 0.1, 0.1))); err != nil {
		return nil, err
	}

	return s, nil
}

// NewGlassScene creates translucent spheres and ellipsoids in front of opaque colored ones
func NewGlassScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaults := geometry.DefaultCameraConfig()
	defaults.Center = core.NewVec3(0, 1, 7)
	defaults.LookAt = core.NewVec3(0, -0.3, 0)

	s, err := newGroundedScene(defaults, cameraOverrides)
	if err != nil {
		return nil, err
	}

	if _, err := s.AddPointLight(core.NewVec3(-5, 10, 8), core.White, 400); err != nil {
		return nil, err
	}
	if _, err := s.AddPointLight(core.NewVec3(6, 4, -4), core.NewColor(0.6, 0.7, 1.0), 80); err != nil {
		return nil, err
	}

	// Backdrop
	for i, c := range []core.Color{core.Red, core.Green, core.Blue, core.Yellow} {
		x := -2.25 + 1.5*float64(i)
		if _, err := s.AddSphere(core.NewVec3(x, -0.5, -2.5), 0.5, material.New(c.Scale(0.8))); err != nil {
			return nil, err
		}
	}

	clearGlass := material.NewGlass(core.White, 0.15, 1.5)
	if _, err := s.AddSphere(core.NewVec3(-1.2, -0.2, 0.5), 0.8, clearGlass); err != nil {
		return nil, err
	}

	tinted := material.NewGlass(core.NewColor(0.6, 0.9, 1.0), 0.3, 1.33)
	if _, err := s.AddEllipsoid(core.NewVec3(1.2, -0.1, 0.5), core.NewVec3(0.5, 0.9, 0.5), tinted); err != nil {
		return nil, err
	}

	frosted := material.NewGlass(core.White, 0.4, 1.5)
	frosted.Roughness = 0.15
	if _, err := s.AddEllipsoid(core.NewVec3(0, -0.75, 1.6), core.NewVec3(0.6, 0.25, 0.6), frosted); err != nil {
		return nil, err
	}

	return s, nil
}

// NewMetalsScene creates a row of metallic ellipsoids with increasing roughness
func NewMetalsScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaults := geometry.DefaultCameraConfig()
	defaults.Center = core.NewVec3(0, 2, 7)
	defaults.LookAt = core.NewVec3(0, -0.4, 0)

	s, err := newGroundedScene(defaults, cameraOverrides)
	if err != nil {
		return nil, err
	}
	s.Environment = material.Environment{
		Sky:    core.NewColor(0.9, 0.85, 0.8),
		Ground: core.NewColor(0.1, 0.1, 0.12),
	}

	if _, err := s.AddPointLight(core.NewVec3(0, 6, 6), core.White, 250); err != nil {
		return nil, err
	}

	copper := core.NewColor(0.95, 0.64, 0.54)
	for i := 0; i < 5; i++ {
		m := material.New(copper)
		m.Metallicity = 1
		m.Specularity = 0.85
		m.Roughness = 0.1 * float64(i)

		x := -2.4 + 1.2*float64(i)
		if _, err := s.AddEllipsoid(core.NewVec3(x, -0.45, 0), core.NewVec3(0.5, 0.55, 0.4), m); err != nil {
			return nil, err
		}
	}

	// A dim emissive sphere behind the row shows up in every reflection
	glow := material.NewDiffuse(core.Black)
	glow.EmissionColor = core.NewColorAlpha(1.0, 0.5, 0.2, 2)
	if _, err := s.AddSphere(core.NewVec3(0, 0.5, -3), 0.6, glow); err != nil {
		return nil, err
	}

	return s, nil
}
