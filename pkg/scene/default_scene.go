package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: a white sphere at the origin ringed by small
// colored spheres, standing on a huge ground sphere and lit by one bright point light
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := New(cameraConfig)
	if err != nil {
		return nil, err
	}

	if _, err := s.AddPointLight(core.NewVec3(15, 15, 15), core.White, 500); err != nil {
		return nil, err
	}

	yellowEmitter := material.New(core.Yellow)
	yellowEmitter.EmissionColor = core.Red.Scale(0.1)

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    *material.Material
	}{
		{core.NewVec3(0, -5002, 0), 5000, material.New(core.Yellow.Scale(0.1))}, // ground
		{core.NewVec3(0, 0, 0), 1, material.New(core.White)},
		{core.NewVec3(0, 1, 1), 0.333, material.New(core.Magenta.Scale(0.5))},
		{core.NewVec3(1.6667, 0, 0), 0.5, material.New(core.Red)},
		{core.NewVec3(-1.6667, 0, 0), 0.5, yellowEmitter},
		{core.NewVec3(1, 1, 1), 0.15, material.New(core.Blue)},
		{core.NewVec3(1, 0.75, 1), 0.15, material.New(core.Green)},
	}
	for _, sp := range spheres {
		if _, err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
