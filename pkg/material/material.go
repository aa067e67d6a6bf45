package material

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Material describes how a surface responds to light.
// Values are read-only while a render is in progress.
type Material struct {
	BaseColor       core.Color // Surface color; alpha is opacity (1 = opaque)
	EmissionColor   core.Color // Emitted color; alpha is emission strength
	RefractiveIndex float64    // Index of refraction (1 = vacuum/air)
	Metallicity     float64    // 0 = dielectric, 1 = metallic
	Specularity     float64    // Strength of mirror reflection and highlights
	Roughness       float64    // Microfacet roughness
}

// New creates a material with the given base color and the default response:
// no emission, refractive index 1, non-metallic, smooth, specularity 0.8
func New(baseColor core.Color) *Material {
	return &Material{
		BaseColor:       baseColor,
		EmissionColor:   core.Black,
		RefractiveIndex: 1,
		Metallicity:     0,
		Specularity:     0.8,
		Roughness:       0,
	}
}

// Default creates a gray material with the default response
func Default() *Material {
	return New(core.Gray)
}

// NewDiffuse creates a material with no specular response
func NewDiffuse(baseColor core.Color) *Material {
	m := New(baseColor)
	m.Specularity = 0
	return m
}

// NewMirror creates a fully specular material
func NewMirror(tint core.Color, metallicity float64) *Material {
	m := New(tint)
	m.Specularity = 1
	m.Metallicity = metallicity
	return m
}

// NewGlass creates a translucent material
func NewGlass(tint core.Color, opacity, refractiveIndex float64) *Material {
	m := New(tint.WithAlpha(opacity))
	m.RefractiveIndex = refractiveIndex
	m.Specularity = 0.1
	return m
}

// Opacity returns the base color alpha
func (m *Material) Opacity() float64 {
	return m.BaseColor.A
}

// Validate checks that the material parameters are in range
func (m *Material) Validate() error {
	if m == nil {
		return fmt.Errorf("material is nil")
	}
	if !m.BaseColor.IsFinite() || m.BaseColor.R < 0 || m.BaseColor.G < 0 || m.BaseColor.B < 0 {
		return fmt.Errorf("base color must be finite and non-negative, got %v", m.BaseColor)
	}
	if !m.EmissionColor.IsFinite() || m.EmissionColor.R < 0 || m.EmissionColor.G < 0 || m.EmissionColor.B < 0 || m.EmissionColor.A < 0 {
		return fmt.Errorf("emission color must be finite and non-negative, got %v", m.EmissionColor)
	}
	if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
		return fmt.Errorf("refractive index must be positive and finite, got %g", m.RefractiveIndex)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"opacity", m.BaseColor.A},
		{"metallicity", m.Metallicity},
		{"specularity", m.Specularity},
		{"roughness", m.Roughness},
	} {
		if !(p.value >= 0 && p.value <= 1) {
			return fmt.Errorf("%s must be in [0, 1], got %g", p.name, p.value)
		}
	}
	return nil
}
