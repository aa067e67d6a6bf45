package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}

// Validate checks the sphere's geometry
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere radius must be positive and finite, got %g", s.Radius)
	}
	if !s.Center.IsFinite() {
		return fmt.Errorf("sphere center must be finite, got %v", s.Center)
	}
	if s.material == nil {
		return fmt.Errorf("sphere at %v has no material", s.Center)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere.
// The ray direction must be unit length.
func (s *Sphere) Hit(ray core.Ray) (*core.HitRecord, bool) {
	// Vector from ray origin to sphere center
	toCenter := s.Center.Subtract(ray.Origin)

	// Reduced quadratic for a unit direction: t² - 2bt + c = 0
	b := toCenter.Dot(ray.Direction)
	c := toCenter.Dot(toCenter) - s.Radius*s.Radius

	h := b*b - c
	if h < 0 {
		return nil, false
	}
	h = math.Sqrt(h)

	// Try the closer intersection point first
	root := b - h
	inside := root < 0
	if inside {
		// Origin is inside the sphere, or the sphere is behind it
		root = b + h
		if root < 0 {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:     root,
		Point: ray.At(root),
		Shape: s,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Normalize()
	hitRecord.SetFaceNormal(outwardNormal, inside)

	return hitRecord, true
}
