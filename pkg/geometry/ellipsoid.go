package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Ellipsoid is an axis-aligned ellipsoid with per-axis radii
type Ellipsoid struct {
	Center   core.Vec3
	Radii    core.Vec3
	material core.Material
}

// NewEllipsoid creates a new axis-aligned ellipsoid
func NewEllipsoid(center, radii core.Vec3, material core.Material) *Ellipsoid {
	return &Ellipsoid{
		Center:   center,
		Radii:    radii,
		material: material,
	}
}

// Material returns the ellipsoid's material
func (e *Ellipsoid) Material() core.Material {
	return e.material
}

// Validate checks the ellipsoid's geometry
func (e *Ellipsoid) Validate() error {
	if !(e.Radii.X > 0 && e.Radii.Y > 0 && e.Radii.Z > 0) || !e.Radii.IsFinite() {
		return fmt.Errorf("ellipsoid radii must be positive and finite, got %v", e.Radii)
	}
	if !e.Center.IsFinite() {
		return fmt.Errorf("ellipsoid center must be finite, got %v", e.Center)
	}
	if e.material == nil {
		return fmt.Errorf("ellipsoid at %v has no material", e.Center)
	}
	return nil
}

// Hit tests if a ray intersects with the ellipsoid.
// The ray is scaled into the space where the ellipsoid is a unit sphere; the ray parameter t
// is shared by both spaces, so roots found there are world distances for a unit direction.
func (e *Ellipsoid) Hit(ray core.Ray) (*core.HitRecord, bool) {
	origin := ray.Origin.Subtract(e.Center).DivideVec(e.Radii)
	dir := ray.Direction.DivideVec(e.Radii)

	// at² + 2bt + c = 0
	a := dir.Dot(dir)
	b := origin.Dot(dir)
	c := origin.Dot(origin) - 1

	h := b*b - a*c
	if h < 0 {
		return nil, false
	}
	h = math.Sqrt(h)

	root := (-b - h) / a
	inside := root < 0
	if inside {
		root = (-b + h) / a
		if root < 0 {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:     root,
		Point: ray.At(root),
		Shape: e,
	}

	hitRecord.SetFaceNormal(e.NormalAt(hitRecord.Point), inside)

	return hitRecord, true
}

// NormalAt returns the outward unit normal at a point on the surface.
// The gradient of the implicit surface is (p-c)/radii², which reduces to the
// radial direction when all radii are equal.
func (e *Ellipsoid) NormalAt(point core.Vec3) core.Vec3 {
	radiiSq := e.Radii.MultiplyVec(e.Radii)
	return point.Subtract(e.Center).DivideVec(radiiSq).Normalize()
}
