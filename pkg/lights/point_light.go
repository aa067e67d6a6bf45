package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

const (
	// shadowNudge moves shadow rays off the surface they start on
	shadowNudge = 0.001
	// minTransmission is the fraction of light below which a point counts as fully shadowed
	minTransmission = 0.001
)

// PointLight is an omnidirectional light at a single position
type PointLight struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewPointLight creates a point light
func NewPointLight(position core.Vec3, color core.Color, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// NewWhitePointLight creates a white point light with the default intensity of 100
func NewWhitePointLight(position core.Vec3) *PointLight {
	return NewPointLight(position, core.White, 100)
}

// Validate checks the light parameters
func (pl *PointLight) Validate() error {
	if !pl.Position.IsFinite() {
		return fmt.Errorf("point light position must be finite, got %v", pl.Position)
	}
	if !(pl.Intensity > 0) || math.IsInf(pl.Intensity, 0) {
		return fmt.Errorf("point light intensity must be positive and finite, got %g", pl.Intensity)
	}
	if !pl.Color.IsFinite() || pl.Color.R < 0 || pl.Color.G < 0 || pl.Color.B < 0 {
		return fmt.Errorf("point light color must be finite and non-negative, got %v", pl.Color)
	}
	return nil
}

// Sample returns the light reaching point and the unnormalized vector from point to the light.
// Each shape between the point and the light, other than ignore, lets through
// 1 - opacity of the light.
func (pl *PointLight) Sample(point core.Vec3, shapes []core.Shape, ignore core.Shape) (core.Color, core.Vec3) {
	toLight := pl.Position.Subtract(point)
	distanceSq := toLight.LengthSquared()

	transmission := pl.Transmission(point, toLight, shapes, ignore)
	if transmission <= 0 {
		return core.Black, toLight
	}

	// The +1 keeps the falloff finite at the light and softens blowout close to it
	lux := pl.Intensity / (distanceSq + 1)

	return pl.Color.Scale(lux * transmission), toLight
}

// Transmission returns the fraction of light that passes the occluders between point and
// point+toLight, or 0 once it drops below minTransmission.
func (pl *PointLight) Transmission(point, toLight core.Vec3, shapes []core.Shape, ignore core.Shape) float64 {
	distance := toLight.Length()
	if distance == 0 {
		return 1
	}

	shadowRay := core.NewRay(point, toLight.Multiply(1/distance)).MoveOrigin(shadowNudge)
	maxT := distance - shadowNudge

	transmission := 1.0
	for _, shape := range shapes {
		if shape == ignore {
			continue
		}
		hit, isHit := shape.Hit(shadowRay)
		if !isHit || hit.T > maxT {
			continue
		}
		transmission *= 1 - shape.Material().Opacity()
		if transmission < minTransmission {
			return 0
		}
	}
	return transmission
}
