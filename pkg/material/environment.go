package material

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Environment is the ambient sky/ground gradient that stands in for indirect light.
// It is also what rays that escape the scene see.
type Environment struct {
	Sky    core.Color
	Ground core.Color
}

// DefaultEnvironment returns a pale blue sky over a dark brown ground
func DefaultEnvironment() Environment {
	return Environment{
		Sky:    core.NewColor(0.6, 0.75, 1.0),
		Ground: core.NewColor(0.15, 0.12, 0.1),
	}
}

// Ambient blends from ground to sky by ((up+1)/2)² of the unit direction
func (e Environment) Ambient(direction core.Vec3) core.Color {
	t := (direction.Y + 1) / 2
	return core.Lerp(e.Ground, e.Sky, t*t)
}
