package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Unit surface normal, always facing against the incoming ray
	T         float64 // Distance along the ray, never negative
	FrontFace bool    // False when the ray started inside the object
	Shape     Shape   // Object that was hit
}

// SetFaceNormal orients the outward normal against the ray.
// inside reports whether the ray origin lies within the object.
func (h *HitRecord) SetFaceNormal(outwardNormal Vec3, inside bool) {
	h.FrontFace = !inside
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for scene objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection at a non-negative distance along the ray
	Hit(ray Ray) (*HitRecord, bool)
	Material() Material
}

// Material shades a surface point
type Material interface {
	// Opacity is 1 for opaque materials and lower for translucent ones
	Opacity() float64
	// Shade returns the unclamped radiance leaving the hit point toward the viewer.
	// viewDir is the direction of the arriving ray.
	Shade(hit *HitRecord, viewDir Vec3, ctx ShadingContext) Color
}

// Light interface for light sources that illuminate a point directly
type Light interface {
	// Sample returns the light arriving at point, attenuated by any shapes between the
	// point and the light except ignore, and the unnormalized vector from point to light.
	Sample(point Vec3, shapes []Shape, ignore Shape) (Color, Vec3)
}

// Camera generates primary rays
type Camera interface {
	// GetRay returns the world-space ray through pixel (i, j) at the given subpixel offset in [0,1)²
	GetRay(i, j int, offset Vec2) Ray
}

// Environment supplies the ambient sky/ground color seen along a direction
type Environment interface {
	Ambient(direction Vec3) Color
}

// Tracer traces rays recursively through a scene
type Tracer interface {
	TraceRay(ray Ray, depth int, sampler Sampler) Color
	GetShapes() []Shape
	GetLights() []Light
	GetEnvironment() Environment
}

// ShadingContext is passed to Material.Shade. Depth is the depth of the ray being shaded;
// secondary rays are traced at Depth+1.
type ShadingContext struct {
	Tracer  Tracer
	Depth   int
	Sampler Sampler
}

// TraceSecondary traces a ray spawned while shading, one level deeper than the shaded ray
func (c ShadingContext) TraceSecondary(ray Ray) Color {
	return c.Tracer.TraceRay(ray, c.Depth+1, c.Sampler)
}
