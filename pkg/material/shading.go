package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// maxSharpness is the highlight exponent of a perfectly smooth surface
const maxSharpness = 1000.0

// Shade combines emission, ambient, direct light, reflection and transmission at a hit.
// The result is unclamped HDR radiance.
func (m *Material) Shade(hit *core.HitRecord, viewDir core.Vec3, ctx core.ShadingContext) core.Color {
	// One perturbed normal is shared by every lighting term of this call
	roughNormal := m.roughNormal(hit.Normal, viewDir, ctx.Sampler)
	opacity := m.Opacity()
	tint := core.Lerp(core.White, m.BaseColor, m.Metallicity)

	ambient := ctx.Tracer.GetEnvironment().Ambient(roughNormal).
		Multiply(m.BaseColor).
		Scale((1 - m.Metallicity) * opacity)

	transmitted := core.Black
	if opacity < 1 {
		transmitted = m.transmit(hit, roughNormal, viewDir, ctx).
			Multiply(m.BaseColor).
			Scale(1 - opacity)
	}

	diffuse, specular := m.directLight(hit, roughNormal, viewDir, tint, ctx)

	reflected := core.Black
	if m.Specularity > 0 {
		ray := core.NewRay(hit.Point, core.Reflect(viewDir, roughNormal)).NudgeForward()
		reflected = ctx.TraceSecondary(ray).Multiply(tint).Scale(m.Specularity)
	}

	emission := m.EmissionColor.Scale(m.EmissionColor.A)

	return emission.
		Add(ambient.Add(diffuse).Scale(1 - m.Specularity)).
		Add(specular.Scale(m.Specularity)).
		Add(transmitted).
		Add(reflected)
}

// roughNormal tilts the normal at random by up to Roughness. A tilt that would turn the
// normal away from the viewer falls back to the true normal.
func (m *Material) roughNormal(normal, viewDir core.Vec3, sampler core.Sampler) core.Vec3 {
	if m.Roughness <= 0 {
		return normal
	}
	perturbed := core.PerturbNormal(normal, m.Roughness, sampler.Get2D())
	if perturbed.Dot(viewDir) >= 0 {
		return normal
	}
	return perturbed
}

// transmit traces the ray that continues through a translucent surface. On total internal
// reflection the reflected ray is traced in its place.
func (m *Material) transmit(hit *core.HitRecord, roughNormal, viewDir core.Vec3, ctx core.ShadingContext) core.Color {
	eta := m.RefractiveIndex
	if hit.FrontFace {
		eta = 1 / m.RefractiveIndex
	}

	direction, ok := core.Refract(viewDir, roughNormal, eta)
	if !ok {
		direction = core.Reflect(viewDir, roughNormal)
	}

	return ctx.TraceSecondary(core.NewRay(hit.Point, direction).NudgeForward())
}

// directLight accumulates the Lambertian and specular glint contributions of every light
func (m *Material) directLight(hit *core.HitRecord, roughNormal, viewDir core.Vec3, tint core.Color, ctx core.ShadingContext) (diffuse, specular core.Color) {
	diffuse, specular = core.Black, core.Black
	shapes := ctx.Tracer.GetShapes()
	opacity := m.Opacity()

	for _, light := range ctx.Tracer.GetLights() {
		incident, toLight := light.Sample(hit.Point, shapes, hit.Shape)
		if incident.IsBlack() {
			continue
		}

		lightDir := toLight.Normalize()
		if lightDir.Dot(hit.Normal) <= 0 {
			continue // light is behind the surface
		}

		diffusion := math.Max(0, lightDir.Dot(roughNormal))
		diffuse = diffuse.Add(incident.Multiply(m.BaseColor).Scale(diffusion * (1 - m.Metallicity) * opacity))

		if m.Specularity > 0 {
			cosAngle := core.Reflect(lightDir, roughNormal).Dot(viewDir)
			specular = specular.Add(incident.Multiply(tint).Scale(Glint(cosAngle, m.Roughness)))
		}
	}

	return diffuse, specular
}

// Glint is the specular highlight falloff for the cosine between the mirrored light
// direction and the view direction. Smooth surfaces give a tight highlight, rough ones a
// broad one; the peak at cosAngle = 1 is 1 for every roughness.
func Glint(cosAngle, roughness float64) float64 {
	cosAngle = max(0, min(1, cosAngle))
	sharpness := 1 + (1-roughness)*(maxSharpness-1)
	return math.Pow(cosAngle, sharpness)
}
