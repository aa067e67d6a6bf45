package material

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// tracedRay records a secondary ray issued while shading
type tracedRay struct {
	ray   core.Ray
	depth int
}

// MockTracer implements core.Tracer for testing
type MockTracer struct {
	traceColor  core.Color
	lights      []core.Light
	shapes      []core.Shape
	environment core.Environment
	traced      []tracedRay
}

func (m *MockTracer) TraceRay(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	m.traced = append(m.traced, tracedRay{ray: ray, depth: depth})
	return m.traceColor
}
func (m *MockTracer) GetShapes() []core.Shape          { return m.shapes }
func (m *MockTracer) GetLights() []core.Light          { return m.lights }
func (m *MockTracer) GetEnvironment() core.Environment { return m.environment }

// MockLight returns a fixed incident color and vector to the light
type MockLight struct {
	incident core.Color
	toLight  core.Vec3
}

func (m MockLight) Sample(point core.Vec3, shapes []core.Shape, ignore core.Shape) (core.Color, core.Vec3) {
	return m.incident, m.toLight
}

var blackEnvironment = Environment{Sky: core.Black, Ground: core.Black}

func upHit() *core.HitRecord {
	return &core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1,
		FrontFace: true,
	}
}

func shadeWith(m *Material, tracer *MockTracer, hit *core.HitRecord, viewDir core.Vec3, depth int) core.Color {
	ctx := core.ShadingContext{Tracer: tracer, Depth: depth, Sampler: core.NewSeededSampler(1, 1)}
	return m.Shade(hit, viewDir, ctx)
}

func assertColor(t *testing.T, got, expected core.Color) {
	t.Helper()
	const tolerance = 1e-9
	if math.Abs(got.R-expected.R) > tolerance || math.Abs(got.G-expected.G) > tolerance || math.Abs(got.B-expected.B) > tolerance {
		t.Errorf("Expected color %v, got %v", expected, got)
	}
}

func TestMaterial_Emission(t *testing.T) {
	m := NewDiffuse(core.Black)
	m.EmissionColor = core.NewColorAlpha(1, 0.5, 0, 2)

	got := shadeWith(m, &MockTracer{environment: DefaultEnvironment()}, upHit(), core.NewVec3(0, -1, 0), 0)
	assertColor(t, got, core.NewColor(2, 1, 0))
}

func TestMaterial_Ambient(t *testing.T) {
	env := Environment{Sky: core.NewColor(1, 1, 1), Ground: core.NewColor(0, 0, 0)}

	tests := []struct {
		name        string
		normal      core.Vec3
		metallicity float64
		opacity     float64
		expected    float64
	}{
		{"facing sky", core.NewVec3(0, 1, 0), 0, 1, 1},
		{"horizontal", core.NewVec3(1, 0, 0), 0, 1, 0.25},
		{"facing ground", core.NewVec3(0, -1, 0), 0, 1, 0},
		{"half metallic", core.NewVec3(0, 1, 0), 0.5, 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDiffuse(core.NewColorAlpha(0.5, 0.5, 0.5, tt.opacity))
			m.Metallicity = tt.metallicity
			hit := upHit()
			hit.Normal = tt.normal
			viewDir := tt.normal.Negate()

			got := shadeWith(m, &MockTracer{environment: env}, hit, viewDir, 0)
			v := 0.5 * tt.expected
			assertColor(t, got, core.NewColor(v, v, v))
		})
	}
}

func TestMaterial_DirectLight(t *testing.T) {
	tests := []struct {
		name     string
		toLight  core.Vec3
		incident core.Color
		expected core.Color
	}{
		{"light overhead", core.NewVec3(0, 2, 0), core.NewColor(1, 1, 1), core.NewColor(0.5, 0.25, 0.125)},
		{"light at 60 degrees", core.NewVec3(math.Sqrt(3), 1, 0), core.NewColor(1, 1, 1), core.NewColor(0.25, 0.125, 0.0625)},
		{"light below surface", core.NewVec3(0, -1, 0), core.NewColor(1, 1, 1), core.Black},
		{"shadowed light", core.NewVec3(0, 1, 0), core.Black, core.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDiffuse(core.NewColor(0.5, 0.25, 0.125))
			tracer := &MockTracer{
				environment: blackEnvironment,
				lights:      []core.Light{MockLight{incident: tt.incident, toLight: tt.toLight}},
			}
			got := shadeWith(m, tracer, upHit(), core.NewVec3(0, -1, 0), 0)
			assertColor(t, got, tt.expected)
			if len(tracer.traced) != 0 {
				t.Errorf("Diffuse opaque material should not trace secondary rays, traced %d", len(tracer.traced))
			}
		})
	}
}

func TestMaterial_Reflection(t *testing.T) {
	m := NewMirror(core.NewColor(1, 0.5, 0.5), 1)
	tracer := &MockTracer{traceColor: core.NewColor(0.4, 0.4, 0.4), environment: blackEnvironment}

	viewDir := core.NewVec3(1, -1, 0).Normalize()
	got := shadeWith(m, tracer, upHit(), viewDir, 3)

	if len(tracer.traced) != 1 {
		t.Fatalf("Expected one reflection ray, got %d", len(tracer.traced))
	}
	traced := tracer.traced[0]
	if traced.depth != 4 {
		t.Errorf("Expected reflection traced at depth 4, got %d", traced.depth)
	}
	expectedDir := core.NewVec3(1, 1, 0).Normalize()
	if traced.ray.Direction.Subtract(expectedDir).Length() > 1e-9 {
		t.Errorf("Expected reflected direction %v, got %v", expectedDir, traced.ray.Direction)
	}
	if traced.ray.Origin.Subtract(expectedDir.Multiply(core.NudgeDistance)).Length() > 1e-9 {
		t.Errorf("Expected reflection ray nudged off the surface, origin %v", traced.ray.Origin)
	}

	// Fully metallic: reflection tinted by the base color, no ambient or diffuse
	assertColor(t, got, core.NewColor(0.4, 0.2, 0.2))
}

func TestMaterial_Transmission(t *testing.T) {
	m := NewDiffuse(core.NewColorAlpha(1, 0.5, 1, 0.25))
	m.RefractiveIndex = 1
	tracer := &MockTracer{traceColor: core.NewColor(0.8, 0.8, 0.8), environment: blackEnvironment}

	viewDir := core.NewVec3(1, -1, 0).Normalize()
	got := shadeWith(m, tracer, upHit(), viewDir, 0)

	if len(tracer.traced) != 1 {
		t.Fatalf("Expected one transmission ray, got %d", len(tracer.traced))
	}
	if tracer.traced[0].ray.Direction.Subtract(viewDir).Length() > 1e-9 {
		t.Errorf("Index 1 should not bend the ray: got %v, expected %v", tracer.traced[0].ray.Direction, viewDir)
	}
	if tracer.traced[0].depth != 1 {
		t.Errorf("Expected transmission traced at depth 1, got %d", tracer.traced[0].depth)
	}

	// traced * baseColor * (1 - opacity)
	assertColor(t, got, core.NewColor(0.6, 0.3, 0.6))
}

func TestMaterial_Transmission_BendsTowardNormalWhenEntering(t *testing.T) {
	m := NewDiffuse(core.NewColorAlpha(1, 1, 1, 0))
	m.RefractiveIndex = 1.5
	tracer := &MockTracer{environment: blackEnvironment}

	viewDir := core.NewVec3(1, -1, 0).Normalize()
	shadeWith(m, tracer, upHit(), viewDir, 0)

	if len(tracer.traced) != 1 {
		t.Fatalf("Expected one transmission ray, got %d", len(tracer.traced))
	}
	dir := tracer.traced[0].ray.Direction
	if dir.Y >= 0 {
		t.Fatalf("Refracted ray should continue into the surface, got %v", dir)
	}
	sinIn := math.Abs(viewDir.X)
	sinOut := math.Abs(dir.X)
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Expected sin(out)=%f, got %f", sinIn/1.5, sinOut)
	}
}

func TestMaterial_TotalInternalReflection(t *testing.T) {
	m := NewDiffuse(core.NewColorAlpha(1, 1, 1, 0))
	m.RefractiveIndex = 1.5
	tracer := &MockTracer{traceColor: core.White, environment: blackEnvironment}

	// Leaving glass at a grazing angle
	hit := upHit()
	hit.FrontFace = false
	viewDir := core.NewVec3(1, -0.2, 0).Normalize()
	got := shadeWith(m, tracer, hit, viewDir, 0)

	if len(tracer.traced) != 1 {
		t.Fatalf("Expected one substituted reflection ray, got %d", len(tracer.traced))
	}
	expected := core.Reflect(viewDir, hit.Normal)
	if tracer.traced[0].ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflected direction %v, got %v", expected, tracer.traced[0].ray.Direction)
	}
	if !got.IsFinite() {
		t.Errorf("Expected finite color, got %v", got)
	}
	assertColor(t, got, core.White)
}

func TestMaterial_RoughnessIsDeterministic(t *testing.T) {
	m := New(core.NewColor(0.7, 0.6, 0.5))
	m.Roughness = 0.6
	light := MockLight{incident: core.NewColor(3, 3, 3), toLight: core.NewVec3(1, 2, 0)}
	viewDir := core.NewVec3(-1, -1, 0).Normalize()

	shade := func(stream uint64) core.Color {
		tracer := &MockTracer{traceColor: core.NewColor(0.2, 0.2, 0.2), environment: DefaultEnvironment(), lights: []core.Light{light}}
		ctx := core.ShadingContext{Tracer: tracer, Sampler: core.NewSeededSampler(9, stream)}
		return m.Shade(upHit(), viewDir, ctx)
	}

	if a, b := shade(5), shade(5); a != b {
		t.Errorf("Same sampler stream produced different colors: %v vs %v", a, b)
	}
}

func TestGlint(t *testing.T) {
	roughnesses := []float64{0, 0.25, 0.5, 0.75, 1}

	t.Run("peak does not grow with roughness", func(t *testing.T) {
		peak := Glint(1, 0)
		for _, r := range roughnesses {
			for _, c := range []float64{1, 0.999, 0.99, 0.9, 0.5, 0} {
				if g := Glint(c, r); g > peak+1e-12 {
					t.Errorf("Glint(%f, %f)=%f exceeds smooth peak %f", c, r, g, peak)
				}
			}
		}
	})

	t.Run("rougher is broader", func(t *testing.T) {
		for i := 1; i < len(roughnesses); i++ {
			smoother := Glint(0.98, roughnesses[i-1])
			rougher := Glint(0.98, roughnesses[i])
			if rougher <= smoother {
				t.Errorf("Off-peak glint should increase with roughness: r=%f -> %f, r=%f -> %f",
					roughnesses[i-1], smoother, roughnesses[i], rougher)
			}
		}
	})

	t.Run("clamped", func(t *testing.T) {
		if g := Glint(-0.5, 0); g != 0 {
			t.Errorf("Expected 0 for negative cosine, got %f", g)
		}
		if g := Glint(1.5, 0); g != 1 {
			t.Errorf("Expected 1 for cosine above 1, got %f", g)
		}
	})
}

func TestMaterial_SpecularPeakNotBrighterWhenRough(t *testing.T) {
	// Light and viewer both straight above: the smooth highlight is at its peak
	light := MockLight{incident: core.NewColor(2, 2, 2), toLight: core.NewVec3(0, 5, 0)}
	viewDir := core.NewVec3(0, -1, 0)

	shade := func(roughness float64, stream uint64) core.Color {
		m := New(core.NewColor(0.5, 0.5, 0.5))
		m.Roughness = roughness
		tracer := &MockTracer{environment: blackEnvironment, lights: []core.Light{light}}
		ctx := core.ShadingContext{Tracer: tracer, Sampler: core.NewSeededSampler(3, stream)}
		return m.Shade(upHit(), viewDir, ctx)
	}

	smooth := shade(0, 0).Value()
	for stream := uint64(0); stream < 50; stream++ {
		if rough := shade(0.8, stream).Value(); rough > smooth+1e-9 {
			t.Fatalf("Rough surface brighter than smooth at the highlight peak: %f > %f", rough, smooth)
		}
	}
}

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Material)
		wantErr bool
	}{
		{"defaults", func(m *Material) {}, false},
		{"zero refractive index", func(m *Material) { m.RefractiveIndex = 0 }, true},
		{"negative refractive index", func(m *Material) { m.RefractiveIndex = -1.5 }, true},
		{"metallicity above one", func(m *Material) { m.Metallicity = 1.2 }, true},
		{"negative roughness", func(m *Material) { m.Roughness = -0.1 }, true},
		{"NaN specularity", func(m *Material) { m.Specularity = math.NaN() }, true},
		{"opacity above one", func(m *Material) { m.BaseColor.A = 2 }, true},
		{"negative base channel", func(m *Material) { m.BaseColor.G = -1 }, true},
		{"HDR emission", func(m *Material) { m.EmissionColor = core.NewColorAlpha(5, 5, 5, 3) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			tt.mutate(m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestEnvironment_Ambient(t *testing.T) {
	env := Environment{Sky: core.NewColor(1, 0, 0), Ground: core.NewColor(0, 0, 1)}

	assertColor(t, env.Ambient(core.NewVec3(0, 1, 0)), core.NewColor(1, 0, 0))
	assertColor(t, env.Ambient(core.NewVec3(0, -1, 0)), core.NewColor(0, 0, 1))
	assertColor(t, env.Ambient(core.NewVec3(0, 0, 1)), core.NewColor(0.25, 0, 0.75))
}
