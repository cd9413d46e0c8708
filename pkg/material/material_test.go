package material

import (
	"math"
	"testing"

	"github.com/tlerebours/pathtracer/pkg/core"
)

func testHit(normal core.Vec3, frontFace bool) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		T:         1.0,
		FrontFace: frontFace,
	}
}

func TestLambertian_AttenuationInRange(t *testing.T) {
	// Constructor clamps over-unity albedo so a bounce never amplifies
	lambertian := NewLambertian(core.NewVec3(1.5, -0.2, 0.5))
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	scatter, didScatter := lambertian.Scatter(rayIn, testHit(core.NewVec3(0, 1, 0), true), sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}

	a := scatter.Attenuation
	for _, c := range []float64{a.X, a.Y, a.Z} {
		if c < 0 || c > 1 {
			t.Errorf("Attenuation component %v outside [0,1]", c)
		}
	}
}

func TestLambertian_ScatterStaysAboveSurface(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(7)
	normal := core.NewVec3(0, 1, 0)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 500; i++ {
		scatter, _ := lambertian.Scatter(rayIn, testHit(normal, true), sampler)
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scattered direction %v below surface", scatter.Scattered.Direction)
		}
	}
}

func TestMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"valid 0.0", 0.0, 0.0},
		{"valid 0.5", 0.5, 0.5},
		{"clamp above 1.0", 1.5, 1.0},
		{"clamp below 0.0", -0.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), tt.input)
			if metal.Fuzzness != tt.expected {
				t.Errorf("Expected fuzzness %f, got %f", tt.expected, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting the surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := testHit(core.NewVec3(0, 0, 1), true)

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
}

func TestMetal_GrazingFuzzAbsorbed(t *testing.T) {
	// With maximum fuzz, a grazing reflection can end up below the surface
	// and must then be absorbed, never scattered downward.
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewSeededSampler(3)
	normal := core.NewVec3(0, 0, 1)
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01).Normalize())

	for i := 0; i < 500; i++ {
		scatter, didScatter := metal.Scatter(rayIn, testHit(normal, true), sampler)
		if didScatter && scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatal("Metal scattered a ray below the surface instead of absorbing it")
		}
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	// Shallow ray exiting glass: beyond the critical angle, refraction is
	// impossible and the ray must reflect.
	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, -0.1, 0).Normalize())
	hit := testHit(core.NewVec3(0, 1, 0), false)

	scatter, didScatter := glass.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}
	// Reflected ray flips the sign of the normal component
	if scatter.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected total internal reflection, got direction %v", scatter.Scattered.Direction)
	}
}

func TestDielectric_RefractsStraightThrough(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	// Normal incidence: refraction does not bend the ray
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := testHit(core.NewVec3(0, 1, 0), true)

	sawRefraction := false
	for i := 0; i < 100; i++ {
		scatter, _ := glass.Scatter(rayIn, hit, sampler)
		d := scatter.Scattered.Direction.Normalize()
		if d.Y < 0 {
			sawRefraction = true
			if d.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
				t.Errorf("Normal-incidence refraction bent the ray: %v", d)
			}
		}
	}
	if !sawRefraction {
		t.Error("Expected at least one refraction at normal incidence")
	}
}

func TestReflectanceSchlickBounds(t *testing.T) {
	for _, cosine := range []float64{0.0, 0.1, 0.5, 0.9, 1.0} {
		r := Reflectance(cosine, 1.0/1.5)
		if r < 0 || r > 1 {
			t.Errorf("Reflectance(%v) = %v outside [0,1]", cosine, r)
		}
	}
	// Grazing incidence approaches full reflection
	if r := Reflectance(0.0, 1.0/1.5); math.Abs(r-1.0) > 1e-9 {
		t.Errorf("Grazing reflectance = %v, expected 1", r)
	}
}

func TestEmissive_AbsorbsAndEmits(t *testing.T) {
	light := NewEmissive(core.NewVec3(15, 14, 13))
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	_, didScatter := light.Scatter(rayIn, testHit(core.NewVec3(0, 1, 0), true), sampler)
	if didScatter {
		t.Error("Emissive material should not scatter")
	}

	if emitted := light.Emit(rayIn); emitted != core.NewVec3(15, 14, 13) {
		t.Errorf("Unexpected emission: %v", emitted)
	}
}
