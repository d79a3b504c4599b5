package material

import (
	"math"
	"testing"

	"github.com/df07/skirt/pkg/core"
)

// constSampler returns the same value for every dimension
type constSampler float64

func (c constSampler) Get1D() float64 { return float64(c) }
func (c constSampler) Get2D() core.Vec2 {
	return core.NewVec2(float64(c), float64(c))
}
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(float64(c), float64(c), float64(c))
}

func upHit(m Material) HitRecord {
	return HitRecord{
		T:        1,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: m,
	}
}

func TestLambertian_ScattersIntoHemisphere(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		scatter, didScatter := lambertian.Scatter(ray, upHit(lambertian), sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)) < 0 {
			t.Fatalf("Expected direction in upper hemisphere, got %v", scatter.Scattered.Direction)
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.MinT != core.ShadowEpsilon {
			t.Fatalf("Expected scattered MinT %g, got %g", core.ShadowEpsilon, scatter.Scattered.MinT)
		}
	}

	if !lambertian.Emitted(core.Vec2{}, core.Vec3{}).IsZero() {
		t.Error("Expected lambertian to emit nothing")
	}
}

func TestMetal(t *testing.T) {
	incoming := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	t.Run("Perfect mirror", func(t *testing.T) {
		metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0)
		scatter, ok := metal.Scatter(incoming, upHit(metal), constSampler(0.5))
		if !ok {
			t.Fatal("Expected mirror reflection")
		}
		expected := core.NewVec3(1, 1, 0).Normalize()
		if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
			t.Errorf("Expected %v, got %v", expected, scatter.Scattered.Direction)
		}
	})

	t.Run("Fuzz is clamped", func(t *testing.T) {
		if m := NewMetal(core.NewVec3(1, 1, 1), 3); m.Fuzzness != 1 {
			t.Errorf("Expected fuzz 1, got %f", m.Fuzzness)
		}
		if m := NewMetal(core.NewVec3(1, 1, 1), -1); m.Fuzzness != 0 {
			t.Errorf("Expected fuzz 0, got %f", m.Fuzzness)
		}
	})

	t.Run("Grazing fuzz below surface is absorbed", func(t *testing.T) {
		metal := NewMetal(core.NewVec3(1, 1, 1), 1)
		grazing := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
		if _, ok := metal.Scatter(grazing, upHit(metal), downSampler{}); ok {
			t.Error("Expected ray perturbed below the surface to be absorbed")
		}
	})
}

// downSampler maps to the unit-sphere point (0, -1, 0): r = 1, φ = 3π/2, cosθ = 0
type downSampler struct{}

func (downSampler) Get1D() float64   { return 0.5 }
func (downSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (downSampler) Get3D() core.Vec3 { return core.NewVec3(1, 0.75, 0.5) }

func TestDielectric(t *testing.T) {
	glass := NewDielectric(1.5)

	t.Run("Normal incidence refracts when sample exceeds reflectance", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
		scatter, ok := glass.Scatter(ray, upHit(glass), constSampler(0.99))
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if scatter.Scattered.Direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
			t.Errorf("Expected straight-through refraction, got %v", scatter.Scattered.Direction)
		}
		if scatter.Attenuation != core.NewVec3(1, 1, 1) {
			t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
		}
	})

	t.Run("Normal incidence reflects when sample is below reflectance", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
		scatter, _ := glass.Scatter(ray, upHit(glass), constSampler(0.01))
		if scatter.Scattered.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
			t.Errorf("Expected reflection, got %v", scatter.Scattered.Direction)
		}
	})

	t.Run("Total internal reflection from inside", func(t *testing.T) {
		// Leaving glass at a grazing angle along the outward normal
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0.2, 0))
		scatter, ok := glass.Scatter(ray, upHit(glass), constSampler(0.99))
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if scatter.Scattered.Direction.Y >= 0 {
			t.Errorf("Expected reflection back inside, got %v", scatter.Scattered.Direction)
		}
	})
}

func TestReflectanceBounds(t *testing.T) {
	for _, ri := range []float64{1.0, 1.33, 1.5, 2.4} {
		for cosine := -0.5; cosine <= 1.5; cosine += 0.01 {
			r := Reflectance(cosine, ri)
			if r < 0 || r > 1 {
				t.Fatalf("Reflectance(%f, %f) = %f outside [0, 1]", cosine, ri, r)
			}
		}
	}

	if r := Reflectance(1, 1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected normal-incidence reflectance 0.04, got %f", r)
	}
	if r := Reflectance(0, 1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected grazing reflectance 1, got %f", r)
	}
}

func TestDiffuseLight(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	if _, ok := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), upHit(light), constSampler(0.5)); ok {
		t.Error("Expected light not to scatter")
	}
	if e := light.Emitted(core.Vec2{}, core.Vec3{}); e != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected emission (4, 4, 4), got %v", e)
	}
}
