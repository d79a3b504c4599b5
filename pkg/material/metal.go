package material

import (
	"github.com/df07/skirt/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	nonEmitter
	Albedo   Texture // Metal color
	Fuzzness float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return NewTexturedMetal(NewConstantTexture(albedo), fuzzness)
}

// NewTexturedMetal creates a metal whose color comes from a texture
func NewTexturedMetal(albedo Texture, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	fuzzness = max(0.0, min(1.0, fuzzness))
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter reflects the ray about the normal, perturbed by the fuzz. Rays
// perturbed below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo.Value(hit.UV, hit.Point),
	}, true
}
