package material

import (
	"github.com/df07/skirt/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	nonEmitter
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewConstantTexture(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter sends the ray towards a random point in the unit sphere tangent
// to the surface, which gives a cosine-weighted distribution
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.SamplePointInUnitSphere(sampler.Get3D()))
	if direction.LengthSquared() < 1e-16 {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo.Value(hit.UV, hit.Point),
	}, true
}
