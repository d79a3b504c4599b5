package material

import (
	"math"

	"github.com/df07/skirt/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	nonEmitter
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter reflects or refracts the ray, choosing reflection with the
// Schlick probability. Total internal reflection always reflects.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()
	reflected := unitDirection.Reflect(hit.Normal)
	cosIncident := unitDirection.Dot(hit.Normal)

	// The geometric normal is not flipped, so its sign tells the side
	var outNormal core.Vec3
	var niOverNt float64
	exiting := cosIncident > 0
	if exiting {
		outNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
	} else {
		outNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
	}

	direction := reflected
	if refracted, ok := unitDirection.Refract(outNormal, niOverNt); ok {
		// Schlick uses the angle on the less dense side
		cosine := -cosIncident
		if exiting {
			cosine = math.Sqrt(1 - d.RefractiveIndex*d.RefractiveIndex*(1-cosIncident*cosIncident))
		}
		if sampler.Get1D() >= Reflectance(cosine, d.RefractiveIndex) {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// The cosine is clamped to [0, 1] so the result always lies in [0, 1].
func Reflectance(cosine, refractiveIndex float64) float64 {
	cosine = max(0, min(1, cosine))
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
