package material

import (
	"github.com/df07/skirt/pkg/core"
)

// Material describes how a surface scatters and emits light
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when the
	// ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the radiance emitted at the surface point; zero for
	// materials that are not lights
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Value(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection. Normal is
// the geometric normal of the surface, not flipped towards the ray.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal at intersection
	UV       core.Vec2 // Surface coordinates
	Material Material  // Material of the hit object
}

// nonEmitter is embedded by materials that never emit
type nonEmitter struct{}

// Emitted returns black
func (nonEmitter) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}
