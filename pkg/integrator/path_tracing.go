package integrator

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor follows one path from the camera. Each bounce adds the emission
// of the surface hit, weighted by the product of the attenuations so far;
// the path ends when it escapes, is absorbed or reaches MaxDepth scatters.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		hit, isHit := sc.Hit(ray)
		if !isHit {
			return radiance.Add(throughput.MultiplyVec(sc.Background.Color(ray)))
		}

		// Start with emitted light from the hit material
		emitted := hit.Material.Emitted(hit.UV, hit.Point)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		if depth >= pt.config.MaxDepth {
			return radiance
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		if throughput.IsZero() {
			return radiance
		}
		ray = scatter.Scattered
	}
}
