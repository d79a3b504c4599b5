package scene

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/geometry"
	"github.com/df07/skirt/pkg/material"
)

// NewDefaultScene creates the classic three-sphere scene: diffuse, metal and
// a hollow glass ball resting on a large ground sphere
func NewDefaultScene(sampling SamplingConfig, seed int64) *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	cameraConfig := geometry.CameraConfig{
		Center:        lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      2.0,                                // Strong depth of field blur
		FocusDistance: lookFrom.Subtract(lookAt).Length(), // Focus on the center sphere
	}

	// Create materials
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.2)
	glass := material.NewDielectric(1.5)

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
		// Hollow glass: the negative radius flips the inner surface normals
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
	}

	return &Scene{
		CameraConfig:   cameraConfig,
		Shapes:         shapes,
		Background:     SkyBackground(),
		SamplingConfig: sampling,
		Seed:           seed,
	}
}

// NewSingleSphereScene creates a single diffuse sphere in front of the camera
func NewSingleSphereScene(sampling SamplingConfig, seed int64) *Scene {
	return &Scene{
		CameraConfig: geometry.CameraConfig{
			Center: core.NewVec3(0, 0, 0),
			LookAt: core.NewVec3(0, 0, -1),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   90.0,
		},
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		},
		Background:     SkyBackground(),
		SamplingConfig: sampling,
		Seed:           seed,
	}
}

// NewRandomScene creates a field of small random spheres around three large
// ones on a checkered ground
func NewRandomScene(sampling SamplingConfig, seed int64) *Scene {
	lookFrom := core.NewVec3(13, 2, 3)
	cameraConfig := geometry.CameraConfig{
		Center:        lookFrom,
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	random := core.NewSeededSampler(seed)
	checker := material.NewCheckerTexture(
		material.NewConstantTexture(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewConstantTexture(core.NewVec3(0.9, 0.9, 0.9)),
	)

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Get1D()
			center := core.NewVec3(float64(a)+0.9*random.Get1D(), 0.2, float64(b)+0.9*random.Get1D())
			if center.Subtract(keepClear).Length() < 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := random.Get3D().MultiplyVec(random.Get3D())
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := random.Get3D().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
				mat = material.NewMetal(albedo, 0.5*random.Get1D())
			default:
				mat = material.NewDielectric(1.5)
			}
			shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		CameraConfig:   cameraConfig,
		Shapes:         shapes,
		Background:     SkyBackground(),
		SamplingConfig: sampling,
		Seed:           seed,
	}
}

// NewPerlinScene creates marble spheres lit only by emitters
func NewPerlinScene(sampling SamplingConfig, seed int64) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 2),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          50.0,
		Aperture:      0.0,
		FocusDistance: 10.0,
	}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, core.NewSeededSampler(seed)))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewRectXY(3, 5, 1, 3, -2, light),
	}

	return &Scene{
		CameraConfig:   cameraConfig,
		Shapes:         shapes,
		Background:     BlackBackground(),
		SamplingConfig: sampling,
		Seed:           seed,
	}
}
