package scene

import (
	"math"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/geometry"
	"github.com/df07/skirt/pkg/material"
)

// NewCornellScene creates a classic Cornell box with two rotated boxes and a
// ceiling light
func NewCornellScene(sampling SamplingConfig, seed int64) *Scene {
	config := geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),        // Standard up direction
		VFov:          40.0,
		Aperture:      0.0, // No depth of field for Cornell box
		FocusDistance: 10.0,
	}

	// Create materials
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	shapes := []geometry.Shape{
		geometry.NewFlipNormals(geometry.NewRectYZ(0, boxSize, 0, boxSize, boxSize, green)), // Left wall
		geometry.NewRectYZ(0, boxSize, 0, boxSize, 0, red),                                  // Right wall
		geometry.NewRectXZ(123, 423, 147, 412, boxSize-1, light),                            // Ceiling light
		geometry.NewFlipNormals(geometry.NewRectXZ(0, boxSize, 0, boxSize, boxSize, white)), // Ceiling
		geometry.NewRectXZ(0, boxSize, 0, boxSize, 0, white),                                // Floor
		geometry.NewFlipNormals(geometry.NewRectXY(0, boxSize, 0, boxSize, boxSize, white)), // Back wall
	}

	unitBox := geometry.NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), white)

	// Short box, turned 30 degrees
	shortBox := geometry.NewTRS(
		core.NewVec3(130+82.5, 82.5, 65+82.5),
		core.NewVec3(0, -math.Pi/6, 0),
		core.NewVec3(82.5, 82.5, 82.5),
		unitBox,
	)

	// Tall box, turned 22.5 degrees the other way
	tallBox := geometry.NewTRS(
		core.NewVec3(265+82.5, 165, 295+82.5),
		core.NewVec3(0, math.Pi/8, 0),
		core.NewVec3(82.5, 165, 82.5),
		unitBox,
	)

	shapes = append(shapes, shortBox, tallBox)

	return &Scene{
		CameraConfig:   config,
		Shapes:         shapes,
		Background:     BlackBackground(),
		SamplingConfig: sampling,
		Seed:           seed,
	}
}
