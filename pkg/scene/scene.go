package scene

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/geometry"
	"github.com/df07/skirt/pkg/material"
)

// Scene contains all the elements needed for rendering. It is read-only
// once Preprocess has run, so workers may share it.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	Background     Background       // Radiance for rays that escape
	SamplingConfig SamplingConfig
	Seed           int64          // Seed for the BVH axis choices and any procedural content
	Root           geometry.Shape // Acceleration structure for ray-object intersection
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// AspectRatio returns width / height
func (c SamplingConfig) AspectRatio() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Preprocess builds the camera from CameraConfig when missing and wraps the
// shapes in a BVH. The scene must have at least one shape.
func (s *Scene) Preprocess() {
	if s.Camera == nil {
		if s.CameraConfig.AspectRatio == 0 {
			s.CameraConfig.AspectRatio = s.SamplingConfig.AspectRatio()
		}
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
	if s.Background == nil {
		s.Background = SkyBackground()
	}
	if s.Root == nil {
		s.Root = geometry.NewBVH(s.Shapes, core.NewSeededSampler(s.Seed))
	}
}

// Hit intersects a ray with the scene
func (s *Scene) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return s.Root.Hit(ray)
}

// GetPrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
