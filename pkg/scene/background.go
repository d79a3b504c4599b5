package scene

import (
	"github.com/df07/skirt/pkg/core"
)

// Background gives the radiance carried by rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically from Bottom (looking down) to Top
// (looking up)
type GradientBackground struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// SkyBackground returns the white to light-blue sky
func SkyBackground() *GradientBackground {
	return &GradientBackground{
		Bottom: core.NewVec3(1, 1, 1),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color interpolates on the y component of the unit ray direction
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}

// SolidBackground returns the same radiance in every direction
type SolidBackground struct {
	Radiance core.Vec3
}

// BlackBackground returns a background that contributes no light, for scenes
// lit only by emitters
func BlackBackground() *SolidBackground {
	return &SolidBackground{}
}

// Color returns the constant radiance
func (s *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Radiance
}

// BackgroundByName resolves the names used in scene descriptions
func BackgroundByName(name string) (Background, bool) {
	switch name {
	case "", "sky":
		return SkyBackground(), true
	case "black":
		return BlackBackground(), true
	}
	return nil, false
}
