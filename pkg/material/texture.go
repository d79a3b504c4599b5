package material

import (
	"math"

	"github.com/df07/skirt/pkg/core"
)

// ConstantTexture provides uniform color
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Value returns the color regardless of UV or position
func (c *ConstantTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	return c.Color
}

// CheckerTexture alternates between two textures in a 3D checker pattern
// with a period of 2π/10 along each axis
type CheckerTexture struct {
	Even Texture
	Odd  Texture
}

// NewCheckerTexture creates a checker texture from two sub-textures
func NewCheckerTexture(even, odd Texture) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd}
}

// Value picks the odd texture where sin(10x)·sin(10y)·sin(10z) is negative
func (c *CheckerTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Value(uv, point)
	}
	return c.Even.Value(uv, point)
}

// NoiseTexture renders a marble-like pattern from Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture. The noise tables are drawn from
// sampler, so equal seeds give equal textures.
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// Value returns a gray level of 0.5·(1 + sin(scale·z + 10·turb(p)))
func (n *NoiseTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	g := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turbulence(point, DefaultTurbulenceDepth)))
	return core.NewVec3(g, g, g)
}
