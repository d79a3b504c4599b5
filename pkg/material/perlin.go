package material

import (
	"math"

	"github.com/df07/skirt/pkg/core"
)

const perlinSize = 256

// DefaultTurbulenceDepth is the number of octaves summed by Turbulence
const DefaultTurbulenceDepth = 7

// Perlin is a gradient noise generator with per-axis permutation tables
type Perlin struct {
	gradients [perlinSize]core.Vec3
	permX     [perlinSize]int
	permY     [perlinSize]int
	permZ     [perlinSize]int
}

// NewPerlin builds random gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.SampleOnUnitSphere(sampler.Get2D())
	}
	permute(&p.permX, sampler)
	permute(&p.permY, sampler)
	permute(&p.permZ, sampler)
	return p
}

// permute fills perm with a Fisher-Yates shuffle of 0..255
func permute(perm *[perlinSize]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinSize - 1; i > 0; i-- {
		target := core.SampleIntn(sampler, i+1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smoothly varying noise in roughly [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^
					p.permY[(j+dj)&255]^
					p.permZ[(k+dk)&255]]
			}
		}
	}
	return interpolate(&c, u, v, w)
}

// Turbulence sums depth octaves of noise with halving weights and returns
// the absolute value
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	temp := point
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = temp.Multiply(2)
	}
	return math.Abs(accum)
}

// interpolate blends the corner gradients with Hermite-smoothed trilinear weights
func interpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}
