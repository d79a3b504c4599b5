package core

import (
	"fmt"
	"math"
)

// ShadowEpsilon is the default MinT for rays leaving a surface. It keeps a
// scattered ray from re-hitting the surface it starts on.
const ShadowEpsilon = 0.001

// Ray is a half-open segment Origin + t*Direction, t in [MinT, MaxT)
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
}

// NewRay creates a ray valid over [ShadowEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: ShadowEpsilon, MaxT: math.Inf(1)}
}

// NewRayInterval creates a ray valid over [minT, maxT)
func NewRayInterval(origin, direction Vec3, minT, maxT float64) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: minT, MaxT: maxT}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.MinT && t < r.MaxT
}

// WithMaxT returns a copy of the ray with a tighter far bound. Aggregates use
// it to only accept hits nearer than the closest found so far.
func (r Ray) WithMaxT(maxT float64) Ray {
	r.MaxT = maxT
	return r
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray[o=%v, d=%v, t=[%g, %g)]", r.Origin, r.Direction, r.MinT, r.MaxT)
}
