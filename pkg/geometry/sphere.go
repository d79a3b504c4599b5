package geometry

import (
	"math"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Sphere represents a sphere shape. A negative radius keeps the same surface
// but turns the normals inward, which is how hollow glass is modelled.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !ray.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !ray.Contains(root) {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   normal,
		UV:       SphereUV(normal),
		Material: s.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// SphereUV maps a unit direction to spherical texture coordinates: u wraps
// around the Y axis, v runs from the south pole (0) to the north pole (1)
func SphereUV(n core.Vec3) core.Vec2 {
	phi := math.Atan2(n.Z, n.X)
	theta := math.Asin(max(-1, min(1, n.Y)))
	return core.NewVec2(
		1-(phi+math.Pi)/(2*math.Pi),
		(theta+math.Pi/2)/math.Pi,
	)
}
