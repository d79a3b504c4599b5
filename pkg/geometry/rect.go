package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// rectThickness pads the bounds of a rectangle along its fixed axis so the
// box is never flat
const rectThickness = 0.0001

// Axis-aligned rectangles are parameterized by the two in-plane axes (a, b)
// and the fixed axis k they are perpendicular to.
type axisRect struct {
	a, b, k  int // axis indices
	a0, a1   float64
	b0, b1   float64
	offset   float64 // value of the fixed coordinate
	normal   core.Vec3
	Material material.Material
}

func (r *axisRect) hit(ray core.Ray) (*material.HitRecord, bool) {
	dk := ray.Direction.Axis(r.k)
	if dk == 0 {
		return nil, false
	}
	t := (r.offset - ray.Origin.Axis(r.k)) / dk
	if !ray.Contains(t) {
		return nil, false
	}

	pa := ray.Origin.Axis(r.a) + t*ray.Direction.Axis(r.a)
	pb := ray.Origin.Axis(r.b) + t*ray.Direction.Axis(r.b)
	if pa < r.a0 || pa > r.a1 || pb < r.b0 || pb > r.b1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   r.normal,
		UV:       core.NewVec2((pa-r.a0)/(r.a1-r.a0), (pb-r.b0)/(r.b1-r.b0)),
		Material: r.Material,
	}, true
}

func (r *axisRect) boundingBox() core.AABB {
	var lo, hi [3]float64
	lo[r.a], hi[r.a] = r.a0, r.a1
	lo[r.b], hi[r.b] = r.b0, r.b1
	lo[r.k], hi[r.k] = r.offset-rectThickness, r.offset+rectThickness
	return core.NewAABB(core.NewVec3(lo[0], lo[1], lo[2]), core.NewVec3(hi[0], hi[1], hi[2]))
}

// RectXY is a rectangle in the plane z = Z with normal +Z
type RectXY struct {
	axisRect
}

// NewRectXY creates a rectangle spanning [x0,x1]×[y0,y1] at z
func NewRectXY(x0, x1, y0, y1, z float64, mat material.Material) *RectXY {
	return &RectXY{axisRect{
		a: 0, b: 1, k: 2,
		a0: x0, a1: x1, b0: y0, b1: y1,
		offset:   z,
		normal:   core.NewVec3(0, 0, 1),
		Material: mat,
	}}
}

// Hit tests if a ray intersects the rectangle
func (r *RectXY) Hit(ray core.Ray) (*material.HitRecord, bool) { return r.hit(ray) }

// BoundingBox returns the rectangle bound, padded along Z
func (r *RectXY) BoundingBox() core.AABB { return r.boundingBox() }

// RectXZ is a rectangle in the plane y = Y with normal +Y
type RectXZ struct {
	axisRect
}

// NewRectXZ creates a rectangle spanning [x0,x1]×[z0,z1] at y
func NewRectXZ(x0, x1, z0, z1, y float64, mat material.Material) *RectXZ {
	return &RectXZ{axisRect{
		a: 0, b: 2, k: 1,
		a0: x0, a1: x1, b0: z0, b1: z1,
		offset:   y,
		normal:   core.NewVec3(0, 1, 0),
		Material: mat,
	}}
}

// Hit tests if a ray intersects the rectangle
func (r *RectXZ) Hit(ray core.Ray) (*material.HitRecord, bool) { return r.hit(ray) }

// BoundingBox returns the rectangle bound, padded along Y
func (r *RectXZ) BoundingBox() core.AABB { return r.boundingBox() }

// RectYZ is a rectangle in the plane x = X with normal +X
type RectYZ struct {
	axisRect
}

// NewRectYZ creates a rectangle spanning [y0,y1]×[z0,z1] at x
func NewRectYZ(y0, y1, z0, z1, x float64, mat material.Material) *RectYZ {
	return &RectYZ{axisRect{
		a: 1, b: 2, k: 0,
		a0: y0, a1: y1, b0: z0, b1: z1,
		offset:   x,
		normal:   core.NewVec3(1, 0, 0),
		Material: mat,
	}}
}

// Hit tests if a ray intersects the rectangle
func (r *RectYZ) Hit(ray core.Ray) (*material.HitRecord, bool) { return r.hit(ray) }

// BoundingBox returns the rectangle bound, padded along X
func (r *RectYZ) BoundingBox() core.AABB { return r.boundingBox() }
