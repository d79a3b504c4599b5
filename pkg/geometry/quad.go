package geometry

import (
	"math"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Quad is a parallelogram spanned by the edges U and V from Corner. Its
// normal is U × V normalized.
type Quad struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Material material.Material
	normal   core.Vec3
	d        float64   // plane constant: normal · p = d
	w        core.Vec3 // n / (n · n) with n = U × V, for planar coordinates
}

// NewQuad creates a quad from a corner and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		normal:   normal,
		d:        normal.Dot(corner),
		w:        n.Multiply(1.0 / n.Dot(n)),
	}
}

// Hit intersects the ray with the quad's plane and keeps crossings whose
// planar coordinates fall in [0,1]². The coordinates double as UV.
func (q *Quad) Hit(ray core.Ray) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if !ray.Contains(t) {
		return nil, false
	}

	point := ray.At(t)
	p := point.Subtract(q.Corner)
	alpha := q.w.Dot(p.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(p))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		Point:    point,
		Normal:   q.normal,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}, true
}

// BoundingBox returns the bounds of the four corners, padded when flat
func (q *Quad) BoundingBox() core.AABB {
	return padFlat(core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	))
}

// padFlat widens any axis of bbox thinner than rectThickness
func padFlat(bbox core.AABB) core.AABB {
	lo := [3]float64{bbox.Min.X, bbox.Min.Y, bbox.Min.Z}
	hi := [3]float64{bbox.Max.X, bbox.Max.Y, bbox.Max.Z}
	for axis := 0; axis < 3; axis++ {
		if hi[axis]-lo[axis] < 2*rectThickness {
			mid := (lo[axis] + hi[axis]) / 2
			lo[axis], hi[axis] = mid-rectThickness, mid+rectThickness
		}
	}
	return core.NewAABB(core.NewVec3(lo[0], lo[1], lo[2]), core.NewVec3(hi[0], hi[1], hi[2]))
}
