package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Triangle represents a single triangle. Its normal follows the winding
// V0 → V1 → V2.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material
	normal     core.Vec3
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:     padFlat(core.NewAABBFromPoints(v0, v1, v2)),
	}
}

// Hit uses the Möller-Trumbore test. UV holds the barycentric weights of V1
// and V2.
func (t *Triangle) Hit(ray core.Ray) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	root := f * edge2.Dot(q)
	if !ray.Contains(root) {
		return nil, false
	}

	return &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Normal:   t.normal,
		UV:       core.NewVec2(u, v),
		Material: t.Material,
	}, true
}

// BoundingBox returns the cached bounds, padded when axis-aligned
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
