package geometry

import (
	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/material"
)

// Box represents an axis-aligned box made of six rectangles with outward normals
type Box struct {
	Min, Max core.Vec3
	faces    *ShapeList
}

// NewBox creates a box spanning pmin to pmax. The faces at the minimum
// coordinates are flipped so every normal points out of the box.
func NewBox(pmin, pmax core.Vec3, mat material.Material) *Box {
	faces := NewShapeList(
		NewRectXY(pmin.X, pmax.X, pmin.Y, pmax.Y, pmax.Z, mat),
		NewFlipNormals(NewRectXY(pmin.X, pmax.X, pmin.Y, pmax.Y, pmin.Z, mat)),
		NewRectXZ(pmin.X, pmax.X, pmin.Z, pmax.Z, pmax.Y, mat),
		NewFlipNormals(NewRectXZ(pmin.X, pmax.X, pmin.Z, pmax.Z, pmin.Y, mat)),
		NewRectYZ(pmin.Y, pmax.Y, pmin.Z, pmax.Z, pmax.X, mat),
		NewFlipNormals(NewRectYZ(pmin.Y, pmax.Y, pmin.Z, pmax.Z, pmin.X, mat)),
	)
	return &Box{Min: pmin, Max: pmax, faces: faces}
}

// Hit returns the nearest face hit
func (b *Box) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return b.faces.Hit(ray)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}
