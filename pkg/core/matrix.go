package core

import (
	"fmt"
	"math"
)

// Matrix4 is a 4x4 affine transform stored row-major; points are column
// vectors, so p' = M * p.
type Matrix4 [4][4]float64

// Identity returns the identity matrix
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix translating by v
func Translation(v Vec3) Matrix4 {
	return Matrix4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scaling returns a matrix scaling each axis by the components of v
func Scaling(v Vec3) Matrix4 {
	return Matrix4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotationX returns a counter-clockwise rotation of rad radians about X
func RotationX(rad float64) Matrix4 {
	s, c := math.Sincos(rad)
	return Matrix4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a counter-clockwise rotation of rad radians about Y
func RotationY(rad float64) Matrix4 {
	s, c := math.Sincos(rad)
	return Matrix4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a counter-clockwise rotation of rad radians about Z
func RotationZ(rad float64) Matrix4 {
	s, c := math.Sincos(rad)
	return Matrix4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotation returns a rotation of rad radians about an arbitrary axis
func Rotation(axis Vec3, rad float64) Matrix4 {
	a := axis.Normalize()
	s, c := math.Sincos(rad)
	t := 1 - c
	return Matrix4{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m * o; the result applies o first, then m
func (m Matrix4) Multiply(o Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Translate post-multiplies a translation, so it is applied before m
func (m Matrix4) Translate(v Vec3) Matrix4 {
	return m.Multiply(Translation(v))
}

// Scale post-multiplies a scale, so it is applied before m
func (m Matrix4) Scale(v Vec3) Matrix4 {
	return m.Multiply(Scaling(v))
}

// RotateX post-multiplies a rotation about X
func (m Matrix4) RotateX(rad float64) Matrix4 {
	return m.Multiply(RotationX(rad))
}

// RotateY post-multiplies a rotation about Y
func (m Matrix4) RotateY(rad float64) Matrix4 {
	return m.Multiply(RotationY(rad))
}

// RotateZ post-multiplies a rotation about Z
func (m Matrix4) RotateZ(rad float64) Matrix4 {
	return m.Multiply(RotationZ(rad))
}

// Rotate post-multiplies a rotation about an arbitrary axis
func (m Matrix4) Rotate(axis Vec3, rad float64) Matrix4 {
	return m.Multiply(Rotation(axis, rad))
}

// Inverse returns the inverse matrix using Gauss-Jordan elimination with
// partial pivoting. A singular matrix panics.
func (m Matrix4) Inverse() Matrix4 {
	a := m
	inv := Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			panic(fmt.Sprintf("core: inverse of singular matrix %v", m))
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := 1 / a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] *= scale
			inv[col][j] *= scale
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv
}

// TransformPoint applies the full affine transform to a point
func (m Matrix4) TransformPoint(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformVector applies the linear part only, ignoring translation
func (m Matrix4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TransformNormal maps a normal with the transpose of m's linear part. Pass
// the inverse of the object-to-world matrix to get the inverse-transpose
// mapping that keeps normals perpendicular under non-uniform scale. The
// result is not normalized.
func (m Matrix4) TransformNormal(n Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*n.X + m[1][0]*n.Y + m[2][0]*n.Z,
		Y: m[0][1]*n.X + m[1][1]*n.Y + m[2][1]*n.Z,
		Z: m[0][2]*n.X + m[1][2]*n.Y + m[2][2]*n.Z,
	}
}

// TransformRay maps a ray's origin and direction, keeping its interval
func (m Matrix4) TransformRay(r Ray) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformVector(r.Direction),
		MinT:      r.MinT,
		MaxT:      r.MaxT,
	}
}

// TransformAABB returns the box bounding the eight transformed corners
func (m Matrix4) TransformAABB(box AABB) AABB {
	if box.IsEmpty() {
		return box
	}
	ret := EmptyAABB()
	for i := 0; i < 8; i++ {
		ret = ret.UnionPoint(m.TransformPoint(box.Corner(i)))
	}
	return ret
}
