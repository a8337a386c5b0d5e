package core

import "github.com/go-gl/mathgl/mgl64"

// Matrices are mgl64 column-major 4x4 transforms. These helpers convert between
// mgl64 vectors and Vec3 so the rest of the renderer can stay on Vec3.

// ToMgl converts a Vec3 to an mgl64.Vec3
func ToMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMgl converts an mgl64.Vec3 to a Vec3
func FromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// TransformPoint applies m to a point (translation included)
func TransformPoint(m mgl64.Mat4, p Vec3) Vec3 {
	return FromMgl(m.Mul4x1(ToMgl(p).Vec4(1)).Vec3())
}

// TransformVector applies m to a direction (translation ignored)
func TransformVector(m mgl64.Mat4, v Vec3) Vec3 {
	return FromMgl(mgl64.TransformNormal(ToMgl(v), m))
}

// TransformNormal applies the inverse transpose of m to a surface normal and
// renormalizes it, so non-uniform scales keep normals perpendicular
func TransformNormal(m mgl64.Mat4, n Vec3) Vec3 {
	return FromMgl(mgl64.Mat4Normal(m).Mul3x1(ToMgl(n))).Normalize()
}

// NewBasis builds a transform whose columns are the given axes and origin
func NewBasis(xAxis, yAxis, zAxis, origin Vec3) mgl64.Mat4 {
	return mgl64.Mat4FromCols(
		ToMgl(xAxis).Vec4(0),
		ToMgl(yAxis).Vec4(0),
		ToMgl(zAxis).Vec4(0),
		ToMgl(origin).Vec4(1),
	)
}
