package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Vec4 is a 4-component vector, used for clip-space coordinates.
type Vec4 [4]float32

// flipToGL converts from the world convention (looking down +X, Z up) to the
// OpenGL eye convention (looking down -Z, Y up).
var flipToGL = Mat4{
	0, 0, -1, 0,
	-1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view frustum boundaries.
// near and far define the depth range.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// ProjectionFov returns a symmetric perspective projection built from the
// horizontal and vertical field of view in degrees.
func ProjectionFov(fovX, fovY, zNear, zFar float32) Mat4 {
	ymax := zNear * math32.Tan(fovY*math32.Pi/360)
	ymin := -ymax
	xmax := zNear * math32.Tan(fovX*math32.Pi/360)
	xmin := -xmax

	width := xmax - xmin
	height := ymax - ymin
	depth := zFar - zNear

	return Mat4{
		2 * zNear / width, 0, 0, 0,
		0, 2 * zNear / height, 0, 0,
		(xmax + xmin) / width, (ymax + ymin) / height, -(zFar + zNear) / depth, -1,
		0, 0, -2 * zFar * zNear / depth, 0,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// FromAxis returns the local-to-world matrix of an orientation: the columns
// are the three axes followed by the origin.
func FromAxis(origin Vec3, axis Axis) Mat4 {
	return Mat4{
		axis[0].X, axis[0].Y, axis[0].Z, 0,
		axis[1].X, axis[1].Y, axis[1].Z, 0,
		axis[2].X, axis[2].Y, axis[2].Z, 0,
		origin.X, origin.Y, origin.Z, 1,
	}
}

// ViewMatrix returns the world-to-eye matrix of a viewer at origin with the
// given axes, already flipped into OpenGL eye space.
func ViewMatrix(origin Vec3, axis Axis) Mat4 {
	viewer := Mat4{
		axis[0].X, axis[1].X, axis[2].X, 0,
		axis[0].Y, axis[1].Y, axis[2].Y, 0,
		axis[0].Z, axis[1].Z, axis[2].Z, 0,
		-origin.Dot(axis[0]), -origin.Dot(axis[1]), -origin.Dot(axis[2]), 1,
	}
	return flipToGL.Mul(viewer)
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// TransformVec3 transforms a Vec3 point by this matrix.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.TransformPoint(v.Array())
	return Vec3{p[0], p[1], p[2]}
}

// Ptr returns a pointer to the first element for GPU upload.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}
