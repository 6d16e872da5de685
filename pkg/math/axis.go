package math

import "github.com/chewxy/math32"

// Axis is an orthonormal basis: forward, left, up.
type Axis [3]Vec3

// AxisIdentity returns the world basis.
func AxisIdentity() Axis {
	return Axis{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// AnglesToAxis builds a basis from pitch, yaw and roll in degrees.
func AnglesToAxis(pitch, yaw, roll float32) Axis {
	sy, cy := math32.Sincos(yaw * math32.Pi / 180)
	sp, cp := math32.Sincos(pitch * math32.Pi / 180)
	sr, cr := math32.Sincos(roll * math32.Pi / 180)

	forward := Vec3{cp * cy, cp * sy, -sp}
	right := Vec3{
		-sr*sp*cy + cr*sy,
		-sr*sp*sy - cr*cy,
		-sr * cp,
	}
	up := Vec3{
		cr*sp*cy + sr*sy,
		cr*sp*sy - sr*cy,
		cr * cp,
	}
	return Axis{forward, right.Negate(), up}
}

// ToLocal expresses a world-space direction in this basis.
func (a Axis) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(a[0]), v.Dot(a[1]), v.Dot(a[2])}
}

// ToWorld expands a local direction in this basis back into world space.
func (a Axis) ToWorld(v Vec3) Vec3 {
	return a[0].Scale(v.X).MA(v.Y, a[1]).MA(v.Z, a[2])
}

// ProjectPointOnPlane removes the component of p along normal.
func ProjectPointOnPlane(p, normal Vec3) Vec3 {
	d := normal.Dot(p) / normal.Dot(normal)
	return p.Sub(normal.Scale(d))
}

// PerpendicularVector returns a unit vector perpendicular to src, which
// must be normalized.
func PerpendicularVector(src Vec3) Vec3 {
	// pick the axis src is least aligned with
	minElem := float32(1)
	pos := 0
	for i := 0; i < 3; i++ {
		if a := math32.Abs(src.At(i)); a < minElem {
			pos = i
			minElem = a
		}
	}
	var temp Vec3
	switch pos {
	case 0:
		temp.X = 1
	case 1:
		temp.Y = 1
	default:
		temp.Z = 1
	}
	return ProjectPointOnPlane(temp, src).Normalize()
}

// RotatePointAroundVector rotates point around dir by degrees.
func RotatePointAroundVector(dir, point Vec3, degrees float32) Vec3 {
	q := QuatFromAxisAngle(dir.Normalize(), degrees*math32.Pi/180)
	return q.Rotate(point)
}
