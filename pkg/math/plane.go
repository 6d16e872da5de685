package math

// Plane is the set of points p with Normal·p == Dist.
// Points with Normal·p > Dist are in front of the plane.
type Plane struct {
	Normal Vec3
	Dist   float32
}

// PlaneFromPoints returns the plane through a, b and c, facing the side from
// which the points appear clockwise. ok is false for degenerate input.
func PlaneFromPoints(a, b, c Vec3) (p Plane, ok bool) {
	n := c.Sub(a).Cross(b.Sub(a))
	if n.LengthSquared() == 0 {
		return Plane{}, false
	}
	n = n.Normalize()
	return Plane{Normal: n, Dist: a.Dot(n)}, true
}

// Distance returns the signed distance from point to the plane.
func (p Plane) Distance(point Vec3) float32 {
	return point.Dot(p.Normal) - p.Dist
}

// Flip returns the plane facing the opposite way.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Negate(), Dist: -p.Dist}
}
