package view

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/pkg/math"
)

// Cull is the result of classifying a volume against the frustum.
type Cull int

const (
	CullIn   Cull = iota // completely inside
	CullClip             // straddles at least one plane
	CullOut              // completely outside
)

func (c Cull) String() string {
	switch c {
	case CullIn:
		return "in"
	case CullClip:
		return "clip"
	default:
		return "out"
	}
}

// SetupFrustum derives the side planes from the field of view and, once
// ZFar is known, the far plane.
func (v *View) SetupFrustum() {
	axis := v.Or.Axis

	xs, xc := math32.Sincos(v.FovX / 360 * math32.Pi)
	v.Frustum[0].Normal = axis[0].Scale(xs).MA(xc, axis[1])
	v.Frustum[1].Normal = axis[0].Scale(xs).MA(-xc, axis[1])

	ys, yc := math32.Sincos(v.FovY / 360 * math32.Pi)
	v.Frustum[2].Normal = axis[0].Scale(ys).MA(yc, axis[2])
	v.Frustum[3].Normal = axis[0].Scale(ys).MA(-yc, axis[2])

	for i := 0; i < 4; i++ {
		v.Frustum[i].Dist = v.Or.Origin.Dot(v.Frustum[i].Normal)
	}
	v.NumPlanes = 4

	if v.ZFar > 0 {
		v.Frustum[4].Normal = axis[0].Negate()
		v.Frustum[4].Dist = v.Or.Origin.Dot(v.Frustum[4].Normal) - v.ZFar
		v.NumPlanes = 5
	}
}

// CullBox classifies a world-space box.
func (v *View) CullBox(b math.Bounds) Cull {
	if v.Options.NoCull {
		return CullClip
	}
	var corners [8]math.Vec3
	for i := range corners {
		corners[i] = b.Corner(i)
	}
	return v.cullPoints(&corners)
}

// CullLocalBox classifies a box given in the space of or.
func (v *View) CullLocalBox(or *Orientation, b math.Bounds) Cull {
	if v.Options.NoCull {
		return CullClip
	}
	var corners [8]math.Vec3
	for i := range corners {
		corners[i] = or.LocalPointToWorld(b.Corner(i))
	}
	return v.cullPoints(&corners)
}

func (v *View) cullPoints(corners *[8]math.Vec3) Cull {
	anyBack := false
	for i := 0; i < v.NumPlanes; i++ {
		p := &v.Frustum[i]
		front, back := false, false
		for j := range corners {
			if corners[j].Dot(p.Normal) > p.Dist {
				front = true
				if back {
					break
				}
			} else {
				back = true
			}
		}
		if !front {
			// every corner is behind this plane
			return CullOut
		}
		anyBack = anyBack || back
	}
	if !anyBack {
		return CullIn
	}
	return CullClip
}

// CullPointAndRadius classifies a world-space sphere.
func (v *View) CullPointAndRadius(p math.Vec3, radius float32) Cull {
	if v.Options.NoCull {
		return CullClip
	}
	clipped := false
	for i := 0; i < v.NumPlanes; i++ {
		d := v.Frustum[i].Distance(p)
		if d < -radius {
			return CullOut
		}
		if d <= radius {
			clipped = true
		}
	}
	if clipped {
		return CullClip
	}
	return CullIn
}

// CullLocalPointAndRadius classifies a sphere whose center is given in the
// space of or.
func (v *View) CullLocalPointAndRadius(or *Orientation, p math.Vec3, radius float32) Cull {
	return v.CullPointAndRadius(or.LocalPointToWorld(p), radius)
}
