// Package dlight decides which dynamic lights touch which surfaces.
//
// A view keeps at most 32 visible lights; each surface carries a bit mask
// of the lights that reach it.
package dlight

import (
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Cull keeps the lights that can touch the view frustum, renumbers them
// from zero and stores them with their bit mask in v. Directed lights
// are never culled.
func Cull(v *view.View, lights []scene.DLight) {
	visible := make([]scene.DLight, 0, len(lights))
	for _, l := range lights {
		if l.Flags&scene.Directed == 0 && v.CullPointAndRadius(l.Origin, l.Radius) == view.CullOut {
			continue
		}
		visible = append(visible, l)
		if len(visible) == scene.MaxDLights {
			break
		}
	}
	v.DLights = visible
	v.DLightBits = bitsFor(len(visible))
}

func bitsFor(n int) uint32 {
	if n >= 32 {
		return ^uint32(0)
	}
	return 1<<uint(n) - 1
}

// Transform expresses every light origin in the space of or.
func Transform(lights []scene.DLight, or *view.Orientation) {
	for i := range lights {
		lights[i].Transformed = or.WorldToLocal(lights[i].Origin)
	}
}

// Surface narrows bits to the lights that reach s. Lights must already be
// transformed into the surface's space.
func Surface(s surface.Surface, lights []scene.DLight, bits uint32) uint32 {
	switch s := s.(type) {
	case *surface.Face:
		return face(s, lights, bits)
	case *surface.Triangles:
		return bounds(s.Bounds, lights, bits)
	case *surface.Foliage:
		return bounds(s.Bounds, lights, bits)
	}
	return 0
}

func face(f *surface.Face, lights []scene.DLight, bits uint32) uint32 {
	for i := range lights {
		if bits&(1<<uint(i)) == 0 || lights[i].Flags&scene.Directed != 0 {
			continue
		}
		l := &lights[i]
		d := f.Plane.Distance(l.Transformed)
		if d < -l.Radius || d > l.Radius || !f.Bounds.OverlapsSphere(l.Transformed, l.Radius) {
			bits &^= 1 << uint(i)
		}
	}
	return bits
}

func bounds(b math.Bounds, lights []scene.DLight, bits uint32) uint32 {
	for i := range lights {
		if bits&(1<<uint(i)) == 0 || lights[i].Flags&scene.Directed != 0 {
			continue
		}
		if !b.OverlapsSphere(lights[i].Transformed, lights[i].Radius) {
			bits &^= 1 << uint(i)
		}
	}
	return bits
}

// Box returns the lights whose transformed origin lies within radius of
// a local box on every axis, the mask of a brush model.
func Box(b math.Bounds, lights []scene.DLight) uint32 {
	var mask uint32
	for i := range lights {
		l := &lights[i]
		if l.Flags&scene.Directed != 0 {
			mask |= 1 << uint(i)
			continue
		}
		inside := true
		for j := 0; j < 3; j++ {
			p := l.Transformed.At(j)
			if p-b.Max.At(j) > l.Radius || b.Min.At(j)-p > l.Radius {
				inside = false
				break
			}
		}
		if inside {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Sphere returns the lights that touch a world-space sphere.
func Sphere(center math.Vec3, radius float32, lights []scene.DLight) uint32 {
	var mask uint32
	for i := range lights {
		l := &lights[i]
		reach := l.Radius + radius
		if l.Flags&scene.Directed != 0 || l.Origin.DistanceSquared(center) <= reach*reach {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
