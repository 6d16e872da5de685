package portal

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// markerRange is how far a portal marker entity may sit from the surface
// plane and still be paired with it.
const markerRange = 64

// Orientation is an origin and basis.
type Orientation struct {
	Origin math.Vec3
	Axis   math.Axis
}

// Placement is where a portal surface is and where it looks from.
type Placement struct {
	Surface   Orientation
	Camera    Orientation
	PVSOrigin math.Vec3
	Mirror    bool
}

// Surface is a portal candidate from the draw list.
type Surface struct {
	Surf   surface.Surface
	Entity *scene.Entity // nil for world geometry
	Range  float32       // shader portal range; zero means unlimited
}

// worldPlane returns the surface plane in world space.
func worldPlane(v *view.View, s Surface) math.Plane {
	pl := surface.PlaneOf(s.Surf)
	if s.Entity == nil || s.Entity.Type != scene.EntityModel {
		return pl
	}
	or := v.RotateForEntity(s.Entity)
	n := or.LocalNormalToWorld(pl.Normal)
	return math.Plane{Normal: n, Dist: pl.Dist + n.Dot(or.Origin)}
}

// findMarker returns the portal marker entity lying on plane.
func findMarker(plane math.Plane, entities []scene.Entity) *scene.Entity {
	for i := range entities {
		e := &entities[i]
		if e.Type != scene.EntityPortalSurface {
			continue
		}
		d := plane.Distance(e.Origin)
		if d > markerRange || d < -markerRange {
			continue
		}
		return e
	}
	return nil
}

// IsMirror reports whether the marker paired with s is a mirror.
func IsMirror(v *view.View, s Surface, entities []scene.Entity) bool {
	e := findMarker(worldPlane(v, s), entities)
	return e != nil && e.Origin == e.OldOrigin
}

// Orientations pairs s with its marker entity and derives the surface and
// camera orientations. It returns false when no marker lies on the plane.
//
// A marker whose origin equals its old origin is a mirror. Otherwise the
// camera sits at the old origin looking back along the marker's axis,
// optionally rotated: Frame is a rotation speed in degrees per second when
// OldFrame is set, SkinNum a fixed roll in degrees.
func Orientations(v *view.View, s Surface, entities []scene.Entity) (Placement, bool) {
	plane := worldPlane(v, s)

	var p Placement
	p.Surface.Axis[0] = plane.Normal
	p.Surface.Axis[1] = math.PerpendicularVector(plane.Normal)
	p.Surface.Axis[2] = p.Surface.Axis[0].Cross(p.Surface.Axis[1])

	e := findMarker(plane, entities)
	if e == nil {
		return p, false
	}
	p.PVSOrigin = e.OldOrigin

	if e.Origin == e.OldOrigin {
		p.Surface.Origin = plane.Normal.Scale(plane.Dist)
		p.Camera.Origin = p.Surface.Origin
		p.Camera.Axis = math.Axis{p.Surface.Axis[0].Negate(), p.Surface.Axis[1], p.Surface.Axis[2]}
		p.Mirror = true
		return p, true
	}

	// rotate around the marker's projection on the plane
	d := plane.Distance(e.Origin)
	p.Surface.Origin = e.Origin.MA(-d, p.Surface.Axis[0])

	p.Camera.Origin = e.OldOrigin
	p.Camera.Axis = math.Axis{e.Axis[0].Negate(), e.Axis[1].Negate(), e.Axis[2]}

	var roll float32
	switch {
	case e.OldFrame != 0 && e.Frame != 0:
		roll = v.FloatTime * float32(e.Frame)
	case e.OldFrame != 0:
		roll = float32(e.SkinNum) + math32.Sin(float32(v.Time)*0.003)*4
	case e.SkinNum != 0:
		roll = float32(e.SkinNum)
	}
	if roll != 0 {
		c := &p.Camera.Axis
		c[1] = math.RotatePointAroundVector(c[0], c[1], roll)
		c[2] = c[0].Cross(c[1])
	}
	return p, true
}

// MirrorPoint maps a point in front of the surface to the camera side.
func MirrorPoint(in math.Vec3, surf, camera *Orientation) math.Vec3 {
	return MirrorVector(in.Sub(surf.Origin), surf, camera).Add(camera.Origin)
}

// MirrorVector maps a direction through the surface to the camera side.
func MirrorVector(in math.Vec3, surf, camera *Orientation) math.Vec3 {
	var out math.Vec3
	for i := 0; i < 3; i++ {
		out = out.MA(in.Dot(surf.Axis[i]), camera.Axis[i])
	}
	return out
}
