// Package lod picks a model's level of detail from its projected size.
package lod

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// MaxScale caps the LOD scale option.
const MaxScale = 20

// OrientScale shrinks the selection radius of OrientLOD entities.
const OrientScale = 0.25

// ProjectRadius returns the screen-space size of a sphere of radius r at
// location, as a fraction of the half viewport height (capped at 1). It
// returns zero when the location is on or behind the view plane.
func ProjectRadius(r float32, location math.Vec3, v *view.View) float32 {
	axis := v.Or.Axis[0]
	dist := axis.Dot(location) - axis.Dot(v.Or.Origin)
	if dist <= 0 {
		return 0
	}

	p := math.Vec4{0, math32.Abs(r), -dist, 1}
	projected := v.ProjectionMatrix.MulVec4(p)

	pr := projected[1] / projected[3]
	return min(pr, 1)
}

// Request is one model's LOD query.
type Request struct {
	NumLODs int
	Radius  float32
	Origin  math.Vec3

	Force  bool // pin to the highest detail
	Orient bool // shrink the radius for long, thin models
}

// Select returns the detail index for r, 0 being the highest detail.
// Models with fewer than two levels always return 0.
func Select(r Request, v *view.View) int {
	if r.NumLODs < 2 {
		return 0
	}
	if r.Force {
		return 0
	}

	radius := r.Radius
	if r.Orient {
		radius *= OrientScale
	}

	var flod float32
	if projected := ProjectRadius(radius, r.Origin, v); projected != 0 {
		scale := min(v.Options.LODScale, MaxScale)
		flod = 1 - projected*scale
	} else {
		// the model crosses the view plane, like a view weapon
		flod = 0
	}
	flod *= float32(r.NumLODs)

	lod := int(math32.Round(flod))
	lod = clamp(lod, 0, r.NumLODs-1)
	lod += v.Options.LODBias
	return clamp(lod, 0, r.NumLODs-1)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
