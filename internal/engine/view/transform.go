package view

import (
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// LocalPointToWorld maps a point from this orientation into world space.
func (or *Orientation) LocalPointToWorld(p math.Vec3) math.Vec3 {
	return or.Origin.Add(or.Axis.ToWorld(p))
}

// LocalNormalToWorld maps a direction from this orientation into world space.
func (or *Orientation) LocalNormalToWorld(n math.Vec3) math.Vec3 {
	return or.Axis.ToWorld(n)
}

// WorldToLocal maps a world point into this orientation.
func (or *Orientation) WorldToLocal(p math.Vec3) math.Vec3 {
	return or.Axis.ToLocal(p.Sub(or.Origin))
}

// RotateForViewer sets the world orientation: the view matrix with the
// z-up to GL eye flip applied.
func (v *View) RotateForViewer() {
	v.World = Orientation{
		Axis:        math.AxisIdentity(),
		ViewOrigin:  v.Or.Origin,
		ModelMatrix: math.ViewMatrix(v.Or.Origin, v.Or.Axis),
	}
}

// RotateForEntity returns the orientation of an entity as seen from this
// view. Only model entities carry their own transform; everything else is
// built in world space.
func (v *View) RotateForEntity(e *scene.Entity) Orientation {
	if e.Type != scene.EntityModel {
		return v.World
	}

	or := Orientation{
		Origin: e.Origin,
		Axis:   e.Axis,
	}
	or.ModelMatrix = v.World.ModelMatrix.Mul(math.FromAxis(e.Origin, e.Axis))

	// viewer position in model space, compensating for scaled axes
	delta := v.Or.Origin.Sub(e.Origin)
	axisLength := float32(1)
	if e.NonNormalizedAxes {
		if l := e.Axis[0].Length(); l != 0 {
			axisLength = 1 / l
		} else {
			axisLength = 0
		}
	}
	or.ViewOrigin = math.Vec3{
		X: delta.Dot(or.Axis[0]) * axisLength,
		Y: delta.Dot(or.Axis[1]) * axisLength,
		Z: delta.Dot(or.Axis[2]) * axisLength,
	}
	return or
}

// TransformModelToClip returns the eye-space and clip-space positions of a
// model-space point.
func TransformModelToClip(src math.Vec3, modelMatrix, projection math.Mat4) (eye, clip math.Vec4) {
	eye = modelMatrix.MulVec4(math.Vec4{src.X, src.Y, src.Z, 1})
	clip = projection.MulVec4(eye)
	return eye, clip
}

// TransformClipToWindow converts clip coordinates to normalized device and
// viewport-relative window coordinates, rounding x and y to whole pixels.
func (v *View) TransformClipToWindow(clip math.Vec4) (normalized, window math.Vec4) {
	normalized = math.Vec4{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3], 1}

	window[0] = 0.5 * (1 + normalized[0]) * float32(v.ViewportWidth)
	window[1] = 0.5 * (1 + normalized[1]) * float32(v.ViewportHeight)
	window[2] = normalized[2]
	window[0] = float32(int(window[0] + 0.5))
	window[1] = float32(int(window[1] + 0.5))
	return normalized, window
}
