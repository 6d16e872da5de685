package view

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// SetFarClip picks the far clip distance: the farthest visible corner, held
// in by an opaque global fog, overridden by the ZFar option. Worldless
// scenes use a fixed distance. globalFogDepth is zero without global fog.
func (v *View) SetFarClip(globalFogDepth float32, world math.Bounds) {
	if v.Flags&scene.NoWorldModel != 0 {
		v.ZFar = NoWorldFarClip
		return
	}

	b := v.VisBounds
	if b.IsEmpty() {
		b = world
	}
	if b.IsEmpty() {
		v.ZFar = NoWorldFarClip
	} else {
		var farthest float32
		for i := 0; i < 8; i++ {
			d := b.Corner(i).DistanceSquared(v.Or.Origin)
			if d > farthest {
				farthest = d
			}
		}
		v.ZFar = math32.Sqrt(farthest)
	}

	if globalFogDepth > 0 && globalFogDepth < v.ZFar {
		v.ZFar = globalFogDepth
	}
	if v.Options.ZFar > 0 {
		v.ZFar = v.Options.ZFar
	}
}

// ClampFarClip pulls the far clip in to d when d is closer, used for linear
// fog so geometry does not pop at the fog boundary.
func (v *View) ClampFarClip(d float32) {
	if d > 0 && d < v.ZFar {
		v.ZFar = d
	}
}

// SetupProjection builds the projection matrix and the full five-plane
// frustum from the current far clip.
func (v *View) SetupProjection() {
	if v.ZNear <= 0 {
		v.ZNear = DefaultOptions().ZNear
	}
	if v.ZFar <= v.ZNear {
		v.ZFar = v.ZNear + 1
	}
	v.ProjectionMatrix = math.ProjectionFov(v.FovX, v.FovY, v.ZNear, v.ZFar)
	v.SetupFrustum()
}
